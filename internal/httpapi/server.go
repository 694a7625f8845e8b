// Package httpapi serves the sign-up form over HTTP: GET renders it, POST
// applies an add/remove/submit action and re-renders or redirects.
package httpapi

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/form/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-signup/internal/session"
	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/render"
	"github.com/goliatone/go-signup/pkg/signup"
)

const (
	// SessionCookie carries the id of the session created at sign-up.
	SessionCookie = "signup_session"
	// CSRFCookie and CSRFField implement the double-submit check.
	CSRFCookie = "signup_csrf"
	CSRFField  = "_csrf"
	// ActionField selects what a POST does.
	ActionField = "_action"
)

// ErrNoRenderers is returned when the server is built without renderers.
var ErrNoRenderers = errors.New("httpapi: at least one renderer is required")

// Server is the HTTP surface for one sign-up form.
type Server struct {
	form       model.FormModel
	auth       signup.AuthClient
	renderers  *render.Registry
	store      session.Store
	refresher  signup.SessionRefresher
	observer   signup.Observer
	gatherer   prometheus.Gatherer
	assets     http.FileSystem
	logger     *slog.Logger
	signInPath string
	afterPath  string
	secure     bool

	decoder *form.Decoder
	page    *pageLayout
	router  chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithRenderers sets the renderers negotiated against the Accept header.
func WithRenderers(registry *render.Registry) Option {
	return func(s *Server) {
		s.renderers = registry
	}
}

// WithSessions enables the session cookie and the navigation guard.
func WithSessions(store session.Store, refresher signup.SessionRefresher) Option {
	return func(s *Server) {
		s.store = store
		s.refresher = refresher
	}
}

// WithMetrics wires an observer into every controller and serves the
// gatherer at /metrics.
func WithMetrics(observer signup.Observer, gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.observer = observer
		s.gatherer = gatherer
	}
}

// WithAssets serves static files under /assets/.
func WithAssets(files http.FileSystem) Option {
	return func(s *Server) {
		s.assets = files
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPaths sets the sign-in link target and where signed-in visitors are
// sent by the navigation guard.
func WithPaths(signIn, after string) Option {
	return func(s *Server) {
		if signIn != "" {
			s.signInPath = signIn
		}
		if after != "" {
			s.afterPath = after
		}
	}
}

// WithSecureCookies marks cookies Secure.
func WithSecureCookies(secure bool) Option {
	return func(s *Server) {
		s.secure = secure
	}
}

// New builds the server for form, signing users up through auth.
func New(formModel model.FormModel, auth signup.AuthClient, opts ...Option) (*Server, error) {
	if auth == nil {
		return nil, signup.ErrAuthClientMissing
	}
	s := &Server{
		form:       formModel,
		auth:       auth,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		signInPath: formModel.SignIn.Href,
		afterPath:  "/",
		decoder:    form.NewDecoder(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.renderers == nil || len(s.renderers.List()) == 0 {
		return nil, ErrNoRenderers
	}
	if s.signInPath == "" {
		s.signInPath = "/sign-in"
	}

	page, err := newPageLayout()
	if err != nil {
		return nil, err
	}
	s.page = page
	s.router = s.routes()
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/healthz", s.handleHealth)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	if s.assets != nil {
		r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(s.assets)))
	}

	endpoint := s.form.Endpoint
	if endpoint == "" {
		endpoint = "/sign-up"
	}
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Use(s.guard)
		r.Use(s.csrf)
		r.Get(endpoint, s.handleShow)
		r.Post(endpoint, s.handleAction)
	})
	return r
}
