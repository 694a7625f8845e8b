package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/goliatone/go-signup/internal/session"
	"github.com/goliatone/go-signup/pkg/render"
	"github.com/goliatone/go-signup/pkg/signup"
)

const (
	maxFormBytes = 64 << 10

	actionSubmit = "submit"
	actionAppend = "append"
	removePrefix = "remove:"
)

type healthChecker interface {
	Health(ctx context.Context) error
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if checker, ok := s.store.(healthChecker); ok {
		if err := checker.Health(r.Context()); err != nil {
			s.logger.ErrorContext(r.Context(), "health check failed", "error", err)
			http.Error(w, "session store unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	ctrl, _ := s.newController()
	s.render(w, r, ctrl, http.StatusOK)
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	var values signup.Values
	if err := s.decoder.Decode(&values, r.PostForm); err != nil {
		s.logger.WarnContext(ctx, "invalid sign up form", "error", err)
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	ctrl, nav := s.newController(signup.WithValues(values))
	action := strings.TrimSpace(r.PostForm.Get(ActionField))

	switch {
	case action == actionAppend:
		ctrl.Append("")
		s.renderEditing(w, r, ctrl)

	case strings.HasPrefix(action, removePrefix):
		index, err := strconv.Atoi(strings.TrimPrefix(action, removePrefix))
		if err != nil {
			http.Error(w, "invalid remove action", http.StatusBadRequest)
			return
		}
		if err := ctrl.Remove(index); err != nil {
			if errors.Is(err, signup.ErrContactIndex) {
				http.Error(w, "invalid remove action", http.StatusBadRequest)
				return
			}
			s.logger.DebugContext(ctx, "contact number not removed", "index", index, "error", err)
		}
		s.renderEditing(w, r, ctrl)

	case action == "" || action == actionSubmit:
		s.submit(w, r, ctrl, nav)

	default:
		http.Error(w, "unknown action", http.StatusBadRequest)
	}
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request, ctrl *signup.Controller, nav *requestNavigator) {
	ctx, current := session.WithCurrent(r.Context())

	switch ctrl.Submit(ctx) {
	case signup.OutcomeInvalid, signup.OutcomeFailed:
		s.render(w, r, ctrl, http.StatusUnprocessableEntity)
		return
	case signup.OutcomeBusy:
		s.render(w, r, ctrl, http.StatusConflict)
		return
	}

	if rec, ok := current.Get(); ok {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    rec.ID,
			Path:     "/",
			Expires:  rec.ExpiresAt,
			HttpOnly: true,
			Secure:   s.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	if nav.refreshed {
		http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
		return
	}
	s.render(w, r, ctrl, http.StatusOK)
}

func (s *Server) newController(opts ...signup.Option) (*signup.Controller, *requestNavigator) {
	nav := &requestNavigator{signInPath: s.signInPath}
	base := []signup.Option{
		signup.WithNavigator(nav),
		signup.WithLogger(s.logger),
	}
	if s.refresher != nil {
		base = append(base, signup.WithSession(s.refresher))
	}
	if s.observer != nil {
		base = append(base, signup.WithObserver(s.observer))
	}
	return signup.NewController(s.auth, append(base, opts...)...), nav
}

// renderEditing redraws the form after a contact number change. The typed
// password is carried over so the user does not have to enter it again;
// submit failures never echo it.
func (s *Server) renderEditing(w http.ResponseWriter, r *http.Request, ctrl *signup.Controller) {
	s.renderState(w, r, ctrl, http.StatusOK, true)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, ctrl *signup.Controller, status int) {
	s.renderState(w, r, ctrl, status, false)
}

func (s *Server) renderState(w http.ResponseWriter, r *http.Request, ctrl *signup.Controller, status int, keepPassword bool) {
	ctx := r.Context()
	renderer, err := s.renderers.Negotiate(r.Header.Get("Accept"))
	if err != nil {
		s.logger.ErrorContext(ctx, "no renderer", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	opts := render.StateOptions(ctrl, render.CSRFToken(CSRFField, csrfToken(ctx)))
	opts.Action = r.URL.Path
	if keepPassword && strings.HasPrefix(renderer.ContentType(), "text/html") {
		opts.Values[signup.FieldPassword] = ctrl.Values().Password
	}

	form := s.form
	form.SignIn.Href = ctrl.SignInPath()

	body, err := renderer.Render(ctx, form, opts)
	if err != nil {
		s.logger.ErrorContext(ctx, "render form failed", "renderer", renderer.Name(), "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if strings.HasPrefix(renderer.ContentType(), "text/html") {
		if body, err = s.page.wrap(form.Title, body); err != nil {
			s.logger.ErrorContext(ctx, "render page failed", "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
