package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-signup/internal/httpapi"
	"github.com/goliatone/go-signup/internal/localauth"
	"github.com/goliatone/go-signup/internal/metrics"
	"github.com/goliatone/go-signup/internal/platform/config"
	"github.com/goliatone/go-signup/internal/platform/logger"
	"github.com/goliatone/go-signup/internal/session"
	"github.com/goliatone/go-signup/internal/token"
	"github.com/goliatone/go-signup/pkg/authclient"
	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/render"
	"github.com/goliatone/go-signup/pkg/renderers/jsonform"
	"github.com/goliatone/go-signup/pkg/renderers/vanilla"
	"github.com/goliatone/go-signup/pkg/signup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	addr := flag.String("addr", cfg.Addr, "listen address")
	secure := flag.Bool("secure-cookies", false, "mark cookies Secure")
	flag.Parse()

	log := logger.New(cfg.LogFormat, cfg.LogLevel)
	if err := run(cfg, *addr, *secure, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, addr string, secure bool, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	form, err := loadForm(cfg.FormFile)
	if err != nil {
		return err
	}

	tokens, verifier, err := tokenServices(cfg)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	store, closeStore, err := openStore(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	defer closeStore()

	refresher := session.NewRefresher(store, verifier,
		session.WithMaxTTL(cfg.SessionTTL),
		session.WithLogger(log),
		session.WithStoredHook(m.SessionStored),
	)

	root := chi.NewRouter()
	var auth signup.AuthClient
	if cfg.AuthURL != "" {
		client, err := authclient.New(cfg.AuthURL, authclient.WithLogger(log))
		if err != nil {
			return err
		}
		auth = client
		log.Info("using remote auth service", "url", cfg.AuthURL, "separate_verify_key", cfg.VerifyKey != cfg.JWTKey)
	} else {
		local := localauth.New(tokens, localauth.WithSessionTTL(cfg.SessionTTL), localauth.WithLogger(log))
		root.Route("/api", localauth.NewHandler(local, log).Register)
		auth = local
		log.Info("using in-process auth service")
	}

	html, err := vanilla.New(
		vanilla.WithStylesheetURL("/assets/"+vanilla.StylesheetName),
		vanilla.WithTemplatesDir(cfg.TemplatesDir),
	)
	if err != nil {
		return err
	}
	renderers, err := render.NewRegistry(html, jsonform.New())
	if err != nil {
		return err
	}

	srv, err := httpapi.New(form, auth,
		httpapi.WithRenderers(renderers),
		httpapi.WithSessions(store, refresher),
		httpapi.WithMetrics(m, reg),
		httpapi.WithAssets(http.FS(vanilla.AssetsFS())),
		httpapi.WithLogger(log),
		httpapi.WithPaths(cfg.SignInPath, cfg.AfterPath),
		httpapi.WithSecureCookies(secure),
	)
	if err != nil {
		return err
	}
	root.Mount("/", srv)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           root,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info("sign-up server listening", "addr", addr, "form", form.ID)
	return serve(ctx, httpServer, log)
}

// serve runs srv until ctx is cancelled or the listener fails, then shuts
// it down gracefully.
func serve(ctx context.Context, srv *http.Server, log *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// tokenServices returns the signer used by in-process auth and the verifier
// the session refresher checks tokens with. A remote auth service signs with
// its own key, so the verifier uses VerifyKey.
func tokenServices(cfg config.Config) (signer, verifier *token.Service, err error) {
	signer, err = token.NewService(cfg.JWTKey, cfg.JWTIssuer)
	if err != nil {
		return nil, nil, fmt.Errorf("signing key: %w", err)
	}
	verifier, err = token.NewService(cfg.VerifyKey, cfg.JWTIssuer)
	if err != nil {
		return nil, nil, fmt.Errorf("verify key: %w", err)
	}
	return signer, verifier, nil
}

func loadForm(path string) (model.FormModel, error) {
	if path == "" {
		return model.Default()
	}
	return model.LoadFile(path)
}

func openStore(ctx context.Context, redisURL string) (session.Store, func(), error) {
	if redisURL == "" {
		return session.NewMemory(), func() {}, nil
	}
	store, err := session.Connect(ctx, redisURL)
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}
