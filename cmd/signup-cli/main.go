package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/goliatone/go-signup/internal/localauth"
	"github.com/goliatone/go-signup/internal/platform/config"
	"github.com/goliatone/go-signup/internal/platform/logger"
	"github.com/goliatone/go-signup/internal/session"
	"github.com/goliatone/go-signup/internal/token"
	"github.com/goliatone/go-signup/pkg/authclient"
	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/renderers/tui"
	"github.com/goliatone/go-signup/pkg/signup"
)

// terminalNavigator reports where a browser would go next.
type terminalNavigator struct {
	out        io.Writer
	signInPath string
	afterPath  string
}

func (n terminalNavigator) Refresh(context.Context) error {
	_, err := fmt.Fprintf(n.out, "Signed in. Continue at %s\n", n.afterPath)
	return err
}

func (n terminalNavigator) SignInPath() string {
	return n.signInPath
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	authURL := flag.String("auth-url", cfg.AuthURL, "remote auth API base URL (in-process auth if empty)")
	formFile := flag.String("form", cfg.FormFile, "YAML form definition (built-in if empty)")
	verbose := flag.Bool("v", false, "log to stderr")
	plain := flag.Bool("plain", false, "use ASCII message prefixes")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logLevel := "error"
	if *verbose {
		logLevel = "debug"
	}
	slogger := logger.NewWithWriter(os.Stderr, cfg.LogFormat, logLevel)

	form, err := model.Default()
	if *formFile != "" {
		form, err = model.LoadFile(*formFile)
	}
	if err != nil {
		log.Fatalf("load form: %v", err)
	}

	tokens, err := token.NewService(cfg.JWTKey, cfg.JWTIssuer)
	if err != nil {
		log.Fatalf("token service: %v", err)
	}
	verifier, err := token.NewService(cfg.VerifyKey, cfg.JWTIssuer)
	if err != nil {
		log.Fatalf("verify token service: %v", err)
	}

	var auth signup.AuthClient
	if *authURL != "" {
		auth, err = authclient.New(*authURL, authclient.WithLogger(slogger))
		if err != nil {
			log.Fatalf("auth client: %v", err)
		}
	} else {
		auth = localauth.New(tokens, localauth.WithSessionTTL(cfg.SessionTTL), localauth.WithLogger(slogger))
	}

	refresher := session.NewRefresher(session.NewMemory(), verifier,
		session.WithMaxTTL(cfg.SessionTTL),
		session.WithLogger(slogger),
	)
	ctrl := signup.NewController(auth,
		signup.WithSession(refresher),
		signup.WithNavigator(terminalNavigator{out: os.Stdout, signInPath: cfg.SignInPath, afterPath: cfg.AfterPath}),
		signup.WithLogger(slogger),
	)

	theme := tui.DefaultTheme
	if *plain {
		theme = tui.PlainTheme
	}
	runner := tui.New(tui.WithPromptDriver(tui.NewSurveyDriver(os.Stdout)), tui.WithTheme(theme))
	outcome, err := runner.Run(ctx, form, ctrl)
	if errors.Is(err, tui.ErrAborted) {
		fmt.Println("Aborted.")
		os.Exit(130)
	}
	if err != nil {
		log.Fatalf("sign up: %v", err)
	}
	if outcome != signup.OutcomeSucceeded {
		os.Exit(1)
	}
}
