// Package config loads runtime settings for the sign-up binaries from the
// environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultAddr       = ":8080"
	defaultSignInPath = "/sign-in"
	defaultAfterPath  = "/"
	defaultLogFormat  = "text"
	defaultLogLevel   = "info"
	defaultSessionTTL = 24 * time.Hour
	defaultJWTKey     = "dev-secret-key-change-in-production"
	defaultJWTIssuer  = "go-signup"
)

// Config captures application runtime configuration.
type Config struct {
	Addr     string
	AuthURL  string
	RedisURL string
	// JWTKey signs tokens issued by the in-process auth service.
	JWTKey string
	// VerifyKey checks session tokens before they are stored. It defaults to
	// JWTKey and must match the remote auth service's key when AuthURL is set.
	VerifyKey    string
	JWTIssuer    string
	SignInPath   string
	AfterPath    string
	FormFile     string
	TemplatesDir string
	LogFormat    string
	LogLevel     string
	SessionTTL   time.Duration
}

// Load reads configuration values from the environment.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		Addr:         get("SIGNUP_ADDR", defaultAddr),
		AuthURL:      get("SIGNUP_AUTH_URL", ""),
		RedisURL:     get("SIGNUP_REDIS_URL", ""),
		JWTKey:       get("SIGNUP_JWT_KEY", defaultJWTKey),
		JWTIssuer:    get("SIGNUP_JWT_ISSUER", defaultJWTIssuer),
		SignInPath:   get("SIGNUP_SIGN_IN_PATH", defaultSignInPath),
		AfterPath:    get("SIGNUP_AFTER_PATH", defaultAfterPath),
		FormFile:     get("SIGNUP_FORM_FILE", ""),
		TemplatesDir: get("SIGNUP_TEMPLATES_DIR", ""),
		LogFormat:    strings.ToLower(get("SIGNUP_LOG_FORMAT", defaultLogFormat)),
		LogLevel:     strings.ToLower(get("SIGNUP_LOG_LEVEL", defaultLogLevel)),
		SessionTTL:   defaultSessionTTL,
	}
	cfg.VerifyKey = get("SIGNUP_JWT_VERIFY_KEY", cfg.JWTKey)

	if v := getenv("SIGNUP_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SIGNUP_SESSION_TTL: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("invalid SIGNUP_SESSION_TTL: must be positive, got %s", d)
		}
		cfg.SessionTTL = d
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("invalid SIGNUP_LOG_FORMAT %q: want text or json", cfg.LogFormat)
	}

	return cfg, nil
}
