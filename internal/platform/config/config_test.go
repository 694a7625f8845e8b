package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func envFunc(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(envFunc(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := Config{
		Addr:       ":8080",
		JWTKey:     defaultJWTKey,
		VerifyKey:  defaultJWTKey,
		JWTIssuer:  "go-signup",
		SignInPath: "/sign-in",
		AfterPath:  "/",
		LogFormat:  "text",
		LogLevel:   "info",
		SessionTTL: 24 * time.Hour,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(envFunc(map[string]string{
		"SIGNUP_ADDR":         "127.0.0.1:9000",
		"SIGNUP_AUTH_URL":     "http://auth.internal",
		"SIGNUP_REDIS_URL":    "redis://localhost:6379/0",
		"SIGNUP_LOG_FORMAT":   "JSON",
		"SIGNUP_SESSION_TTL":  "90m",
		"SIGNUP_AFTER_PATH":   "/dashboard",
		"SIGNUP_SIGN_IN_PATH": "/login",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9000" || cfg.AuthURL != "http://auth.internal" || cfg.RedisURL == "" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.LogFormat != "json" {
		t.Fatalf("expected lower-cased log format, got %q", cfg.LogFormat)
	}
	if cfg.SessionTTL != 90*time.Minute {
		t.Fatalf("expected 90m ttl, got %s", cfg.SessionTTL)
	}
	if cfg.AfterPath != "/dashboard" || cfg.SignInPath != "/login" {
		t.Fatalf("unexpected paths %q %q", cfg.AfterPath, cfg.SignInPath)
	}
}

func TestLoad_VerifyKeyFollowsSigningKey(t *testing.T) {
	cfg, err := load(envFunc(map[string]string{"SIGNUP_JWT_KEY": "local"}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.VerifyKey != "local" {
		t.Fatalf("verify key = %q, want the signing key", cfg.VerifyKey)
	}

	cfg, err = load(envFunc(map[string]string{
		"SIGNUP_JWT_KEY":        "local",
		"SIGNUP_JWT_VERIFY_KEY": "shared-with-auth",
		"SIGNUP_JWT_ISSUER":     "accounts",
		"SIGNUP_TEMPLATES_DIR":  "/srv/templates",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"local", "shared-with-auth", "accounts", "/srv/templates"}
	got := []string{cfg.JWTKey, cfg.VerifyKey, cfg.JWTIssuer, cfg.TemplatesDir}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"bad ttl":      {"SIGNUP_SESSION_TTL": "soon"},
		"negative ttl": {"SIGNUP_SESSION_TTL": "-1h"},
		"bad format":   {"SIGNUP_LOG_FORMAT": "xml"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := load(envFunc(env)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
