package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/goliatone/go-signup/internal/token"
	"github.com/goliatone/go-signup/pkg/signup"
)

var (
	// ErrSessionMismatch is returned when the token names a different session.
	ErrSessionMismatch = errors.New("session: token does not match session")
	// ErrExpired is returned for sessions that are already past their expiry.
	ErrExpired = errors.New("session: expired")
)

// Verifier validates session tokens.
type Verifier interface {
	Verify(raw string) (*token.Claims, error)
}

// Refresher implements signup.SessionRefresher: it verifies the token the
// auth collaborator returned and stores the session.
type Refresher struct {
	store    Store
	verifier Verifier
	maxTTL   time.Duration
	logger   *slog.Logger
	onStored func()
	now      func() time.Time
}

var _ signup.SessionRefresher = (*Refresher)(nil)

// RefresherOption configures a Refresher.
type RefresherOption func(*Refresher)

// WithMaxTTL caps how long a stored session lives.
func WithMaxTTL(ttl time.Duration) RefresherOption {
	return func(r *Refresher) {
		if ttl > 0 {
			r.maxTTL = ttl
		}
	}
}

// WithLogger sets the refresher's logger.
func WithLogger(logger *slog.Logger) RefresherOption {
	return func(r *Refresher) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithStoredHook is called after every successful store, e.g. for metrics.
func WithStoredHook(fn func()) RefresherOption {
	return func(r *Refresher) {
		r.onStored = fn
	}
}

// NewRefresher builds a refresher over store and verifier.
func NewRefresher(store Store, verifier Verifier, opts ...RefresherOption) *Refresher {
	r := &Refresher{
		store:    store,
		verifier: verifier,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// RefreshSession verifies and stores sess. When ctx carries a Current
// holder the stored record is published to it.
func (r *Refresher) RefreshSession(ctx context.Context, sess signup.Session) error {
	claims, err := r.verifier.Verify(sess.Token)
	if err != nil {
		return fmt.Errorf("session: verify token: %w", err)
	}
	if claims.SessionID != sess.ID || claims.UserID != sess.UserID {
		return ErrSessionMismatch
	}

	ttl := sess.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return ErrExpired
	}
	if r.maxTTL > 0 && ttl > r.maxTTL {
		ttl = r.maxTTL
	}

	rec := Record{
		ID:        sess.ID,
		UserID:    sess.UserID,
		Email:     claims.Email,
		ExpiresAt: r.now().Add(ttl),
	}
	if err := r.store.Save(ctx, rec, ttl); err != nil {
		return err
	}
	r.logger.Debug("session stored", "session_id", rec.ID, "user_id", rec.UserID, "ttl", ttl)
	if r.onStored != nil {
		r.onStored()
	}
	if cur := CurrentFrom(ctx); cur != nil {
		cur.Set(rec)
	}
	return nil
}

// Current holds the session stored while serving one request.
type Current struct {
	mu  sync.Mutex
	rec *Record
}

// Set records rec as the current session.
func (c *Current) Set(rec Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rec = &rec
}

// Get returns the current session, if one was stored.
func (c *Current) Get() (Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rec == nil {
		return Record{}, false
	}
	return *c.rec, true
}

type currentKey struct{}

// WithCurrent attaches an empty Current holder to ctx.
func WithCurrent(ctx context.Context) (context.Context, *Current) {
	cur := &Current{}
	return context.WithValue(ctx, currentKey{}, cur), cur
}

// CurrentFrom returns the holder attached by WithCurrent, or nil.
func CurrentFrom(ctx context.Context) *Current {
	cur, _ := ctx.Value(currentKey{}).(*Current)
	return cur
}
