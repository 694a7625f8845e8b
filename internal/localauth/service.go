// Package localauth is an in-process account service. It implements
// signup.AuthClient directly and can be exposed over HTTP with Handler so
// remote clients speak to it through pkg/authclient.
package localauth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/goliatone/go-signup/internal/token"
	"github.com/goliatone/go-signup/pkg/signup"
)

// DuplicateEmailMessage is reported when the email is already registered.
const DuplicateEmailMessage = "An account with this email already exists"

// User is a registered account.
type User struct {
	ID             uuid.UUID
	FirstName      string
	LastName       string
	Email          string
	ContactNumbers []string
	PasswordHash   []byte
	CreatedAt      time.Time
}

// Service registers accounts and issues session tokens.
type Service struct {
	tokens    *token.Service
	validator signup.SchemaValidator
	logger    *slog.Logger
	ttl       time.Duration
	cost      int
	now       func() time.Time

	mu      sync.RWMutex
	byEmail map[string]User
}

var _ signup.AuthClient = (*Service)(nil)

// Option configures a Service.
type Option func(*Service)

// WithSessionTTL sets how long issued sessions stay valid.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHashCost overrides the bcrypt cost.
func WithHashCost(cost int) Option {
	return func(s *Service) {
		s.cost = cost
	}
}

// New constructs a Service signing tokens with tokens.
func New(tokens *token.Service, opts ...Option) *Service {
	s := &Service{
		tokens:    tokens,
		validator: signup.NewValidator(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		ttl:       24 * time.Hour,
		cost:      bcrypt.DefaultCost,
		now:       time.Now,
		byEmail:   make(map[string]User),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// SignUp creates the account and returns a fresh session. Input that fails
// the form's own rules is rejected with field errors, since remote callers
// may skip client-side validation.
func (s *Service) SignUp(ctx context.Context, values signup.Values) (signup.Session, error) {
	if err := ctx.Err(); err != nil {
		return signup.Session{}, err
	}

	values = values.Normalize()
	if errs := s.validator.Validate(values); len(errs) > 0 {
		return signup.Session{}, &signup.AuthError{Fields: errs}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(values.Password), s.cost)
	if err != nil {
		return signup.Session{}, fmt.Errorf("localauth: hash password: %w", err)
	}

	key := strings.ToLower(values.Email)
	user := User{
		ID:             uuid.New(),
		FirstName:      values.FirstName,
		LastName:       values.LastName,
		Email:          values.Email,
		ContactNumbers: append([]string(nil), values.ContactNumbers...),
		PasswordHash:   hash,
		CreatedAt:      s.now(),
	}

	s.mu.Lock()
	if _, exists := s.byEmail[key]; exists {
		s.mu.Unlock()
		s.logger.InfoContext(ctx, "duplicate sign up", "email", key)
		return signup.Session{}, &signup.AuthError{
			Message: DuplicateEmailMessage,
			Fields:  map[string][]string{signup.FieldEmail: {DuplicateEmailMessage}},
		}
	}
	s.byEmail[key] = user
	s.mu.Unlock()

	sessionID := uuid.New()
	raw, expiresAt, err := s.tokens.Issue(user.ID, sessionID, user.Email, s.ttl)
	if err != nil {
		s.mu.Lock()
		delete(s.byEmail, key)
		s.mu.Unlock()
		return signup.Session{}, err
	}

	s.logger.InfoContext(ctx, "user created", "user_id", user.ID.String())
	return signup.Session{
		ID:        sessionID.String(),
		UserID:    user.ID.String(),
		Token:     raw,
		ExpiresAt: expiresAt,
	}, nil
}

// Lookup returns the account registered under email.
func (s *Service) Lookup(email string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	return user, ok
}

// CheckPassword reports whether password matches the account's hash.
func (s *Service) CheckPassword(email, password string) bool {
	user, ok := s.Lookup(email)
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) == nil
}
