package signup

import (
	"context"
	"time"
)

// Session is the opaque result of a successful sign-up. It is owned by the
// auth collaborator; the form only hands it to the session collaborator.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthClient performs the sign-up operation. A failure carrying a message for
// the user should be returned as *AuthError.
type AuthClient interface {
	SignUp(ctx context.Context, values Values) (Session, error)
}

// SessionRefresher reloads the caller's session after a successful sign-up.
type SessionRefresher interface {
	RefreshSession(ctx context.Context, session Session) error
}

// Navigator refreshes the current route and knows where the sign-in page
// lives.
type Navigator interface {
	Refresh(ctx context.Context) error
	SignInPath() string
}

// Observer receives lifecycle notifications, typically for metrics.
type Observer interface {
	Submitted(outcome Outcome)
	ContactNumbersChanged(op string)
}

// AuthClientFunc adapts a function into an AuthClient.
type AuthClientFunc func(ctx context.Context, values Values) (Session, error)

// SignUp calls f.
func (f AuthClientFunc) SignUp(ctx context.Context, values Values) (Session, error) {
	return f(ctx, values)
}

// SessionRefresherFunc adapts a function into a SessionRefresher.
type SessionRefresherFunc func(ctx context.Context, session Session) error

// RefreshSession calls f.
func (f SessionRefresherFunc) RefreshSession(ctx context.Context, session Session) error {
	return f(ctx, session)
}
