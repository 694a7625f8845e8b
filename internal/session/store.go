// Package session stores the sessions created by a successful sign-up and
// answers whether a request already carries one.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a session is missing or expired.
var ErrNotFound = errors.New("session: not found")

const keyPrefix = "session:"

// Record is the stored view of a session.
type Record struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store persists session records with a time-to-live.
type Store interface {
	Save(ctx context.Context, rec Record, ttl time.Duration) error
	Load(ctx context.Context, id string) (Record, error)
	Delete(ctx context.Context, id string) error
}

// Key returns the storage key for a session id.
func Key(id string) string {
	return keyPrefix + id
}
