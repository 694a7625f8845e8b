// Package testsupport holds fixtures shared by the sign-up tests.
package testsupport

import (
	"context"
	"sync"
	"testing"

	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/signup"
)

// ValidValues returns a form state that passes every validation rule.
func ValidValues() signup.Values {
	return signup.Values{
		FirstName:      "Max",
		LastName:       "Robinson",
		Email:          "m@example.com",
		Password:       "secret1",
		ContactNumbers: []string{"555"},
		AcceptTerms:    true,
	}
}

// MustDefaultForm loads the embedded sign-up form model.
func MustDefaultForm(t testing.TB) model.FormModel {
	t.Helper()

	form, err := model.Default()
	if err != nil {
		t.Fatalf("load default form: %v", err)
	}
	return form
}

// MustLoadFormModel loads a YAML form definition from disk.
func MustLoadFormModel(t testing.TB, path string) model.FormModel {
	t.Helper()

	form, err := model.LoadFile(path)
	if err != nil {
		t.Fatalf("load form model %s: %v", path, err)
	}
	return form
}

// RecordingAuth is a signup.AuthClient returning a fixed result and keeping
// every call it receives.
type RecordingAuth struct {
	Session signup.Session
	Err     error

	mu    sync.Mutex
	calls []signup.Values
}

var _ signup.AuthClient = (*RecordingAuth)(nil)

// SignUp records values and returns the configured result.
func (a *RecordingAuth) SignUp(_ context.Context, values signup.Values) (signup.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, values.Clone())
	if a.Err != nil {
		return signup.Session{}, a.Err
	}
	return a.Session, nil
}

// Calls returns a copy of the recorded calls.
func (a *RecordingAuth) Calls() []signup.Values {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]signup.Values(nil), a.calls...)
}
