package localauth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/goliatone/go-signup/internal/token"
	"github.com/goliatone/go-signup/pkg/signup"
	"github.com/goliatone/go-signup/pkg/testsupport"
)

func newService(t *testing.T) (*Service, *token.Service) {
	t.Helper()
	tokens, err := token.NewService("secret", "signup")
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	return New(tokens, WithHashCost(bcrypt.MinCost), WithSessionTTL(time.Hour)), tokens
}

func validValues() signup.Values {
	values := testsupport.ValidValues()
	values.Email = " M@Example.com "
	return values
}

func TestSignUp_CreatesUserAndSession(t *testing.T) {
	svc, tokens := newService(t)

	sess, err := svc.SignUp(context.Background(), validValues())
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}

	claims, err := tokens.Verify(sess.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.SessionID != sess.ID || claims.UserID != sess.UserID {
		t.Fatalf("claims %+v do not match session %+v", claims, sess)
	}

	user, ok := svc.Lookup("m@example.com")
	if !ok {
		t.Fatal("expected user to be registered")
	}
	if user.Email != "M@Example.com" {
		t.Fatalf("email should be trimmed but keep case, got %q", user.Email)
	}
	if !svc.CheckPassword("m@example.com", "secret1") {
		t.Fatal("password should verify")
	}
	if svc.CheckPassword("m@example.com", "wrong!") {
		t.Fatal("wrong password should not verify")
	}
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	svc, _ := newService(t)
	if _, err := svc.SignUp(context.Background(), validValues()); err != nil {
		t.Fatalf("first sign up: %v", err)
	}

	again := validValues()
	again.Email = "m@EXAMPLE.com"
	_, err := svc.SignUp(context.Background(), again)

	var authErr *signup.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *signup.AuthError, got %v", err)
	}
	if got := signup.RootMessage(err); got != DuplicateEmailMessage {
		t.Fatalf("root message = %q", got)
	}
}

func TestSignUp_RejectsInvalidInput(t *testing.T) {
	svc, _ := newService(t)
	values := validValues()
	values.Password = "123"

	_, err := svc.SignUp(context.Background(), values)
	var authErr *signup.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *signup.AuthError, got %v", err)
	}
	if got := signup.FieldErrors(authErr.Fields).First(signup.FieldPassword); got != "Password must be at least 6 characters" {
		t.Fatalf("password error = %q", got)
	}
	if _, ok := svc.Lookup("m@example.com"); ok {
		t.Fatal("invalid sign up must not register a user")
	}
}

func TestSignUp_CanceledContext(t *testing.T) {
	svc, _ := newService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.SignUp(ctx, validValues()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
