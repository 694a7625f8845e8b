package render_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-signup/pkg/render"
	"github.com/goliatone/go-signup/pkg/signup"
)

func TestStateOptions(t *testing.T) {
	auth := signup.AuthClientFunc(func(context.Context, signup.Values) (signup.Session, error) {
		return signup.Session{}, &signup.AuthError{Message: "Email taken"}
	})
	ctrl := signup.NewController(auth, signup.WithValues(signup.Values{
		FirstName:      "Max",
		LastName:       "Robinson",
		Email:          "m@example.com",
		Password:       "secret1",
		ContactNumbers: []string{"1"},
		AcceptTerms:    true,
	}))
	ctrl.Submit(context.Background())

	opts := render.StateOptions(ctrl, render.CSRFToken("_csrf", "tok"))

	if diff := cmp.Diff([]string{"Email taken"}, opts.FormErrors); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
	if opts.Pending {
		t.Fatal("pending should be cleared after failure")
	}
	if _, ok := opts.Values["password"]; ok {
		t.Fatal("password must not be echoed")
	}
	if diff := cmp.Diff([]any{"1"}, opts.Values["contactNumbers"]); diff != "" {
		t.Fatalf("contact numbers mismatch (-want +got):\n%s", diff)
	}
	if opts.Hidden["_csrf"] != "tok" {
		t.Fatalf("hidden fields = %v", opts.Hidden)
	}
}
