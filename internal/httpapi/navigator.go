package httpapi

import (
	"context"

	"github.com/goliatone/go-signup/pkg/signup"
)

// requestNavigator records a route refresh for the request being served.
// The handler turns it into a redirect to the same path once Submit returns.
type requestNavigator struct {
	signInPath string
	refreshed  bool
}

var _ signup.Navigator = (*requestNavigator)(nil)

func (n *requestNavigator) Refresh(context.Context) error {
	n.refreshed = true
	return nil
}

func (n *requestNavigator) SignInPath() string {
	return n.signInPath
}
