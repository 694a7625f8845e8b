// Package signup is the top-level entry point for rendering the sign-up form
// without wiring renderers by hand.
package signup

import (
	"context"
	"fmt"

	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/render"
	"github.com/goliatone/go-signup/pkg/renderers/jsonform"
	"github.com/goliatone/go-signup/pkg/renderers/vanilla"
)

// RenderOptions aliases render.RenderOptions for callers that only import the
// root package.
type RenderOptions = render.RenderOptions

// DefaultRenderer is used when GenerateHTML is given an empty renderer name.
const DefaultRenderer = "vanilla"

// NewRegistry returns a registry holding the built-in renderers, HTML first
// so it is the negotiation fallback.
func NewRegistry(options ...vanilla.Option) (*render.Registry, error) {
	html, err := vanilla.New(options...)
	if err != nil {
		return nil, err
	}
	return render.NewRegistry(html, jsonform.New())
}

// Generate renders form with the named built-in renderer.
func Generate(ctx context.Context, form model.FormModel, rendererName string, opts RenderOptions) ([]byte, error) {
	if rendererName == "" {
		rendererName = DefaultRenderer
	}
	registry, err := NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("signup: build renderers: %w", err)
	}
	renderer, err := registry.Get(rendererName)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, form, opts)
}

// GenerateHTML renders the embedded sign-up form as an HTML fragment.
func GenerateHTML(ctx context.Context, opts RenderOptions) ([]byte, error) {
	form, err := model.Default()
	if err != nil {
		return nil, err
	}
	return Generate(ctx, form, DefaultRenderer, opts)
}
