package render

import (
	"context"

	"github.com/goliatone/go-signup/pkg/model"
)

// Renderer converts a FormModel plus per-request state into a byte
// representation (HTML, JSON, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}
