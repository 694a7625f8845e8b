// Package jsonform renders the form model and its current state as JSON for
// script-driven clients.
package jsonform

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/render"
)

// Document is the payload written by Render.
type Document struct {
	Form  model.FormModel `json:"form"`
	State State           `json:"state"`
}

// State mirrors render.RenderOptions for the wire.
type State struct {
	Values    map[string]any      `json:"values,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
	RootError string              `json:"rootError,omitempty"`
	Pending   bool                `json:"pending"`
	Hidden    map[string]string   `json:"hidden,omitempty"`
}

// Renderer implements render.Renderer with encoding/json.
type Renderer struct {
	indent string
}

// Option configures the renderer.
type Option func(*Renderer)

// WithIndent pretty-prints the output.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// New constructs a JSON renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string        { return "json" }
func (r *Renderer) ContentType() string { return "application/json" }

func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc := Document{
		Form: form,
		State: State{
			Values:  opts.Values,
			Errors:  opts.Errors,
			Pending: opts.Pending,
			Hidden:  opts.Hidden,
		},
	}
	if formErrors := render.MergeFormErrors(opts.FormErrors); len(formErrors) > 0 {
		doc.State.RootError = formErrors[len(formErrors)-1]
	}

	var (
		out []byte
		err error
	)
	if r.indent != "" {
		out, err = json.MarshalIndent(doc, "", r.indent)
	} else {
		out, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("json renderer: encode: %w", err)
	}
	return out, nil
}
