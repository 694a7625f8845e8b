package vanilla

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/render"
	rendertemplate "github.com/goliatone/go-signup/pkg/render/template"
	"github.com/goliatone/go-signup/pkg/render/template/gotemplate"
)

const formTemplate = "form.tmpl"

type Option func(*config)

type config struct {
	templateFS    fs.FS
	templatesDir  string
	stylesheetURL string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The
// bundle must contain form.tmpl at its root.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk. A form.tmpl
// found there replaces the bundled one; anything missing falls back to the
// bundle.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templatesDir = path
	}
}

// WithStylesheetURL links a stylesheet from the rendered markup.
func WithStylesheetURL(url string) Option {
	return func(cfg *config) {
		cfg.stylesheetURL = url
	}
}

// Renderer draws the sign-up form as HTML.
type Renderer struct {
	templates     rendertemplate.TemplateRenderer
	stylesheetURL string
	alertPolicy   *bluemonday.Policy
	textPolicy    *bluemonday.Policy
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	engine, err := gotemplate.New(
		gotemplate.WithBaseDir(cfg.templatesDir),
		gotemplate.WithFS(cfg.templateFS),
		gotemplate.WithExtension(".tmpl"),
		gotemplate.WithSetName("vanilla"),
	)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
	}

	return &Renderer{
		templates:     engine,
		stylesheetURL: cfg.stylesheetURL,
		alertPolicy:   bluemonday.StrictPolicy(),
		textPolicy:    bluemonday.UGCPolicy(),
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate(formTemplate, r.viewData(form, opts))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}
