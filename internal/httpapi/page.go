package httpapi

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-signup/pkg/render/template/gotemplate"
)

//go:embed templates/*.tmpl
var pageFiles embed.FS

const pageTemplate = "page"

// pageLayout wraps rendered HTML fragments in a full document.
type pageLayout struct {
	engine *gotemplate.Engine
}

func newPageLayout() (*pageLayout, error) {
	sub, err := fs.Sub(pageFiles, "templates")
	if err != nil {
		return nil, fmt.Errorf("httpapi: page templates: %w", err)
	}
	engine, err := gotemplate.New(
		gotemplate.WithFS(sub),
		gotemplate.WithExtension(".tmpl"),
		gotemplate.WithSetName("httpapi"),
	)
	if err != nil {
		return nil, fmt.Errorf("httpapi: page engine: %w", err)
	}
	return &pageLayout{engine: engine}, nil
}

func (p *pageLayout) wrap(title string, body []byte) ([]byte, error) {
	out, err := p.engine.RenderTemplate(pageTemplate, map[string]any{
		"title": title,
		"body":  string(body),
	})
	if err != nil {
		return nil, fmt.Errorf("httpapi: render page: %w", err)
	}
	return []byte(out), nil
}
