package gotemplate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-signup/pkg/render/template"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	baseDir   string
	templates fs.FS
	extension string
	setName   string
}

// WithBaseDir loads templates from a directory on disk. Files found there
// shadow the ones provided through WithFS.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides the default template extension (".tmpl").
func WithExtension(ext string) Option {
	return func(cfg *config) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.extension = ext
	}
}

// WithSetName names the pongo2 template set, which shows up in errors.
func WithSetName(name string) Option {
	return func(cfg *config) {
		if name = strings.TrimSpace(name); name != "" {
			cfg.setName = name
		}
	}
}

// Engine renders pongo2 templates. Parsed templates are cached by path.
type Engine struct {
	set *pongo2.TemplateSet
	ext string

	mu     sync.RWMutex
	parsed map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an engine from a base directory, an fs.FS or both.
func New(options ...Option) (*Engine, error) {
	cfg := config{extension: ".tmpl", setName: "signup"}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, errors.New("gotemplate: need a base dir or an fs.FS")
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: base dir %q: %w", cfg.baseDir, err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}

	return &Engine{
		set:    pongo2.NewSet(cfg.setName, loaders...),
		ext:    cfg.extension,
		parsed: make(map[string]*pongo2.Template),
	}, nil
}

// RenderTemplate executes the named template, appending the configured
// extension when missing. Data must encode to a JSON object; templates see
// its JSON field names.
func (e *Engine) RenderTemplate(name string, data any) (string, error) {
	path := name
	if !strings.HasSuffix(path, e.ext) {
		path += e.ext
	}

	tmpl, err := e.lookup(path)
	if err != nil {
		return "", err
	}
	viewCtx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: %s: %w", path, err)
	}
	out, err := tmpl.Execute(viewCtx)
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", path, err)
	}
	return out, nil
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.parsed[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.parsed[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load %s: %w", path, err)
	}
	e.parsed[path] = tmpl
	return tmpl, nil
}

// toContext flattens view structs into plain maps so templates address
// fields by their JSON names.
func toContext(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode view data: %w", err)
	}
	var ctx map[string]any
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return nil, fmt.Errorf("view data of type %T is not an object", data)
	}
	return pongo2.Context(ctx), nil
}
