package render_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/render"
)

type fakeRenderer struct {
	name, contentType string
}

func (f fakeRenderer) Name() string        { return f.name }
func (f fakeRenderer) ContentType() string { return f.contentType }
func (f fakeRenderer) Render(context.Context, model.FormModel, render.RenderOptions) ([]byte, error) {
	return []byte(f.name), nil
}

func TestRegistry_Negotiate(t *testing.T) {
	registry, err := render.NewRegistry(
		fakeRenderer{name: "vanilla", contentType: "text/html; charset=utf-8"},
		fakeRenderer{name: "json", contentType: "application/json"},
	)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	cases := map[string]string{
		"application/json":                  "json",
		"text/html,application/xhtml+xml":   "vanilla",
		"application/xml, application/json": "json",
		"":                                  "vanilla",
		"*/*":                               "vanilla",
	}
	for accept, want := range cases {
		got, err := registry.Negotiate(accept)
		if err != nil {
			t.Fatalf("negotiate %q: %v", accept, err)
		}
		if got.Name() != want {
			t.Errorf("Negotiate(%q) = %s, want %s", accept, got.Name(), want)
		}
	}

	if diff := cmp.Diff([]string{"json", "vanilla"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_Duplicate(t *testing.T) {
	registry, _ := render.NewRegistry(fakeRenderer{name: "json", contentType: "application/json"})
	if err := registry.Register(fakeRenderer{name: "json"}); err == nil {
		t.Fatal("expected duplicate registration error")
	}
	if _, err := registry.Get("missing"); err == nil {
		t.Fatal("expected missing renderer error")
	}
}

func TestRegistry_Empty(t *testing.T) {
	registry, _ := render.NewRegistry()
	if _, err := registry.Negotiate("text/html"); err == nil {
		t.Fatal("expected error without renderers")
	}
}
