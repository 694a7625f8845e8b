package signup

import (
	"context"
	"encoding/json"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/renderers/jsonform"
	"github.com/goliatone/go-signup/pkg/renderers/vanilla"
)

func TestGenerateHTML_DefaultForm(t *testing.T) {
	html, err := GenerateHTML(context.Background(), RenderOptions{
		FormErrors: []string{"Email taken"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	out := string(html)
	for _, fragment := range []string{`id="fg-signUp"`, `role="alert"`, "Email taken"} {
		if !strings.Contains(out, fragment) {
			t.Errorf("expected %q in output", fragment)
		}
	}
}

func TestGenerate_JSONRenderer(t *testing.T) {
	form, err := model.Default()
	if err != nil {
		t.Fatalf("default form: %v", err)
	}
	out, err := Generate(context.Background(), form, "json", RenderOptions{Pending: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	var doc jsonform.Document
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !doc.State.Pending {
		t.Fatal("expected pending state")
	}
}

func TestGenerate_UnknownRenderer(t *testing.T) {
	form, _ := model.Default()
	if _, err := Generate(context.Background(), form, "pdf", RenderOptions{}); err == nil {
		t.Fatal("expected error for unknown renderer")
	}
}

func TestNewRegistry_HTMLIsFallback(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	renderer, err := registry.Negotiate("image/png")
	if err != nil {
		t.Fatalf("negotiate: %v", err)
	}
	if renderer.Name() != "vanilla" {
		t.Fatalf("fallback = %q, want vanilla", renderer.Name())
	}
}

func TestAssetsFS_ContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if !strings.Contains(string(data), ".fg-signup") {
		t.Fatal("expected stylesheet rules for the sign-up section")
	}
}

func TestEmbeddedTemplates_ContainsForm(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), "form.tmpl"); err != nil {
		t.Fatalf("read form template: %v", err)
	}
}
