package vanilla_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/render"
	"github.com/goliatone/go-signup/pkg/renderers/vanilla"
	"github.com/goliatone/go-signup/pkg/signup"
	"github.com/goliatone/go-signup/pkg/testsupport"
)

func renderDefault(t *testing.T, opts render.RenderOptions, options ...vanilla.Option) string {
	t.Helper()

	form, err := model.Default()
	if err != nil {
		t.Fatalf("default form: %v", err)
	}
	renderer, err := vanilla.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), form, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Errorf("expected output to contain %q", fragment)
		}
	}
}

func TestRender_FieldContract(t *testing.T) {
	html := renderDefault(t, render.RenderOptions{})

	assertContains(t, html,
		`<form id="fg-signUp" class="fg-form" action="/sign-up" method="post" novalidate>`,
		`<label class="fg-label" for="fg-firstName">First name</label>`,
		`<input id="fg-email" name="email" type="email" value="" placeholder="m@example.com" autocomplete="email" required>`,
		`type="password"`,
		`minlength="6"`,
		`name="contactNumbers[0]" type="tel"`,
		`value="append"`,
		`<input id="fg-acceptTerms" name="acceptTerms" type="checkbox" value="true" required>`,
		`<a href="/terms" class="fg-link">terms and conditions</a>`,
		`Already have an account? <a href="/sign-in" class="fg-link">Sign in</a>`,
		`>Create account</button>`,
	)
	if strings.Contains(html, `role="alert"`) {
		t.Fatal("no alert expected without form errors")
	}
}

func TestRender_SingleContactNumberCannotBeRemoved(t *testing.T) {
	html := renderDefault(t, render.RenderOptions{
		Values: map[string]any{"contactNumbers": []any{"555"}},
	})
	assertContains(t, html, `value="remove:0" class="fg-button fg-button--ghost" formnovalidate disabled>`)

	html = renderDefault(t, render.RenderOptions{
		Values: map[string]any{"contactNumbers": []any{"555", "777"}},
	})
	assertContains(t, html,
		`value="remove:0" class="fg-button fg-button--ghost" formnovalidate>`,
		`value="remove:1" class="fg-button fg-button--ghost" formnovalidate>`,
		`name="contactNumbers[1]" type="tel" value="777"`,
	)
}

func TestRender_InlineErrorsAndValues(t *testing.T) {
	html := renderDefault(t, render.RenderOptions{
		Values: map[string]any{
			"firstName":      "Max",
			"email":          "bad",
			"contactNumbers": []any{"", "2"},
			"acceptTerms":    true,
		},
		Errors: map[string][]string{
			"email":            {"Invalid email address"},
			"contactNumbers.0": {"Contact number is required"},
		},
	})

	assertContains(t, html,
		`name="firstName" type="text" value="Max"`,
		`aria-invalid="true" aria-describedby="fg-email-error"`,
		`<p id="fg-email-error" class="fg-error">Invalid email address</p>`,
		`<p id="fg-contactNumbers-0-error" class="fg-error">Contact number is required</p>`,
		`value="true" checked required>`,
		`name="password" type="password" value=""`,
	)
}

func TestRender_PasswordValueOnlyWhenSupplied(t *testing.T) {
	form, err := model.Default()
	if err != nil {
		t.Fatalf("default form: %v", err)
	}
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	ctrl := signup.NewController(&testsupport.RecordingAuth{}, signup.WithValues(testsupport.ValidValues()))
	out, err := renderer.Render(context.Background(), form, render.StateOptions(ctrl))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(out), "secret1") {
		t.Fatal("controller state must not echo the password")
	}

	html := renderDefault(t, render.RenderOptions{
		Values: map[string]any{"password": "secret1"},
	})
	assertContains(t, html, `name="password" type="password" value="secret1"`)
}

func TestRender_RootAlertAndPending(t *testing.T) {
	html := renderDefault(t, render.RenderOptions{
		FormErrors: []string{"previous failure", `<script>alert(1)</script>Email & name taken`},
		Pending:    true,
		Hidden:     map[string]string{"_csrf": "tok"},
	})

	assertContains(t, html,
		`<div class="fg-alert" role="alert">`,
		`Email &amp; name taken`,
		`<input type="hidden" name="_csrf" value="tok">`,
		`aria-busy="true"`,
		`disabled>Creating account...</button>`,
	)
	if strings.Contains(html, "previous failure") {
		t.Fatal("only the latest root error is shown")
	}
	if strings.Contains(html, "<script>") {
		t.Fatal("alert must be sanitised")
	}
}

func TestRender_CustomTemplates(t *testing.T) {
	files := fstest.MapFS{
		"form.tmpl": {Data: []byte(`{{ form.title }}|{% for f in fields %}{{ f.kind }};{% endfor %}`)},
	}
	html := renderDefault(t, render.RenderOptions{}, vanilla.WithTemplatesFS(files))
	if html != "Create an account|input;input;input;input;array;checkbox;" {
		t.Fatalf("unexpected output %q", html)
	}
}

func TestRender_TemplatesDirShadowsBundle(t *testing.T) {
	dir := t.TempDir()
	custom := `{{ form.title }}:{{ form.action }}`
	if err := os.WriteFile(filepath.Join(dir, "form.tmpl"), []byte(custom), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}

	html := renderDefault(t, render.RenderOptions{Action: "/join"}, vanilla.WithTemplatesDir(dir))
	if html != "Create an account:/join" {
		t.Fatalf("unexpected output %q", html)
	}
}

func TestRender_EmptyTemplatesDirUsesBundle(t *testing.T) {
	html := renderDefault(t, render.RenderOptions{}, vanilla.WithTemplatesDir(t.TempDir()))
	assertContains(t, html, `name="email"`)
}

func TestRender_Stylesheet(t *testing.T) {
	html := renderDefault(t, render.RenderOptions{}, vanilla.WithStylesheetURL("/assets/signup.css"))
	assertContains(t, html, `<link rel="stylesheet" href="/assets/signup.css">`)
}

func TestAssetsFS(t *testing.T) {
	data, err := fsReadFile(vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if !strings.Contains(string(data), ".fg-signup") {
		t.Fatal("unexpected stylesheet content")
	}
}
