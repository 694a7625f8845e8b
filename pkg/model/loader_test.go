package model_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-signup/pkg/model"
)

func TestDefault_SignUpForm(t *testing.T) {
	form, err := model.Default()
	if err != nil {
		t.Fatalf("default form: %v", err)
	}

	var names []string
	for _, field := range form.Fields {
		names = append(names, field.Name)
	}
	want := []string{"firstName", "lastName", "email", "password", "contactNumbers", "acceptTerms"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	contacts, ok := form.Field("contactNumbers")
	if !ok {
		t.Fatal("expected contactNumbers field")
	}
	if contacts.Type != model.FieldTypeArray || contacts.Items == nil {
		t.Fatalf("contactNumbers should be an array with items, got %+v", contacts)
	}
	rule, ok := contacts.Rule(model.ValidationRuleMinItems)
	if !ok || rule.Params["value"] != "1" {
		t.Fatalf("expected minItems=1, got %+v", rule)
	}

	password, _ := form.Field("password")
	if rule, ok := password.Rule(model.ValidationRuleMinLength); !ok || rule.Params["value"] != "6" {
		t.Fatalf("expected password minLength=6, got %+v", rule)
	}
	if form.SignIn.Href != "/sign-in" {
		t.Fatalf("unexpected sign in href %q", form.SignIn.Href)
	}
}

func TestParse_FillsDefaults(t *testing.T) {
	src := `
id: custom
fields:
  - name: favouriteColour
    validations:
      - kind: required
`
	form, err := model.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if form.Method != "POST" {
		t.Fatalf("expected POST default, got %q", form.Method)
	}
	field := form.Fields[0]
	if field.Type != model.FieldTypeString {
		t.Fatalf("expected string default type, got %q", field.Type)
	}
	if field.Label != "Favourite colour" {
		t.Fatalf("unexpected derived label %q", field.Label)
	}
	if !field.Required {
		t.Fatal("required rule should mark the field required")
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]struct {
		src  string
		want string
	}{
		"missing id":      {src: "fields: [{name: a}]", want: "form id is required"},
		"no fields":       {src: "id: x", want: "declares no fields"},
		"array no items":  {src: "id: x\nfields: [{name: a, type: array}]", want: "requires items"},
		"bad type":        {src: "id: x\nfields: [{name: a, type: object}]", want: "unsupported type"},
		"duplicate field": {src: "id: x\nfields: [{name: a}, {name: a}]", want: "duplicate field"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := model.Parse([]byte(tc.src))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"firstName":       "First name",
		"contact_numbers": "Contact numbers",
		"address2":        "Address 2",
		"":                "",
	}
	for in, want := range cases {
		if got := model.DefaultLabeler(in); got != want {
			t.Errorf("DefaultLabeler(%q) = %q, want %q", in, got, want)
		}
	}
}
