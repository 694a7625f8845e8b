package model

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeArray   FieldType = "array"
)

const (
	ValidationRuleRequired  = "required"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMinItems  = "minItems"
	ValidationRuleEmail     = "email"
	ValidationRuleAccepted  = "accepted"
)

// ValidationRule represents a single validation constraint applied to a field.
// Length and size limits encode their threshold in Params["value"]. Rules are
// descriptive: renderers use them for hints, the authoritative check runs in
// package signup.
type ValidationRule struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// Field models an individual input inside the form.
type Field struct {
	Name        string            `json:"name" yaml:"name"`
	Type        FieldType         `json:"type" yaml:"type"`
	Format      string            `json:"format,omitempty" yaml:"format,omitempty"`
	Required    bool              `json:"required" yaml:"required"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Items       *Field            `json:"items,omitempty" yaml:"items,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty" yaml:"validations,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty" yaml:"uiHints,omitempty"`
}

// Link is a static navigation target rendered next to the form.
type Link struct {
	Prompt string `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Text   string `json:"text" yaml:"text"`
	Href   string `json:"href" yaml:"href"`
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	ID           string            `json:"id" yaml:"id"`
	Endpoint     string            `json:"endpoint" yaml:"endpoint"`
	Method       string            `json:"method" yaml:"method"`
	Title        string            `json:"title,omitempty" yaml:"title,omitempty"`
	Description  string            `json:"description,omitempty" yaml:"description,omitempty"`
	SubmitLabel  string            `json:"submitLabel,omitempty" yaml:"submitLabel,omitempty"`
	PendingLabel string            `json:"pendingLabel,omitempty" yaml:"pendingLabel,omitempty"`
	Fields       []Field           `json:"fields" yaml:"fields"`
	SignIn       Link              `json:"signIn" yaml:"signIn"`
	Metadata     map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Field returns the top-level field with the given name.
func (f FormModel) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Rule returns the first validation rule of the given kind.
func (f Field) Rule(kind string) (ValidationRule, bool) {
	for _, rule := range f.Validations {
		if rule.Kind == kind {
			return rule, true
		}
	}
	return ValidationRule{}, false
}
