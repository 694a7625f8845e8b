package signup

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps dotted field paths (e.g. "email", "contactNumbers.1") to
// user-facing messages.
type FieldErrors map[string][]string

// First returns the first message recorded for path.
func (e FieldErrors) First(path string) string {
	if msgs := e[path]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Has reports whether path carries at least one message.
func (e FieldErrors) Has(path string) bool {
	return len(e[path]) > 0
}

// Paths returns the recorded paths in lexical order.
func (e FieldErrors) Paths() []string {
	paths := make([]string, 0, len(e))
	for path := range e {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func (e FieldErrors) clone() FieldErrors {
	if len(e) == 0 {
		return nil
	}
	out := make(FieldErrors, len(e))
	for path, msgs := range e {
		out[path] = append([]string(nil), msgs...)
	}
	return out
}

// SchemaValidator evaluates the form state against a rule set.
type SchemaValidator interface {
	Validate(values Values) FieldErrors
}

// DefaultMessages maps "<field>.<rule>" to the message shown next to the
// field. Contact-number entries use the "contactNumbers.item" prefix.
var DefaultMessages = map[string]string{
	"firstName.required":           "First name is required",
	"lastName.required":            "Last name is required",
	"email.required":               "Email is required",
	"email.email":                  "Invalid email address",
	"password.required":            "Password is required",
	"password.min":                 "Password must be at least 6 characters",
	"contactNumbers.min":           "At least one contact number is required",
	"contactNumbers.item.required": "Contact number is required",
	"acceptTerms.eq":               "You must accept the terms and conditions",
}

// Validator runs the struct-tag schema declared on Values through
// go-playground/validator and translates failures into FieldErrors.
type Validator struct {
	validate *validator.Validate
	messages map[string]string
}

// ValidatorOption customises a Validator.
type ValidatorOption func(*Validator)

// WithMessages overrides individual messages, keyed like DefaultMessages.
func WithMessages(messages map[string]string) ValidatorOption {
	return func(v *Validator) {
		for key, msg := range messages {
			if key = strings.TrimSpace(key); key != "" {
				v.messages[key] = msg
			}
		}
	}
}

// NewValidator constructs the schema validator.
func NewValidator(options ...ValidatorOption) *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	v := &Validator{
		validate: validate,
		messages: make(map[string]string, len(DefaultMessages)),
	}
	for key, msg := range DefaultMessages {
		v.messages[key] = msg
	}
	for _, opt := range options {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// Validate evaluates every rule and returns nil when the values are valid.
func (v *Validator) Validate(values Values) FieldErrors {
	err := v.validate.Struct(values)
	if err == nil {
		return nil
	}

	var failures validator.ValidationErrors
	if !errors.As(err, &failures) {
		return FieldErrors{"": {err.Error()}}
	}

	out := make(FieldErrors, len(failures))
	for _, failure := range failures {
		path := fieldPath(failure.Namespace())
		out[path] = append(out[path], v.message(path, failure))
	}
	return out
}

func (v *Validator) message(path string, failure validator.FieldError) string {
	key := messageKey(path) + "." + failure.Tag()
	if msg, ok := v.messages[key]; ok {
		return msg
	}
	if failure.Param() != "" {
		return fmt.Sprintf("%s failed %s=%s", path, failure.Tag(), failure.Param())
	}
	return fmt.Sprintf("%s failed %s", path, failure.Tag())
}

// fieldPath turns "Values.contactNumbers[1]" into "contactNumbers.1".
func fieldPath(namespace string) string {
	if idx := strings.IndexByte(namespace, '.'); idx >= 0 {
		namespace = namespace[idx+1:]
	}
	replacer := strings.NewReplacer("[", ".", "]", "")
	return replacer.Replace(namespace)
}

func messageKey(path string) string {
	segments := strings.Split(path, ".")
	if len(segments) > 1 && isNumeric(segments[1]) {
		return segments[0] + ".item"
	}
	return path
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

func isNumeric(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
