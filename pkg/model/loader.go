package model

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	errFormIDMissing     = errors.New("model: form id is required")
	errFormFieldsMissing = errors.New("model: form declares no fields")
)

// Default returns the bundled sign-up form model.
func Default() (FormModel, error) {
	return LoadFS(EmbeddedFS(), DefaultFormFile)
}

// LoadFile parses a YAML form definition from disk.
func LoadFile(path string) (FormModel, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return FormModel{}, fmt.Errorf("model: read %s: %w", path, err)
	}
	return Parse(data)
}

// LoadFS parses a YAML form definition from fsys.
func LoadFS(fsys fs.FS, name string) (FormModel, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return FormModel{}, fmt.Errorf("model: read %s: %w", name, err)
	}
	return Parse(data)
}

// Parse decodes a YAML (or JSON) form definition and fills defaults: labels
// derived from field names, POST as the method and required flags implied by
// required validation rules.
func Parse(data []byte) (FormModel, error) {
	var form FormModel
	if err := yaml.Unmarshal(data, &form); err != nil {
		return FormModel{}, fmt.Errorf("model: decode form: %w", err)
	}
	if strings.TrimSpace(form.ID) == "" {
		return FormModel{}, errFormIDMissing
	}
	if len(form.Fields) == 0 {
		return FormModel{}, errFormFieldsMissing
	}
	if form.Method == "" {
		form.Method = "POST"
	}
	form.Method = strings.ToUpper(form.Method)

	seen := make(map[string]struct{}, len(form.Fields))
	for i := range form.Fields {
		if err := normalizeField(&form.Fields[i]); err != nil {
			return FormModel{}, err
		}
		if _, dup := seen[form.Fields[i].Name]; dup {
			return FormModel{}, fmt.Errorf("model: duplicate field %q", form.Fields[i].Name)
		}
		seen[form.Fields[i].Name] = struct{}{}
	}
	return form, nil
}

func normalizeField(field *Field) error {
	field.Name = strings.TrimSpace(field.Name)
	if field.Name == "" {
		return errors.New("model: field name is required")
	}
	if field.Type == "" {
		field.Type = FieldTypeString
	}
	switch field.Type {
	case FieldTypeString, FieldTypeBoolean:
	case FieldTypeArray:
		if field.Items == nil {
			return fmt.Errorf("model: array field %q requires items", field.Name)
		}
		if err := normalizeField(field.Items); err != nil {
			return err
		}
	default:
		return fmt.Errorf("model: field %q has unsupported type %q", field.Name, field.Type)
	}
	if field.Label == "" {
		field.Label = DefaultLabeler(field.Name)
	}
	if _, ok := field.Rule(ValidationRuleRequired); ok {
		field.Required = true
	}
	return nil
}
