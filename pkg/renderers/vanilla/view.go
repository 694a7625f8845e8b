package vanilla

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/render"
)

type formView struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Action       string   `json:"action"`
	Method       string   `json:"method"`
	SubmitLabel  string   `json:"submit_label"`
	PendingLabel string   `json:"pending_label"`
	SignIn       linkView `json:"sign_in"`
}

type linkView struct {
	Prompt string `json:"prompt"`
	Text   string `json:"text"`
	Href   string `json:"href"`
}

type fieldView struct {
	Kind         string     `json:"kind"`
	Name         string     `json:"name"`
	ID           string     `json:"id"`
	Label        string     `json:"label"`
	Type         string     `json:"type"`
	Value        string     `json:"value"`
	Checked      bool       `json:"checked"`
	Placeholder  string     `json:"placeholder"`
	Autocomplete string     `json:"autocomplete"`
	MinLength    string     `json:"min_length"`
	Required     bool       `json:"required"`
	Error        string     `json:"error"`
	ErrorID      string     `json:"error_id"`
	LinkText     string     `json:"link_text"`
	LinkHref     string     `json:"link_href"`
	Items        []itemView `json:"items,omitempty"`
	CanRemove    bool       `json:"can_remove"`
	AddLabel     string     `json:"add_label"`
	RemoveLabel  string     `json:"remove_label"`
}

type itemView struct {
	Index        int    `json:"index"`
	Position     int    `json:"position"`
	ID           string `json:"id"`
	Name         string `json:"name"`
	Label        string `json:"label"`
	Type         string `json:"type"`
	Value        string `json:"value"`
	Placeholder  string `json:"placeholder"`
	Autocomplete string `json:"autocomplete"`
	Required     bool   `json:"required"`
	Error        string `json:"error"`
	ErrorID      string `json:"error_id"`
}

type hiddenView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (r *Renderer) viewData(form model.FormModel, opts render.RenderOptions) map[string]any {
	action := form.Endpoint
	if opts.Action != "" {
		action = opts.Action
	}
	method := strings.ToLower(form.Method)
	if method != "get" {
		method = "post"
	}

	fields := make([]fieldView, 0, len(form.Fields))
	for _, field := range form.Fields {
		fields = append(fields, buildField(field, opts))
	}

	hidden := make([]hiddenView, 0, len(opts.Hidden))
	for _, h := range render.SortedHiddenFields(opts.Hidden) {
		hidden = append(hidden, hiddenView{Name: h.Name, Value: h.Value})
	}

	var alert string
	if formErrors := render.MergeFormErrors(opts.FormErrors); len(formErrors) > 0 {
		// Only the latest root error is shown.
		alert = r.alertPolicy.Sanitize(formErrors[len(formErrors)-1])
	}

	return map[string]any{
		"form": formView{
			ID:           form.ID,
			Title:        form.Title,
			Description:  r.textPolicy.Sanitize(form.Description),
			Action:       action,
			Method:       method,
			SubmitLabel:  fallback(form.SubmitLabel, "Submit"),
			PendingLabel: fallback(form.PendingLabel, fallback(form.SubmitLabel, "Submit")),
			SignIn:       linkView(form.SignIn),
		},
		"fields":     fields,
		"hidden":     hidden,
		"alert":      alert,
		"pending":    opts.Pending,
		"stylesheet": r.stylesheetURL,
	}
}

func buildField(field model.Field, opts render.RenderOptions) fieldView {
	view := fieldView{
		Name:         field.Name,
		ID:           controlID(field.Name),
		Label:        field.Label,
		Placeholder:  field.Placeholder,
		Autocomplete: field.UIHints["autocomplete"],
		Required:     field.Required,
		ErrorID:      controlID(field.Name) + "-error",
		Error:        firstError(opts.Errors, field.Name),
	}

	switch field.Type {
	case model.FieldTypeBoolean:
		view.Kind = "checkbox"
		view.Checked = truthy(opts.Values[field.Name])
		view.LinkText = field.UIHints["linkText"]
		view.LinkHref = field.UIHints["linkHref"]
	case model.FieldTypeArray:
		view.Kind = "array"
		view.AddLabel = fallback(field.UIHints["addLabel"], "Add")
		view.RemoveLabel = fallback(field.UIHints["removeLabel"], "Remove")
		view.Items = buildItems(field, opts)
		view.CanRemove = len(view.Items) > 1
	default:
		view.Kind = "input"
		view.Type = inputType(field)
		// Password values only appear when the caller puts them in Values.
		view.Value = stringValue(opts.Values[field.Name])
		if rule, ok := field.Rule(model.ValidationRuleMinLength); ok {
			view.MinLength = rule.Params["value"]
		}
	}
	return view
}

func buildItems(field model.Field, opts render.RenderOptions) []itemView {
	values := sliceValue(opts.Values[field.Name])
	if len(values) == 0 {
		values = []string{""}
	}
	item := model.Field{}
	if field.Items != nil {
		item = *field.Items
	}

	items := make([]itemView, 0, len(values))
	for idx, value := range values {
		path := field.Name + "." + strconv.Itoa(idx)
		id := controlID(field.Name) + "-" + strconv.Itoa(idx)
		items = append(items, itemView{
			Index:        idx,
			Position:     idx + 1,
			ID:           id,
			Name:         fmt.Sprintf("%s[%d]", field.Name, idx),
			Label:        fallback(item.Label, field.Label),
			Type:         inputType(item),
			Value:        value,
			Placeholder:  item.Placeholder,
			Autocomplete: item.UIHints["autocomplete"],
			Required:     item.Required,
			Error:        firstError(opts.Errors, path),
			ErrorID:      id + "-error",
		})
	}
	return items
}

func inputType(field model.Field) string {
	switch field.Format {
	case "email", "password", "tel":
		return field.Format
	default:
		return "text"
	}
}

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "fg-" + trimmed
}

func firstError(errs map[string][]string, path string) string {
	for _, msg := range errs[path] {
		if msg = strings.TrimSpace(msg); msg != "" {
			return msg
		}
	}
	return ""
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func sliceValue(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, stringValue(item))
		}
		return out
	default:
		return nil
	}
}

func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		parsed, err := strconv.ParseBool(v)
		return err == nil && parsed
	default:
		return false
	}
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
