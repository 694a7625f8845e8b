package render

// RenderOptions describe per-request data that renderers use to draw the
// current form state without mutating the form model.
type RenderOptions struct {
	// Action overrides the endpoint declared by the form model.
	Action string
	// Values pre-populates rendered controls keyed by field name. Array fields
	// carry []any values; the password is never echoed back.
	Values map[string]any
	// Errors surfaces validation feedback keyed by dotted field path
	// ("email", "contactNumbers.1").
	Errors map[string][]string
	// FormErrors are root-level messages shown as a single alert.
	FormErrors []string
	// Hidden carries hidden inputs such as the CSRF token.
	Hidden map[string]string
	// Pending disables the submit control while a submission is in flight.
	Pending bool
}
