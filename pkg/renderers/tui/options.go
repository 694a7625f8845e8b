package tui

// Theme captures optional prefixes the runner applies when printing
// messages. Kept minimal to avoid coupling flow logic to ANSI specifics.
type Theme struct {
	InfoPrefix    string
	ErrorPrefix   string
	SuccessPrefix string
}

// DefaultTheme is used when no theme is supplied.
var DefaultTheme = Theme{
	InfoPrefix:    "",
	ErrorPrefix:   "✗ ",
	SuccessPrefix: "✓ ",
}

// PlainTheme avoids non-ASCII symbols for terminals that cannot draw them.
var PlainTheme = Theme{
	InfoPrefix:    "",
	ErrorPrefix:   "error: ",
	SuccessPrefix: "ok: ",
}

// Option configures the terminal runner.
type Option func(*Runner)

// WithPromptDriver overrides the prompt driver used by the runner.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Runner) {
		r.theme = theme
	}
}
