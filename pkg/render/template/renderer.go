package template

// TemplateRenderer executes a named template against view data.
type TemplateRenderer interface {
	RenderTemplate(name string, data any) (string, error)
}
