package signup

import "log/slog"

// Option configures a Controller.
type Option func(*Controller)

// WithSession sets the optional session collaborator.
func WithSession(refresher SessionRefresher) Option {
	return func(c *Controller) {
		c.sessions = refresher
	}
}

// WithNavigator sets the navigation collaborator.
func WithNavigator(nav Navigator) Option {
	return func(c *Controller) {
		c.nav = nav
	}
}

// WithValidator replaces the default schema validator.
func WithValidator(v SchemaValidator) Option {
	return func(c *Controller) {
		if v != nil {
			c.validator = v
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver registers a lifecycle observer.
func WithObserver(observer Observer) Option {
	return func(c *Controller) {
		c.observer = observer
	}
}

// WithValues seeds the form state, e.g. from a submitted HTTP request. A nil
// contact-number list is kept as-is so validation can report it.
func WithValues(values Values) Option {
	return func(c *Controller) {
		c.values = values.Clone()
		c.phase = PhaseEditing
	}
}
