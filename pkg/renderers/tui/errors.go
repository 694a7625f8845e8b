package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrControllerMissing is returned when Run is called without a form
	// controller.
	ErrControllerMissing = errors.New("tui: controller is required")
)
