package render

import "github.com/goliatone/go-signup/pkg/signup"

// StateOptions snapshots a controller into RenderOptions. Only the latest
// root error is carried so the form never shows more than one alert.
func StateOptions(ctrl *signup.Controller, hidden ...HiddenField) RenderOptions {
	opts := RenderOptions{
		Values:  ctrl.Values().Map(),
		Pending: ctrl.Pending(),
		Hidden:  MergeHiddenFields(nil, hidden...),
	}
	if errs := ctrl.FieldErrors(); len(errs) > 0 {
		opts.Errors = errs
	}
	opts.FormErrors = MergeFormErrors(nil, ctrl.RootError())
	return opts
}
