package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/signup"
)

// Runner walks a user through the sign-up form in a terminal, driving a
// signup.Controller: scalar fields become text prompts, the terms flag a
// confirmation, the contact-number field array a small add/remove menu.
type Runner struct {
	driver PromptDriver
	theme  Theme
}

// New constructs a runner with the survey driver and the default theme.
func New(options ...Option) *Runner {
	r := &Runner{theme: DefaultTheme}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r
}

// Run prompts for every field, submits, and on validation failure prompts
// again for the failing fields only. After a rejected submission the user
// may edit and resubmit. Run returns the final outcome; errors are reserved
// for prompt failures such as ErrAborted.
func (r *Runner) Run(ctx context.Context, form model.FormModel, ctrl *signup.Controller) (signup.Outcome, error) {
	if ctrl == nil {
		return signup.OutcomeFailed, ErrControllerMissing
	}
	if err := r.header(ctx, form); err != nil {
		return signup.OutcomeFailed, err
	}

	if err := r.promptFields(ctx, form.Fields, ctrl, nil); err != nil {
		return signup.OutcomeFailed, err
	}

	for {
		outcome := ctrl.Submit(ctx)
		switch outcome {
		case signup.OutcomeInvalid:
			errs := ctrl.FieldErrors()
			if err := r.reportFieldErrors(ctx, form, errs); err != nil {
				return outcome, err
			}
			if err := r.promptFields(ctx, form.Fields, ctrl, errs); err != nil {
				return outcome, err
			}
		case signup.OutcomeFailed:
			if err := r.driver.Info(ctx, r.theme.ErrorPrefix+ctrl.RootError()); err != nil {
				return outcome, err
			}
			retry, err := r.driver.Confirm(ctx, ConfirmConfig{
				Message: "Edit your details and try again?",
				Default: true,
			})
			if err != nil || !retry {
				return outcome, err
			}
			if err := r.promptFields(ctx, form.Fields, ctrl, nil); err != nil {
				return outcome, err
			}
		case signup.OutcomeSucceeded:
			return outcome, r.driver.Info(ctx, r.theme.SuccessPrefix+"Account created.")
		default:
			return outcome, nil
		}
	}
}

func (r *Runner) header(ctx context.Context, form model.FormModel) error {
	lines := []string{form.Title, form.Description}
	if form.SignIn.Href != "" {
		lines = append(lines, strings.TrimSpace(fmt.Sprintf("%s %s: %s", form.SignIn.Prompt, form.SignIn.Text, form.SignIn.Href)))
	}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+line); err != nil {
			return err
		}
	}
	return nil
}

// promptFields prompts each field in order. With a non-nil errs only fields
// carrying an error (or an error on one of their entries) are prompted.
func (r *Runner) promptFields(ctx context.Context, fields []model.Field, ctrl *signup.Controller, errs signup.FieldErrors) error {
	for _, field := range fields {
		if errs != nil && !hasErrorUnder(errs, field.Name) {
			continue
		}
		var err error
		switch field.Type {
		case model.FieldTypeBoolean:
			err = r.promptBoolean(ctx, field, ctrl)
		case model.FieldTypeArray:
			err = r.promptContacts(ctx, field, ctrl, errs)
		default:
			err = r.promptString(ctx, field, ctrl)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) promptString(ctx context.Context, field model.Field, ctrl *signup.Controller) error {
	values := ctrl.Values()
	current := stringField(values, field.Name)
	cfg := InputConfig{
		Message:     field.Label,
		Default:     current,
		Help:        field.Description,
		Placeholder: field.Placeholder,
	}

	var (
		response string
		err      error
	)
	if field.Format == "password" {
		cfg.Default = ""
		response, err = r.driver.Password(ctx, cfg)
	} else {
		response, err = r.driver.Input(ctx, cfg)
	}
	if err != nil {
		return err
	}

	values = ctrl.Values()
	setStringField(&values, field.Name, response)
	ctrl.SetValues(values)
	return nil
}

func (r *Runner) promptBoolean(ctx context.Context, field model.Field, ctrl *signup.Controller) error {
	message := field.Label
	if text := field.UIHints["linkText"]; text != "" {
		message = strings.TrimSpace(message + " " + text)
		if href := field.UIHints["linkHref"]; href != "" {
			message += " (" + href + ")"
		}
	}
	values := ctrl.Values()
	accepted, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: message,
		Default: values.AcceptTerms,
		Help:    field.Description,
	})
	if err != nil {
		return err
	}
	values = ctrl.Values()
	values.AcceptTerms = accepted
	ctrl.SetValues(values)
	return nil
}

const (
	contactAdd    = "Add contact number"
	contactRemove = "Remove a contact number"
	contactDone   = "Continue"
)

// promptContacts edits the contact-number field array. Existing entries (or
// only the failing ones when errs is set) are prompted first, then a menu
// offers add/remove until the user continues. Remove is only offered while
// more than one entry exists.
func (r *Runner) promptContacts(ctx context.Context, field model.Field, ctrl *signup.Controller, errs signup.FieldErrors) error {
	item := model.Field{Label: field.Label}
	if field.Items != nil {
		item = *field.Items
	}
	addLabel := fallback(field.UIHints["addLabel"], contactAdd)

	numbers := ctrl.Values().ContactNumbers
	if len(numbers) == 0 {
		ctrl.Append("")
		numbers = ctrl.Values().ContactNumbers
	}
	for idx := range numbers {
		if errs != nil && !errs.Has(field.Name+"."+strconv.Itoa(idx)) && !errs.Has(field.Name) {
			continue
		}
		if err := r.promptContact(ctx, item, ctrl, idx); err != nil {
			return err
		}
	}

	for {
		options := []string{addLabel}
		if ctrl.CanRemove() {
			options = append(options, contactRemove)
		}
		options = append(options, contactDone)

		choice, err := r.driver.Select(ctx, SelectConfig{
			Message:      field.Label,
			Options:      options,
			DefaultIndex: len(options) - 1,
			Help:         fallback(field.Description, "Choose "+contactDone+" when every number is entered."),
		})
		if err != nil {
			return err
		}
		if choice < 0 || choice >= len(options) {
			continue
		}

		switch options[choice] {
		case addLabel:
			ctrl.Append("")
			if err := r.promptContact(ctx, item, ctrl, len(ctrl.Values().ContactNumbers)-1); err != nil {
				return err
			}
		case contactRemove:
			if err := r.removeContact(ctx, item, ctrl); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (r *Runner) promptContact(ctx context.Context, item model.Field, ctrl *signup.Controller, idx int) error {
	values := ctrl.Values()
	if idx < 0 || idx >= len(values.ContactNumbers) {
		return nil
	}
	response, err := r.driver.Input(ctx, InputConfig{
		Message:     fmt.Sprintf("%s #%d", item.Label, idx+1),
		Default:     values.ContactNumbers[idx],
		Placeholder: item.Placeholder,
	})
	if err != nil {
		return err
	}
	values = ctrl.Values()
	if idx < len(values.ContactNumbers) {
		values.ContactNumbers[idx] = response
		ctrl.SetValues(values)
	}
	return nil
}

func (r *Runner) removeContact(ctx context.Context, item model.Field, ctrl *signup.Controller) error {
	numbers := ctrl.Values().ContactNumbers
	options := make([]string, len(numbers))
	for i, number := range numbers {
		if number == "" {
			number = "(empty)"
		}
		options[i] = fmt.Sprintf("#%d %s", i+1, number)
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message: "Remove which " + strings.ToLower(item.Label) + "?",
		Options: options,
		Help:    "At least one entry is always kept.",
	})
	if err != nil {
		return err
	}
	if err := ctrl.Remove(idx); err != nil {
		if errors.Is(err, signup.ErrLastContactNumber) || errors.Is(err, signup.ErrContactIndex) {
			return r.driver.Info(ctx, r.theme.ErrorPrefix+"That contact number cannot be removed.")
		}
		return err
	}
	return nil
}

func (r *Runner) reportFieldErrors(ctx context.Context, form model.FormModel, errs signup.FieldErrors) error {
	for _, path := range errs.Paths() {
		if err := r.driver.Info(ctx, fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, pathLabel(form, path), errs.First(path))); err != nil {
			return err
		}
	}
	return nil
}

func pathLabel(form model.FormModel, path string) string {
	name, index, hasIndex := strings.Cut(path, ".")
	field, ok := form.Field(name)
	if !ok {
		return path
	}
	if hasIndex && field.Items != nil {
		if n, err := strconv.Atoi(index); err == nil {
			return fmt.Sprintf("%s #%d", field.Items.Label, n+1)
		}
	}
	return field.Label
}

func hasErrorUnder(errs signup.FieldErrors, name string) bool {
	for path := range errs {
		if path == name || strings.HasPrefix(path, name+".") {
			return true
		}
	}
	return false
}

func stringField(values signup.Values, name string) string {
	switch name {
	case signup.FieldFirstName:
		return values.FirstName
	case signup.FieldLastName:
		return values.LastName
	case signup.FieldEmail:
		return values.Email
	case signup.FieldPassword:
		return values.Password
	default:
		return ""
	}
}

func setStringField(values *signup.Values, name, value string) {
	switch name {
	case signup.FieldFirstName:
		values.FirstName = value
	case signup.FieldLastName:
		values.LastName = value
	case signup.FieldEmail:
		values.Email = value
	case signup.FieldPassword:
		values.Password = value
	}
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
