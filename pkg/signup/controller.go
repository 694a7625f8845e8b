package signup

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Phase is the form lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseEditing
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseEditing:
		return "editing"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "success"
	case PhaseFailed:
		return "error"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Outcome reports how a Submit call ended.
type Outcome int

const (
	// OutcomeInvalid means validation failed and no collaborator was called.
	OutcomeInvalid Outcome = iota
	// OutcomeFailed means the auth collaborator rejected the sign-up.
	OutcomeFailed
	// OutcomeSucceeded means the account was created and refreshes were
	// requested.
	OutcomeSucceeded
	// OutcomeBusy means a submission was already in flight.
	OutcomeBusy
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInvalid:
		return "invalid"
	case OutcomeFailed:
		return "failed"
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeBusy:
		return "busy"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Controller holds one sign-up form instance.
type Controller struct {
	auth      AuthClient
	sessions  SessionRefresher
	nav       Navigator
	validator SchemaValidator
	logger    *slog.Logger
	observer  Observer

	mu          sync.Mutex
	values      Values
	fieldErrors FieldErrors
	rootError   string
	pending     bool
	phase       Phase
	session     *Session
}

// NewController constructs a form controller around the auth collaborator.
func NewController(auth AuthClient, options ...Option) *Controller {
	c := &Controller{
		auth:   auth,
		values: NewValues(),
		phase:  PhaseIdle,
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	if c.validator == nil {
		c.validator = NewValidator()
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// Values returns a copy of the current form state.
func (c *Controller) Values() Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values.Clone()
}

// SetValues replaces the form state.
func (c *Controller) SetValues(values Values) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = values.Clone()
	c.touch()
}

// Append adds one contact-number entry.
func (c *Controller) Append(value string) {
	c.mu.Lock()
	c.values.ContactNumbers = append(c.values.ContactNumbers, value)
	c.clearContactErrors()
	c.touch()
	c.mu.Unlock()

	c.notifyContacts("append")
}

// Remove deletes the contact-number entry at index. The last remaining entry
// cannot be removed.
func (c *Controller) Remove(index int) error {
	c.mu.Lock()
	numbers := c.values.ContactNumbers
	if index < 0 || index >= len(numbers) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrContactIndex, index)
	}
	if len(numbers) == 1 {
		c.mu.Unlock()
		return ErrLastContactNumber
	}
	next := make([]string, 0, len(numbers)-1)
	next = append(next, numbers[:index]...)
	next = append(next, numbers[index+1:]...)
	c.values.ContactNumbers = next
	c.clearContactErrors()
	c.touch()
	c.mu.Unlock()

	c.notifyContacts("remove")
	return nil
}

// CanRemove reports whether a contact-number entry may be removed.
func (c *Controller) CanRemove() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.values.ContactNumbers) > 1
}

// Submit validates the form and, when valid, signs the user up. On success
// the session collaborator is refreshed before the route refresh is
// requested; form state is left untouched.
func (c *Controller) Submit(ctx context.Context) Outcome {
	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return OutcomeBusy
	}

	c.rootError = ""
	c.values = c.values.Normalize()
	values := c.values.Clone()

	if errs := c.validator.Validate(values); len(errs) > 0 {
		c.fieldErrors = errs
		c.phase = PhaseEditing
		c.mu.Unlock()
		c.logger.Debug("sign up validation failed", "fields", errs.Paths())
		return c.finish(OutcomeInvalid)
	}

	c.fieldErrors = nil
	if c.auth == nil {
		c.rootError = GenericErrorMessage
		c.phase = PhaseFailed
		c.mu.Unlock()
		c.logger.Error("sign up failed", "error", ErrAuthClientMissing)
		return c.finish(OutcomeFailed)
	}
	c.pending = true
	c.phase = PhaseSubmitting
	c.mu.Unlock()

	session, err := c.auth.SignUp(ctx, values)
	if err != nil {
		msg := RootMessage(err)
		c.mu.Lock()
		c.rootError = msg
		c.pending = false
		c.phase = PhaseFailed
		c.mu.Unlock()

		if msg == GenericErrorMessage {
			c.logger.Error("sign up failed", "error", err)
		} else {
			c.logger.Info("sign up rejected", "reason", msg)
		}
		return c.finish(OutcomeFailed)
	}

	c.mu.Lock()
	c.session = &session
	c.phase = PhaseSucceeded
	c.mu.Unlock()
	c.logger.Info("sign up succeeded", "user_id", session.UserID)

	if c.sessions != nil {
		if err := c.sessions.RefreshSession(ctx, session); err != nil {
			c.logger.Warn("session refresh failed", "error", err, "user_id", session.UserID)
		}
	}
	if c.nav != nil {
		if err := c.nav.Refresh(ctx); err != nil {
			c.logger.Warn("route refresh failed", "error", err)
		}
	}
	return c.finish(OutcomeSucceeded)
}

// Pending reports whether a submission is in flight or has completed
// successfully (the surface keeps submit disabled while navigating away).
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Phase returns the lifecycle state.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// RootError returns the form-level error from the latest failed submission.
func (c *Controller) RootError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rootError
}

// FieldErrors returns a copy of the per-field validation errors.
func (c *Controller) FieldErrors() FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fieldErrors.clone()
}

// Session returns the session produced by a successful submission.
func (c *Controller) Session() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// SignInPath returns the navigator's sign-in path, or "" without a navigator.
func (c *Controller) SignInPath() string {
	if c.nav == nil {
		return ""
	}
	return c.nav.SignInPath()
}

// touch moves a settled form back into editing. Callers hold c.mu.
func (c *Controller) touch() {
	switch c.phase {
	case PhaseIdle, PhaseFailed:
		c.phase = PhaseEditing
	}
}

// clearContactErrors drops entry-level errors whose indexes no longer line
// up. Callers hold c.mu.
func (c *Controller) clearContactErrors() {
	for path := range c.fieldErrors {
		if strings.HasPrefix(path, FieldContactNumbers) {
			delete(c.fieldErrors, path)
		}
	}
}

func (c *Controller) finish(outcome Outcome) Outcome {
	if c.observer != nil {
		c.observer.Submitted(outcome)
	}
	return outcome
}

func (c *Controller) notifyContacts(op string) {
	if c.observer != nil {
		c.observer.ContactNumbersChanged(op)
	}
}
