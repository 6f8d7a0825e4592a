package wizard

import (
	"context"
	"errors"
	"strings"

	"resumekit/internal/domain"
)

// SubmitFunc delivers a cleaned profile to the profile service. Implementations
// attach credentials and return an error wrapping domain.ErrSessionExpired when the
// session has ended.
type SubmitFunc func(ctx context.Context, payload domain.ProfileDraft) error

type ResultKind string

const (
	ResultSuccess ResultKind = "success"
	ResultError   ResultKind = "error"
)

type Result struct {
	Kind    ResultKind
	Message string
}

const (
	successMessage   = "Profile created successfully!"
	rejectedMessage  = "Failed to create profile. Please try again."
	transportMessage = "An error occurred while creating the profile. Please try again."
)

// UserMessager is implemented by submit errors that carry a server-provided message.
type UserMessager interface {
	UserMessage() string
	// Rejected reports that the server answered, as opposed to a transport failure.
	Rejected() bool
}

// ErrInvalidDraft is returned by BeginSubmit when validation blocks the submission.
var ErrInvalidDraft = errors.New("profile has validation errors")

// BeginSubmit validates the whole draft and returns the cleaned payload. On blocking
// errors the error map is replaced and ErrInvalidDraft returned. While a submission is
// outstanding further calls return ErrSubmitInFlight.
func (c *Controller) BeginSubmit() (domain.ProfileDraft, error) {
	if c.submitting {
		return domain.ProfileDraft{}, ErrSubmitInFlight
	}
	c.result = nil
	errs := ValidateAll(c.draft)
	if Blocking(errs) {
		c.errors = errs
		return domain.ProfileDraft{}, ErrInvalidDraft
	}
	c.submitting = true
	return c.draft.Cleaned(), nil
}

// FinishSubmit records the outcome of the call started by BeginSubmit. A session
// error is handed back without touching the result; the session owner decides what
// happens next.
func (c *Controller) FinishSubmit(err error) error {
	c.submitting = false
	switch {
	case err == nil:
		c.result = &Result{Kind: ResultSuccess, Message: successMessage}
		c.errors = domain.ErrorMap{}
		return nil
	case errors.Is(err, domain.ErrSessionExpired):
		return err
	default:
		c.result = &Result{Kind: ResultError, Message: failureMessage(err)}
		return nil
	}
}

// Submit runs BeginSubmit, the injected SubmitFunc, and FinishSubmit in one call.
// Validation failures are reported through Errors, not the returned error.
func (c *Controller) Submit(ctx context.Context) error {
	payload, err := c.BeginSubmit()
	if errors.Is(err, ErrInvalidDraft) {
		return nil
	}
	if err != nil {
		return err
	}
	if c.submit == nil {
		c.submitting = false
		return errors.New("no profile submitter configured")
	}
	return c.FinishSubmit(c.submit(ctx, payload))
}

func failureMessage(err error) string {
	var um UserMessager
	if errors.As(err, &um) {
		if msg := um.UserMessage(); strings.TrimSpace(msg) != "" {
			return msg
		}
		if um.Rejected() {
			return rejectedMessage
		}
	}
	return transportMessage
}
