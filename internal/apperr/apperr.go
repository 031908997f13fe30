package apperr

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or unacceptable input. It is surfaced
// to the caller verbatim and never retried.
type ValidationError struct {
	Message string
	Details []string
}

func (e *ValidationError) Error() string { return e.Message }

func Validation(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing resource or one not owned by the caller.
// The two cases are deliberately indistinguishable so that tenant-scoped
// lookups never leak the existence of other stores' resources.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func NotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// EntitlementError reports a plan-limit or feature-gate rejection. It carries
// enough context for callers to render an upgrade prompt.
type EntitlementError struct {
	Message         string
	CurrentCount    int64
	Limit           int
	TierID          string
	RequiredFeature string
	RequiredTier    string
}

func (e *EntitlementError) Error() string { return e.Message }

// StateTransitionError reports an invalid order-status edge or an attempt to
// mutate an order in a terminal state.
type StateTransitionError struct {
	From string
	To   string
}

func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %q to %q", e.From, e.To)
}

// IntegrityError wraps a persistence-layer write failure. The underlying
// error is logged with full context before being wrapped; callers only see
// a generic failure.
type IntegrityError struct {
	Op  string
	Err error
}

func (e *IntegrityError) Error() string { return "persistence failure: " + e.Op }
func (e *IntegrityError) Unwrap() error { return e.Err }

func Integrity(op string, err error) *IntegrityError {
	return &IntegrityError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
