package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the domain wraps exactly one of them,
// so callers branch with errors.Is.
var (
	// ErrValidation malformed input detected at construction time, never retried
	ErrValidation = errors.New("validation error")

	// ErrInvalidStateTransition illegal status change for the current state
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrSchedulingConflict overlap with an active reservation of the same hall
	ErrSchedulingConflict = errors.New("scheduling conflict")

	// ErrCapacityExceeded lesson has no free spots
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrBusinessRuleViolation request is well-formed but forbidden by a business rule
	ErrBusinessRuleViolation = errors.New("business rule violation")
)

var (
	// ErrSubscriptionNotActive subscription status is not active
	ErrSubscriptionNotActive = fmt.Errorf("%w: subscription is not active", ErrBusinessRuleViolation)

	// ErrSubscriptionOutOfPeriod current time is outside of [startDate, endDate]
	ErrSubscriptionOutOfPeriod = fmt.Errorf("%w: subscription is outside of its validity period", ErrBusinessRuleViolation)

	// ErrNoVisitsLeft metered subscription has no visits left
	ErrNoVisitsLeft = fmt.Errorf("%w: no visits left on subscription", ErrBusinessRuleViolation)

	// ErrLessonNotBookable lesson is not in scheduled status
	ErrLessonNotBookable = fmt.Errorf("%w: lesson is not open for enrollment", ErrBusinessRuleViolation)

	// ErrLessonFull lesson reached maxParticipants
	ErrLessonFull = fmt.Errorf("%w: lesson is full", ErrCapacityExceeded)
)

// TransitionError describes a rejected status change
type TransitionError struct {
	Entity string
	From   string
	Action string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s from status %q", e.Entity, e.Action, e.From)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
