package domain

import (
	"fmt"
	"time"
)

// TimeSlot is an immutable interval [start, start+duration)
type TimeSlot struct {
	start           time.Time
	durationMinutes int
}

// NewTimeSlot validates and builds a slot. now is used for the "not too far in the future" bound.
func NewTimeSlot(start time.Time, durationMinutes int, now time.Time) (TimeSlot, error) {
	slot := TimeSlot{start: start.UTC(), durationMinutes: durationMinutes}
	if err := slot.validate(now); err != nil {
		return TimeSlot{}, err
	}
	return slot, nil
}

// RestoreTimeSlot rebuilds a persisted slot without the future bound check
func RestoreTimeSlot(start time.Time, durationMinutes int) TimeSlot {
	return TimeSlot{start: start.UTC(), durationMinutes: durationMinutes}
}

func (s TimeSlot) Start() time.Time {
	return s.start
}

func (s TimeSlot) DurationMinutes() int {
	return s.durationMinutes
}

func (s TimeSlot) Duration() time.Duration {
	return time.Duration(s.durationMinutes) * time.Minute
}

func (s TimeSlot) End() time.Time {
	return s.start.Add(s.Duration())
}

func (s TimeSlot) IsZero() bool {
	return s.start.IsZero() && s.durationMinutes == 0
}

// IsValid checks duration bounds and that the start is at most one year after now
func (s TimeSlot) IsValid(now time.Time) bool {
	return s.validate(now) == nil
}

func (s TimeSlot) validate(now time.Time) error {
	if s.start.IsZero() {
		return validationError("start time is required")
	}
	if s.durationMinutes < MinSlotDurationMinutes || s.durationMinutes > MaxSlotDurationMinutes {
		return validationError("duration must be between %d and %d minutes, got %d",
			MinSlotDurationMinutes, MaxSlotDurationMinutes, s.durationMinutes)
	}
	if s.start.After(now.AddDate(MaxAdvanceYears, 0, 0)) {
		return validationError("start time %s is more than %d year(s) ahead",
			s.start.Format(time.RFC3339), MaxAdvanceYears)
	}
	return nil
}

// OverlapsWith half-open interval test: slots touching at the boundary do not overlap
func (s TimeSlot) OverlapsWith(other TimeSlot) bool {
	return s.start.Before(other.End()) && s.End().After(other.start)
}

// Contains reports whether t lies in [start, end)
func (s TimeSlot) Contains(t time.Time) bool {
	return !t.Before(s.start) && t.Before(s.End())
}

// Compare orders slots by (start, duration)
func (s TimeSlot) Compare(other TimeSlot) int {
	switch {
	case s.start.Before(other.start):
		return -1
	case s.start.After(other.start):
		return 1
	case s.durationMinutes < other.durationMinutes:
		return -1
	case s.durationMinutes > other.durationMinutes:
		return 1
	default:
		return 0
	}
}

func (s TimeSlot) String() string {
	return fmt.Sprintf("%s-%s", s.start.Format(time.RFC3339), s.End().Format(time.RFC3339))
}

// ValidateNotPast rejects slots starting before now; new reservations cannot be made retroactively
func (s TimeSlot) ValidateNotPast(now time.Time) error {
	if s.start.Before(now) {
		return validationError("start time %s is in the past", s.start.Format(time.RFC3339))
	}
	return nil
}
