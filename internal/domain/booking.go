package domain

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// BookingAction is a named transition of the booking state machine
type BookingAction string

const (
	BookingActionConfirm  BookingAction = "confirm"
	BookingActionCancel   BookingAction = "cancel"
	BookingActionComplete BookingAction = "complete"
)

// bookingTransitions static transition table; cancelled and completed are terminal
var bookingTransitions = map[BookingStatus]map[BookingAction]BookingStatus{
	BookingStatusPending: {
		BookingActionConfirm: BookingStatusConfirmed,
		BookingActionCancel:  BookingStatusCancelled,
	},
	BookingStatusConfirmed: {
		BookingActionComplete: BookingStatusCompleted,
		BookingActionCancel:   BookingStatusCancelled,
	},
}

// Booking is an ad-hoc hall reservation made by a client
type Booking struct {
	id        int64
	clientID  int64
	hallID    int64
	slot      TimeSlot
	status    BookingStatus
	purpose   string
	createdAt time.Time
	updatedAt time.Time
}

// BookingRecord is the persisted form of a booking used by storage adapters
type BookingRecord struct {
	ID              int64
	ClientID        int64
	HallID          int64
	StartTime       time.Time
	DurationMinutes int
	Status          BookingStatus
	Purpose         string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBooking creates a pending booking
func NewBooking(clientID, hallID int64, slot TimeSlot, purpose string, now time.Time) (*Booking, error) {
	if clientID <= 0 {
		return nil, validationError("clientID must be positive")
	}
	if hallID <= 0 {
		return nil, validationError("hallID must be positive")
	}
	if slot.IsZero() {
		return nil, validationError("time slot is required")
	}

	cleanPurpose, err := SanitizePurpose(purpose)
	if err != nil {
		return nil, err
	}

	return &Booking{
		clientID:  clientID,
		hallID:    hallID,
		slot:      slot,
		status:    BookingStatusPending,
		purpose:   cleanPurpose,
		createdAt: now.UTC(),
		updatedAt: now.UTC(),
	}, nil
}

// RestoreBooking rebuilds a booking loaded from storage
func RestoreBooking(r BookingRecord) (*Booking, error) {
	if _, err := ParseBookingStatus(string(r.Status)); err != nil {
		return nil, err
	}
	return &Booking{
		id:        r.ID,
		clientID:  r.ClientID,
		hallID:    r.HallID,
		slot:      RestoreTimeSlot(r.StartTime, r.DurationMinutes),
		status:    r.Status,
		purpose:   r.Purpose,
		createdAt: r.CreatedAt,
		updatedAt: r.UpdatedAt,
	}, nil
}

// Record returns the persisted form of the booking
func (b *Booking) Record() BookingRecord {
	return BookingRecord{
		ID:              b.id,
		ClientID:        b.clientID,
		HallID:          b.hallID,
		StartTime:       b.slot.Start(),
		DurationMinutes: b.slot.DurationMinutes(),
		Status:          b.status,
		Purpose:         b.purpose,
		CreatedAt:       b.createdAt,
		UpdatedAt:       b.updatedAt,
	}
}

// MarkPersisted stores identity and timestamps assigned by storage on insert
func (b *Booking) MarkPersisted(id int64, createdAt, updatedAt time.Time) {
	b.id = id
	b.createdAt = createdAt
	b.updatedAt = updatedAt
}

func (b *Booking) ID() int64             { return b.id }
func (b *Booking) ClientID() int64       { return b.clientID }
func (b *Booking) HallID() int64         { return b.hallID }
func (b *Booking) Slot() TimeSlot        { return b.slot }
func (b *Booking) Status() BookingStatus { return b.status }
func (b *Booking) Purpose() string       { return b.purpose }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time  { return b.updatedAt }

// IsActive returns true for pending and confirmed bookings
func (b *Booking) IsActive() bool {
	return b.status == BookingStatusPending || b.status == BookingStatusConfirmed
}

// CanApply reports whether the action is legal from the current status
func (b *Booking) CanApply(action BookingAction) bool {
	_, ok := bookingTransitions[b.status][action]
	return ok
}

// Apply performs the transition or fails with a TransitionError leaving the status unchanged
func (b *Booking) Apply(action BookingAction, now time.Time) error {
	next, ok := bookingTransitions[b.status][action]
	if !ok {
		return &TransitionError{Entity: "booking", From: string(b.status), Action: string(action)}
	}
	b.status = next
	b.updatedAt = now.UTC()
	return nil
}

func (b *Booking) Confirm(now time.Time) error {
	return b.Apply(BookingActionConfirm, now)
}

func (b *Booking) Cancel(now time.Time) error {
	return b.Apply(BookingActionCancel, now)
}

func (b *Booking) Complete(now time.Time) error {
	return b.Apply(BookingActionComplete, now)
}

// ParseBookingStatus validates a status string
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch status := BookingStatus(s); status {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return status, nil
	default:
		return "", validationError("unknown booking status %q", s)
	}
}

// ParseBookingAction validates an action string
func ParseBookingAction(s string) (BookingAction, error) {
	switch action := BookingAction(s); action {
	case BookingActionConfirm, BookingActionCancel, BookingActionComplete:
		return action, nil
	default:
		return "", validationError("unknown booking action %q", s)
	}
}

// SanitizePurpose strips control characters and surrounding spaces and enforces the length bound
func SanitizePurpose(purpose string) (string, error) {
	if !utf8.ValidString(purpose) {
		return "", validationError("purpose is not valid UTF-8")
	}

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, purpose)
	cleaned = strings.TrimSpace(cleaned)

	if utf8.RuneCountInString(cleaned) > MaxPurposeLength {
		return "", validationError("purpose must be at most %d characters", MaxPurposeLength)
	}
	return cleaned, nil
}
