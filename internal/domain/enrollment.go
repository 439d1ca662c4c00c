package domain

import "time"

// EnrollmentStatus represents the status of a lesson enrollment
type EnrollmentStatus string

const (
	EnrollmentStatusActive    EnrollmentStatus = "active"
	EnrollmentStatusCancelled EnrollmentStatus = "cancelled"
)

// Enrollment links a client to a lesson and records which subscription paid for the visit
type Enrollment struct {
	ID             int64
	ClientID       int64
	LessonID       int64
	SubscriptionID int64
	Status         EnrollmentStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewEnrollment creates an active enrollment
func NewEnrollment(clientID, lessonID, subscriptionID int64, now time.Time) *Enrollment {
	return &Enrollment{
		ClientID:       clientID,
		LessonID:       lessonID,
		SubscriptionID: subscriptionID,
		Status:         EnrollmentStatusActive,
		CreatedAt:      now.UTC(),
		UpdatedAt:      now.UTC(),
	}
}

func (e *Enrollment) IsActive() bool {
	return e.Status == EnrollmentStatusActive
}

// Cancel active -> cancelled
func (e *Enrollment) Cancel(now time.Time) error {
	if e.Status != EnrollmentStatusActive {
		return &TransitionError{Entity: "enrollment", From: string(e.Status), Action: "cancel"}
	}
	e.Status = EnrollmentStatusCancelled
	e.UpdatedAt = now.UTC()
	return nil
}
