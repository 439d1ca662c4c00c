package enroll

import (
	"time"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

// Request запись клиента на занятие
type Request struct {
	ClientID int64
	LessonID int64
}

// Response созданная запись с итоговыми счётчиками
type Response struct {
	EnrollmentID        int64
	ClientID            int64
	LessonID            int64
	SubscriptionID      int64
	RemainingVisits     int // -1 для безлимитного абонемента
	CurrentParticipants int
	MaxParticipants     int
	CreatedAt           time.Time
}

func toResponse(e *domain.Enrollment, l *domain.Lesson, s *domain.Subscription) *Response {
	return &Response{
		EnrollmentID:        e.ID,
		ClientID:            e.ClientID,
		LessonID:            e.LessonID,
		SubscriptionID:      e.SubscriptionID,
		RemainingVisits:     s.RemainingVisits(),
		CurrentParticipants: l.CurrentParticipants(),
		MaxParticipants:     l.MaxParticipants(),
		CreatedAt:           e.CreatedAt,
	}
}
