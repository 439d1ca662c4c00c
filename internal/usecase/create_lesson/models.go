package create_lesson

import (
	"time"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

// Request модель запроса на создание занятия
type Request struct {
	Type            string
	Name            string
	Description     string
	StartTime       time.Time
	DurationMinutes int
	Difficulty      string
	MaxParticipants int
	Price           float64
	TrainerID       int64
	HallID          int64
}

// Response созданное занятие
type Response struct {
	ID                  int64
	Type                string
	Name                string
	Description         string
	StartTime           time.Time
	EndTime             time.Time
	DurationMinutes     int
	Difficulty          string
	MaxParticipants     int
	CurrentParticipants int
	Price               float64
	Status              string
	TrainerID           int64
	HallID              int64
	CreatedAt           time.Time
}

func toResponse(l *domain.Lesson) *Response {
	return &Response{
		ID:                  l.ID(),
		Type:                l.Type(),
		Name:                l.Name(),
		Description:         l.Description(),
		StartTime:           l.Slot().Start(),
		EndTime:             l.Slot().End(),
		DurationMinutes:     l.Slot().DurationMinutes(),
		Difficulty:          string(l.Difficulty()),
		MaxParticipants:     l.MaxParticipants(),
		CurrentParticipants: l.CurrentParticipants(),
		Price:               l.Price(),
		Status:              string(l.Status()),
		TrainerID:           l.TrainerID(),
		HallID:              l.HallID(),
		CreatedAt:           l.CreatedAt(),
	}
}
