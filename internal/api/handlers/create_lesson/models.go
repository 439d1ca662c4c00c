package create_lesson

import (
	"time"

	createLesson "github.com/m04kA/SMC-DanceStudio/internal/usecase/create_lesson"
)

// CreateLessonRequest HTTP request model
type CreateLessonRequest struct {
	Type            string    `json:"type" validate:"required,max=50"`
	Name            string    `json:"name" validate:"required,max=100"`
	Description     string    `json:"description,omitempty" validate:"max=2000"`
	StartTime       time.Time `json:"startTime" validate:"required"`
	DurationMinutes int       `json:"durationMinutes" validate:"required,gt=0"`
	Difficulty      string    `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
	MaxParticipants int       `json:"maxParticipants" validate:"required,gt=0"`
	Price           float64   `json:"price" validate:"gte=0"`
	TrainerID       int64     `json:"trainerId" validate:"required,gt=0"`
	HallID          int64     `json:"hallId" validate:"required,gt=0"`
}

// LessonResponse HTTP response model
type LessonResponse struct {
	ID                  int64   `json:"id"`
	Type                string  `json:"type"`
	Name                string  `json:"name"`
	Description         string  `json:"description,omitempty"`
	StartTime           string  `json:"startTime"`
	EndTime             string  `json:"endTime"`
	DurationMinutes     int     `json:"durationMinutes"`
	Difficulty          string  `json:"difficulty"`
	MaxParticipants     int     `json:"maxParticipants"`
	CurrentParticipants int     `json:"currentParticipants"`
	Price               float64 `json:"price"`
	Status              string  `json:"status"`
	TrainerID           int64   `json:"trainerId"`
	HallID              int64   `json:"hallId"`
}

func (r *CreateLessonRequest) ToUseCaseRequest() *createLesson.Request {
	return &createLesson.Request{
		Type:            r.Type,
		Name:            r.Name,
		Description:     r.Description,
		StartTime:       r.StartTime,
		DurationMinutes: r.DurationMinutes,
		Difficulty:      r.Difficulty,
		MaxParticipants: r.MaxParticipants,
		Price:           r.Price,
		TrainerID:       r.TrainerID,
		HallID:          r.HallID,
	}
}

func FromUseCaseResponse(resp *createLesson.Response) *LessonResponse {
	return &LessonResponse{
		ID:                  resp.ID,
		Type:                resp.Type,
		Name:                resp.Name,
		Description:         resp.Description,
		StartTime:           resp.StartTime.Format(time.RFC3339),
		EndTime:             resp.EndTime.Format(time.RFC3339),
		DurationMinutes:     resp.DurationMinutes,
		Difficulty:          resp.Difficulty,
		MaxParticipants:     resp.MaxParticipants,
		CurrentParticipants: resp.CurrentParticipants,
		Price:               resp.Price,
		Status:              resp.Status,
		TrainerID:           resp.TrainerID,
		HallID:              resp.HallID,
	}
}
