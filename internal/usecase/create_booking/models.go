package create_booking

import (
	"time"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientID        int64     // ID клиента
	HallID          int64     // ID зала
	StartTime       time.Time // Начало слота
	DurationMinutes int       // Длительность в минутах
	Purpose         string    // Цель бронирования (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	ClientID        int64
	HallID          int64
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Status          string
	Purpose         string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID(),
		ClientID:        b.ClientID(),
		HallID:          b.HallID(),
		StartTime:       b.Slot().Start(),
		EndTime:         b.Slot().End(),
		DurationMinutes: b.Slot().DurationMinutes(),
		Status:          string(b.Status()),
		Purpose:         b.Purpose(),
		CreatedAt:       b.CreatedAt(),
		UpdatedAt:       b.UpdatedAt(),
	}
}
