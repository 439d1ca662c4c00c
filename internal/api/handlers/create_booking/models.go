package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-DanceStudio/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	HallID          int64     `json:"hallId" validate:"required,gt=0"`
	StartTime       time.Time `json:"startTime" validate:"required"` // RFC3339
	DurationMinutes int       `json:"durationMinutes" validate:"required,gt=0"`
	Purpose         string    `json:"purpose,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64  `json:"id"`
	ClientID        int64  `json:"clientId"`
	HallID          int64  `json:"hallId"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	Purpose         string `json:"purpose,omitempty"`
	CreatedAt       string `json:"createdAt"`
}

// ToUseCaseRequest клиент берётся из X-User-ID, а не из тела
func (r *CreateBookingRequest) ToUseCaseRequest(clientID int64) *createBooking.Request {
	return &createBooking.Request{
		ClientID:        clientID,
		HallID:          r.HallID,
		StartTime:       r.StartTime,
		DurationMinutes: r.DurationMinutes,
		Purpose:         r.Purpose,
	}
}

func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		HallID:          resp.HallID,
		StartTime:       resp.StartTime.Format(time.RFC3339),
		EndTime:         resp.EndTime.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Purpose:         resp.Purpose,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
