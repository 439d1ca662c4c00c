package models

import (
	"time"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

// TransitionRequest запрос на смену статуса бронирования
type TransitionRequest struct {
	UserID    int64  `json:"userId"`
	BookingID int64  `json:"bookingId"`
	Action    string `json:"action"` // confirm | cancel | complete
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64     `json:"id"`
	ClientID        int64     `json:"clientId"`
	HallID          int64     `json:"hallId"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	Purpose         string    `json:"purpose,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}
	return &BookingResponse{
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

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		if r := FromDomainBooking(b); r != nil {
			resp.Bookings = append(resp.Bookings, *r)
		}
	}
	return resp
}
