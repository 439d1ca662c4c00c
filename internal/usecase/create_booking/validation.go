package create_booking

import (
	"time"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

// buildBooking проверяет слот и собирает новую бронь в статусе pending
func buildBooking(req *Request, now time.Time) (*domain.Booking, error) {
	slot, err := domain.NewTimeSlot(req.StartTime, req.DurationMinutes, now)
	if err != nil {
		return nil, err
	}

	if err := slot.ValidateNotPast(now); err != nil {
		return nil, err
	}

	return domain.NewBooking(req.ClientID, req.HallID, slot, req.Purpose, now)
}
