package conflicts

import (
	"context"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

// ReservationRepository активные резервации зала
type ReservationRepository interface {
	FindActiveBookings(ctx context.Context, hallID int64) ([]*domain.Booking, error)
	FindActiveLessons(ctx context.Context, hallID int64) ([]*domain.Lesson, error)
}
