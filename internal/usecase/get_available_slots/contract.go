package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

// ReservationRepository зал и его активные резервации
type ReservationRepository interface {
	GetHallByID(ctx context.Context, id int64) (*domain.Hall, error)
	FindActiveBookings(ctx context.Context, hallID int64) ([]*domain.Booking, error)
	FindActiveLessons(ctx context.Context, hallID int64) ([]*domain.Lesson, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
