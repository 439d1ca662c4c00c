package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetBookingByID(ctx context.Context, id int64) (*domain.Booking, error)
	FindBookingsByClient(ctx context.Context, clientID int64) ([]*domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, booking *domain.Booking, expected domain.BookingStatus) error
}

// StaffChecker определяет сотрудников студии: они подтверждают и завершают брони
type StaffChecker interface {
	IsStaff(userID int64) bool
}

type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
