package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

// BookingRepository интерфейс хранилища залов и бронирований
type BookingRepository interface {
	GetHallByID(ctx context.Context, id int64) (*domain.Hall, error)
	LockHall(ctx context.Context, hallID int64) error
	SaveBooking(ctx context.Context, booking *domain.Booking) error
}

// ConflictDetector проверка пересечений с активными резервациями зала
type ConflictDetector interface {
	Check(ctx context.Context, hallID int64, slot domain.TimeSlot) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics учёт результатов операции
type Metrics interface {
	RecordOutcome(operation, outcome string)
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

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
