package create_lesson

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

// LessonRepository интерфейс хранилища залов и занятий
type LessonRepository interface {
	GetHallByID(ctx context.Context, id int64) (*domain.Hall, error)
	LockHall(ctx context.Context, hallID int64) error
	SaveLesson(ctx context.Context, lesson *domain.Lesson) error
}

// ConflictDetector проверка пересечений с активными резервациями зала
type ConflictDetector interface {
	Check(ctx context.Context, hallID int64, slot domain.TimeSlot) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Metrics interface {
	RecordOutcome(operation, outcome string)
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
