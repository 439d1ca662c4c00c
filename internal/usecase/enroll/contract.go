package enroll

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

// Repository хранилище занятий, абонементов и записей.
// UpdateLesson и UpdateSubscription работают как compare-and-set и
// возвращают storage.ErrConcurrentUpdate, если строка успела измениться.
type Repository interface {
	GetLessonByID(ctx context.Context, id int64) (*domain.Lesson, error)
	UpdateLesson(ctx context.Context, lesson *domain.Lesson, expectedParticipants int) error

	FindSubscriptionsByClient(ctx context.Context, clientID int64) ([]*domain.Subscription, error)
	UpdateSubscription(ctx context.Context, sub *domain.Subscription, expectedVisits int, expectedStatus domain.SubscriptionStatus) error

	GetActiveEnrollment(ctx context.Context, clientID, lessonID int64) (*domain.Enrollment, error)
	SaveEnrollment(ctx context.Context, e *domain.Enrollment) error
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
