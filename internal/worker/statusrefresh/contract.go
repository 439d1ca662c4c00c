package statusrefresh

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

// Repository данные, которые двигает фоновая задача
type Repository interface {
	FindLessonsToRefresh(ctx context.Context, now time.Time) ([]*domain.Lesson, error)
	UpdateLessonStatus(ctx context.Context, lesson *domain.Lesson, expected domain.LessonStatus) error
	FindSubscriptionsToExpire(ctx context.Context, now time.Time) ([]*domain.Subscription, error)
	UpdateSubscription(ctx context.Context, sub *domain.Subscription, expectedVisits int, expectedStatus domain.SubscriptionStatus) error
}

// Metrics интерфейс для сбора метрик
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
	Printf(format string, v ...interface{})
}

type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
