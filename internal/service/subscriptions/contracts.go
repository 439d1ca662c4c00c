package subscriptions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

// SubscriptionRepository интерфейс репозитория абонементов
type SubscriptionRepository interface {
	GetSubscriptionByID(ctx context.Context, id int64) (*domain.Subscription, error)
	FindSubscriptionsByClient(ctx context.Context, clientID int64) ([]*domain.Subscription, error)
	UpdateSubscription(ctx context.Context, sub *domain.Subscription, expectedVisits int, expectedStatus domain.SubscriptionStatus) error
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
