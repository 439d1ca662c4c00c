package purchase_subscription

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

// Repository хранилище типов абонементов и абонементов
type Repository interface {
	GetSubscriptionTypeByID(ctx context.Context, id int64) (*domain.SubscriptionType, error)
	FindSubscriptionsByClient(ctx context.Context, clientID int64) ([]*domain.Subscription, error)
	SaveSubscription(ctx context.Context, sub *domain.Subscription) error
	UpdateSubscription(ctx context.Context, sub *domain.Subscription, expectedVisits int, expectedStatus domain.SubscriptionStatus) error
}

type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Metrics interface {
	RecordOutcome(operation, outcome string)
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
