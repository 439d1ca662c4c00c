package subscriptiontypes

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

// TypeRepository интерфейс репозитория типов абонементов
type TypeRepository interface {
	SaveSubscriptionType(ctx context.Context, t *domain.SubscriptionType) error
	GetSubscriptionTypeByID(ctx context.Context, id int64) (*domain.SubscriptionType, error)
	UpdateSubscriptionType(ctx context.Context, t *domain.SubscriptionType) error
	CountSubscriptionsByType(ctx context.Context, typeID int64) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
