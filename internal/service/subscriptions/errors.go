package subscriptions

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

var (
	// ErrSubscriptionNotFound возвращается, когда абонемент не найден
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrSubscriptionChanged абонемент изменён параллельным запросом
	ErrSubscriptionChanged = errors.New("subscription was changed concurrently")

	// ErrActiveSubscriptionExists активация второго активного абонемента клиента
	ErrActiveSubscriptionExists = fmt.Errorf("%w: client already has an active subscription", domain.ErrBusinessRuleViolation)

	ErrInternal = errors.New("subscriptions: internal error")
)
