package purchase_subscription

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

var (
	// ErrSubscriptionTypeNotFound возвращается, когда тип абонемента не найден
	ErrSubscriptionTypeNotFound = errors.New("purchase_subscription: subscription type not found")

	// ErrActiveSubscriptionExists у клиента уже есть активный абонемент
	ErrActiveSubscriptionExists = fmt.Errorf("%w: purchase_subscription: client already has an active subscription", domain.ErrBusinessRuleViolation)

	ErrInternal = errors.New("purchase_subscription: internal error")
)
