package subscriptiontypes

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

var (
	// ErrTypeNotFound возвращается, когда тип абонемента не найден
	ErrTypeNotFound = errors.New("subscription type not found")

	// ErrTypeInUse по типу уже выданы абонементы, менять его нельзя
	ErrTypeInUse = fmt.Errorf("%w: subscription type is referenced by issued subscriptions", domain.ErrBusinessRuleViolation)

	ErrInternal = errors.New("subscriptiontypes: internal error")
)
