package subscription

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage"
)

var (
	// ErrSubscriptionNotFound возвращается, когда абонемент не найден
	ErrSubscriptionNotFound = fmt.Errorf("%w: subscription.repository: subscription", storage.ErrNotFound)

	// ErrSubscriptionTypeNotFound возвращается, когда тип абонемента не найден
	ErrSubscriptionTypeNotFound = fmt.Errorf("%w: subscription.repository: subscription type", storage.ErrNotFound)

	// ErrSubscriptionChanged остаток визитов или статус изменились с момента чтения
	ErrSubscriptionChanged = fmt.Errorf("%w: subscription.repository: subscription changed", storage.ErrConcurrentUpdate)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("subscription.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("subscription.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("subscription.repository: failed to scan row")
)
