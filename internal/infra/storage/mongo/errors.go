package mongo

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage"
)

var (
	ErrHallNotFound             = fmt.Errorf("%w: mongo: hall", storage.ErrNotFound)
	ErrBookingNotFound          = fmt.Errorf("%w: mongo: booking", storage.ErrNotFound)
	ErrLessonNotFound           = fmt.Errorf("%w: mongo: lesson", storage.ErrNotFound)
	ErrSubscriptionNotFound     = fmt.Errorf("%w: mongo: subscription", storage.ErrNotFound)
	ErrSubscriptionTypeNotFound = fmt.Errorf("%w: mongo: subscription type", storage.ErrNotFound)
	ErrEnrollmentNotFound       = fmt.Errorf("%w: mongo: enrollment", storage.ErrNotFound)

	ErrQuery         = errors.New("mongo: query failed")
	ErrDecode        = errors.New("mongo: decode failed")
	ErrNoTransaction = errors.New("mongo: lock requires a transaction")
)

// wrap приводит ошибку драйвера к ошибкам storage.
// Исходная ошибка остаётся в цепочке: по её меткам WithTransaction решает, повторять ли транзакцию.
func wrap(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %s: %w", storage.ErrDuplicate, op, err)
	}

	var labeled interface{ HasErrorLabel(string) bool }
	if errors.As(err, &labeled) && labeled.HasErrorLabel("TransientTransactionError") {
		return fmt.Errorf("%w: %s: %w", storage.ErrConcurrentUpdate, op, err)
	}

	return fmt.Errorf("%w: %s: %v", ErrQuery, op, err)
}
