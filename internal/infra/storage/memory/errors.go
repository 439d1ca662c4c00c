package memory

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage"
)

var (
	ErrHallNotFound             = fmt.Errorf("%w: memory: hall", storage.ErrNotFound)
	ErrBookingNotFound          = fmt.Errorf("%w: memory: booking", storage.ErrNotFound)
	ErrLessonNotFound           = fmt.Errorf("%w: memory: lesson", storage.ErrNotFound)
	ErrSubscriptionNotFound     = fmt.Errorf("%w: memory: subscription", storage.ErrNotFound)
	ErrSubscriptionTypeNotFound = fmt.Errorf("%w: memory: subscription type", storage.ErrNotFound)
	ErrEnrollmentNotFound       = fmt.Errorf("%w: memory: enrollment", storage.ErrNotFound)

	// ErrNoTransaction блокировка зала вне транзакции
	ErrNoTransaction = errors.New("memory: lock requires a transaction")
)
