package booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: booking.repository: booking", storage.ErrNotFound)

	// ErrStatusChanged статус бронирования изменился с момента чтения
	ErrStatusChanged = fmt.Errorf("%w: booking.repository: status changed", storage.ErrConcurrentUpdate)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
