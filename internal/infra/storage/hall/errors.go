package hall

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage"
)

var (
	// ErrHallNotFound возвращается, когда зал не найден
	ErrHallNotFound = fmt.Errorf("%w: hall.repository: hall", storage.ErrNotFound)

	// ErrNoTransaction блокировка зала вне транзакции не имеет смысла
	ErrNoTransaction = errors.New("hall.repository: lock requires a transaction")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("hall.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("hall.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("hall.repository: failed to scan row")
)
