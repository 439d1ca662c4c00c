package enrollment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage"
)

var (
	// ErrEnrollmentNotFound активная запись клиента на занятие не найдена
	ErrEnrollmentNotFound = fmt.Errorf("%w: enrollment.repository: enrollment", storage.ErrNotFound)

	// ErrEnrollmentChanged статус записи изменился с момента чтения
	ErrEnrollmentChanged = fmt.Errorf("%w: enrollment.repository: enrollment changed", storage.ErrConcurrentUpdate)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("enrollment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("enrollment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("enrollment.repository: failed to scan row")
)
