package lesson

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage"
)

var (
	// ErrLessonNotFound возвращается, когда занятие не найдено
	ErrLessonNotFound = fmt.Errorf("%w: lesson.repository: lesson", storage.ErrNotFound)

	// ErrLessonChanged счетчик участников или статус изменились с момента чтения
	ErrLessonChanged = fmt.Errorf("%w: lesson.repository: lesson changed", storage.ErrConcurrentUpdate)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("lesson.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("lesson.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("lesson.repository: failed to scan row")
)
