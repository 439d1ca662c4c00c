package pgerrors

import (
	"errors"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage"
)

// Коды ошибок postgres, которые имеют смысл для бизнес-логики
const (
	CodeUniqueViolation      = pq.ErrorCode("23505")
	CodeExclusionViolation   = pq.ErrorCode("23P01")
	CodeSerializationFailure = pq.ErrorCode("40001")
	CodeDeadlockDetected     = pq.ErrorCode("40P01")
)

// Classify переводит ошибку драйвера в общую ошибку хранилища.
// Возвращает nil, если ошибка не относится к известным классам.
func Classify(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}

	switch pqErr.Code {
	case CodeExclusionViolation, CodeSerializationFailure:
		return storage.ErrOverlap
	case CodeUniqueViolation:
		return storage.ErrDuplicate
	case CodeDeadlockDetected:
		return storage.ErrConcurrentUpdate
	default:
		return nil
	}
}
