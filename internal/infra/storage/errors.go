package storage

import "errors"

// Ошибки, общие для всех бэкендов хранилища (postgres, mongo, memory).
// Репозитории оборачивают их, use cases проверяют через errors.Is.
var (
	// ErrNotFound запись не найдена
	ErrNotFound = errors.New("storage: not found")

	// ErrConcurrentUpdate compare-and-set не прошёл: запись изменена другим запросом
	ErrConcurrentUpdate = errors.New("storage: concurrent update")

	// ErrOverlap хранилище отклонило пересекающуюся резервацию зала
	// (exclusion constraint или конфликт сериализации)
	ErrOverlap = errors.New("storage: overlapping reservation")

	// ErrDuplicate нарушена уникальность (активный абонемент клиента, повторная запись на занятие)
	ErrDuplicate = errors.New("storage: duplicate record")
)
