package enroll

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

var (
	// ErrLessonNotFound возвращается, когда занятие не найдено
	ErrLessonNotFound = errors.New("enroll: lesson not found")

	// ErrNoUsableSubscription у клиента нет абонемента, с которого можно списать посещение
	ErrNoUsableSubscription = fmt.Errorf("%w: enroll: client has no usable subscription", domain.ErrBusinessRuleViolation)

	// ErrAlreadyEnrolled клиент уже записан на это занятие
	ErrAlreadyEnrolled = fmt.Errorf("%w: enroll: client is already enrolled", domain.ErrBusinessRuleViolation)

	// ErrTooManyAttempts все попытки compare-and-set проиграли конкурентным записям
	ErrTooManyAttempts = errors.New("enroll: too many concurrent updates")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("enroll: internal error")
)
