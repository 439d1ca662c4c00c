package unenroll

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

var (
	// ErrEnrollmentNotFound клиент не записан на занятие
	ErrEnrollmentNotFound = errors.New("unenroll: enrollment not found")

	// ErrLessonNotFound возвращается, когда занятие не найдено
	ErrLessonNotFound = errors.New("unenroll: lesson not found")

	// ErrLessonAlreadyStarted отписаться можно только от занятия в статусе scheduled
	ErrLessonAlreadyStarted = fmt.Errorf("%w: unenroll: lesson is no longer scheduled", domain.ErrBusinessRuleViolation)

	ErrTooManyAttempts = errors.New("unenroll: too many concurrent updates")

	ErrInternal = errors.New("unenroll: internal error")
)
