package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

// DomainStatus HTTP-код для доменной категории ошибки; false, если категория не распознана
func DomainStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, true
	case errors.Is(err, domain.ErrSchedulingConflict),
		errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrInvalidStateTransition):
		return http.StatusConflict, true
	case errors.Is(err, domain.ErrBusinessRuleViolation):
		return http.StatusUnprocessableEntity, true
	default:
		return 0, false
	}
}

// RespondDomainError отвечает по категории ошибки, текст ошибки уходит клиенту
func RespondDomainError(w http.ResponseWriter, err error) bool {
	status, ok := DomainStatus(err)
	if !ok {
		return false
	}
	RespondError(w, status, err.Error())
	return true
}
