package get_available_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

var (
	// ErrHallNotFound возвращается, когда зал не найден
	ErrHallNotFound = errors.New("get_available_slots: hall not found")

	// ErrInvalidDate дата в прошлом
	ErrInvalidDate = fmt.Errorf("%w: get_available_slots: date is in the past", domain.ErrValidation)

	ErrInternal = errors.New("get_available_slots: internal error")
)
