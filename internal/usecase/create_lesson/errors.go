package create_lesson

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

var (
	// ErrHallNotFound возвращается, когда зал не найден
	ErrHallNotFound = errors.New("create_lesson: hall not found")

	// ErrExceedsHallCapacity maxParticipants больше вместимости зала
	ErrExceedsHallCapacity = fmt.Errorf("%w: create_lesson: maxParticipants exceeds hall capacity", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_lesson: internal error")
)
