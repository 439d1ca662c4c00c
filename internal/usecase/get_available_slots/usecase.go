package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage"
)

// UseCase сетка свободных слотов зала на день
type UseCase struct {
	repo         ReservationRepository
	hours        OpeningHours
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(repo ReservationRepository, hours OpeningHours, logger Logger) *UseCase {
	return &UseCase{
		repo:         repo,
		hours:        hours,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute строит сетку слотов и отмечает занятые
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: hall=%d, date=%s, duration=%d",
		req.HallID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	now := uc.timeProvider.Now()
	day := startOfDay(req.Date)

	// 1. Валидация: длительность по правилам TimeSlot, дата не в прошлом
	if _, err := domain.NewTimeSlot(day, req.DurationMinutes, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}
	if day.Before(startOfDay(now)) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", day.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 2. Зал
	if _, err := uc.repo.GetHallByID(ctx, req.HallID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			uc.logger.Warn("GetAvailableSlots: hall id=%d not found", req.HallID)
			return nil, ErrHallNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get hall id=%d: %v", req.HallID, err)
		return nil, fmt.Errorf("%w: failed to get hall: %v", ErrInternal, err)
	}

	// 3. Активные резервации зала
	bookings, err := uc.repo.FindActiveBookings(ctx, req.HallID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}
	lessons, err := uc.repo.FindActiveLessons(ctx, req.HallID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get lessons: %v", err)
		return nil, fmt.Errorf("%w: failed to get lessons: %v", ErrInternal, err)
	}

	// 4. Сетка и занятость
	slots := markAvailability(generateTimeSlots(day, uc.hours, req.DurationMinutes, now), bookings, lessons)

	uc.logger.Info("GetAvailableSlots: generated %d slots for hall=%d, date=%s",
		len(slots), req.HallID, day.Format(domain.DateFormat))

	return &Response{
		HallID: req.HallID,
		Date:   day,
		Slots:  slots,
	}, nil
}
