package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage/pgerrors"
)

const operation = "create_booking"

// UseCase use case для создания бронирования зала
type UseCase struct {
	repo         BookingRepository
	detector     ConflictDetector
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	repo BookingRepository,
	detector ConflictDetector,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		repo:         repo,
		detector:     detector,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка конфликтов и вставка идут в одной транзакции READ COMMITTED под блокировкой зала:
// блокировка берётся первым запросом, поэтому проверка видит всё, что успели зафиксировать конкуренты.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, hall=%d, start=%s, duration=%d",
		req.ClientID, req.HallID, req.StartTime.Format("2006-01-02T15:04"), req.DurationMinutes)

	// 1. Валидация входных данных
	now := uc.timeProvider.Now()
	booking, err := buildBooking(req, now)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.RecordOutcome(operation, "invalid")
		return nil, err
	}

	// 2. Проверка и запись в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Блокируем зал до конца транзакции
		if err := uc.repo.LockHall(txCtx, req.HallID); err != nil {
			return fmt.Errorf("%w: failed to lock hall: %v", ErrInternal, err)
		}

		// 2.2. Зал должен существовать
		if _, err := uc.repo.GetHallByID(txCtx, req.HallID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrHallNotFound
			}
			return fmt.Errorf("%w: failed to get hall: %v", ErrInternal, err)
		}

		// 2.3. Ищем пересечения с активными бронями и занятиями
		if err := uc.detector.Check(txCtx, req.HallID, booking.Slot()); err != nil {
			return err
		}

		// 2.4. Сохраняем; exclusion constraint остаётся последней линией защиты
		if err := uc.repo.SaveBooking(txCtx, booking); err != nil {
			if errors.Is(err, storage.ErrOverlap) {
				return fmt.Errorf("%w: hall %d: %v", domain.ErrSchedulingConflict, req.HallID, err)
			}
			return fmt.Errorf("%w: failed to save booking: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, uc.fail(req, err)
	}

	uc.metrics.RecordOutcome(operation, "ok")
	uc.logger.Info("CreateBooking: created booking id=%d, hall=%d", booking.ID(), booking.HallID())
	return toResponse(booking), nil
}

func (uc *UseCase) fail(req *Request, err error) error {
	switch {
	case errors.Is(err, domain.ErrSchedulingConflict):
		uc.logger.Warn("CreateBooking: hall=%d slot is taken: %v", req.HallID, err)
		uc.metrics.RecordOutcome(operation, "conflict")
		return err
	case errors.Is(pgerrors.Classify(err), storage.ErrOverlap):
		uc.logger.Warn("CreateBooking: hall=%d lost a concurrent reservation: %v", req.HallID, err)
		uc.metrics.RecordOutcome(operation, "conflict")
		return fmt.Errorf("%w: hall %d: %w", domain.ErrSchedulingConflict, req.HallID, err)
	case errors.Is(err, ErrHallNotFound):
		uc.logger.Warn("CreateBooking: hall id=%d not found", req.HallID)
		uc.metrics.RecordOutcome(operation, "not_found")
		return err
	case errors.Is(err, ErrInternal):
		uc.logger.Error("CreateBooking: %v", err)
		uc.metrics.RecordOutcome(operation, "error")
		return err
	default:
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		uc.metrics.RecordOutcome(operation, "error")
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
