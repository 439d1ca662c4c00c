package create_lesson

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage/pgerrors"
)

const operation = "create_lesson"

// UseCase use case для создания занятия в зале
type UseCase struct {
	repo         LessonRepository
	detector     ConflictDetector
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(
	repo LessonRepository,
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

// Execute создаёт занятие в статусе scheduled, если зал свободен на весь слот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateLesson: hall=%d, trainer=%d, start=%s, duration=%d, max=%d",
		req.HallID, req.TrainerID, req.StartTime.Format("2006-01-02T15:04"), req.DurationMinutes, req.MaxParticipants)

	// 1. Валидация входных данных
	now := uc.timeProvider.Now()
	lesson, err := buildLesson(req, now)
	if err != nil {
		uc.logger.Warn("CreateLesson: validation failed: %v", err)
		uc.metrics.RecordOutcome(operation, "invalid")
		return nil, err
	}

	// 2. Проверка зала, конфликтов и запись в одной транзакции; блокировка зала первым запросом
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.repo.LockHall(txCtx, req.HallID); err != nil {
			return fmt.Errorf("%w: failed to lock hall: %v", ErrInternal, err)
		}

		hall, err := uc.repo.GetHallByID(txCtx, req.HallID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrHallNotFound
			}
			return fmt.Errorf("%w: failed to get hall: %v", ErrInternal, err)
		}

		if lesson.MaxParticipants() > hall.Capacity {
			return fmt.Errorf("%w: %d > %d", ErrExceedsHallCapacity, lesson.MaxParticipants(), hall.Capacity)
		}

		if err := uc.detector.Check(txCtx, req.HallID, lesson.Slot()); err != nil {
			return err
		}

		if err := uc.repo.SaveLesson(txCtx, lesson); err != nil {
			if errors.Is(err, storage.ErrOverlap) {
				return fmt.Errorf("%w: hall %d: %v", domain.ErrSchedulingConflict, req.HallID, err)
			}
			return fmt.Errorf("%w: failed to save lesson: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, uc.fail(req, err)
	}

	uc.metrics.RecordOutcome(operation, "ok")
	uc.logger.Info("CreateLesson: created lesson id=%d, hall=%d", lesson.ID(), lesson.HallID())
	return toResponse(lesson), nil
}

func buildLesson(req *Request, now time.Time) (*domain.Lesson, error) {
	slot, err := domain.NewTimeSlot(req.StartTime, req.DurationMinutes, now)
	if err != nil {
		return nil, err
	}
	if err := slot.ValidateNotPast(now); err != nil {
		return nil, err
	}

	return domain.NewLesson(domain.LessonParams{
		Type:            req.Type,
		Name:            req.Name,
		Description:     req.Description,
		Slot:            slot,
		Difficulty:      domain.Difficulty(req.Difficulty),
		MaxParticipants: req.MaxParticipants,
		Price:           req.Price,
		TrainerID:       req.TrainerID,
		HallID:          req.HallID,
	}, now)
}

func (uc *UseCase) fail(req *Request, err error) error {
	switch {
	case errors.Is(err, domain.ErrSchedulingConflict):
		uc.logger.Warn("CreateLesson: hall=%d slot is taken: %v", req.HallID, err)
		uc.metrics.RecordOutcome(operation, "conflict")
		return err
	case errors.Is(pgerrors.Classify(err), storage.ErrOverlap):
		uc.logger.Warn("CreateLesson: hall=%d lost a concurrent reservation: %v", req.HallID, err)
		uc.metrics.RecordOutcome(operation, "conflict")
		return fmt.Errorf("%w: hall %d: %w", domain.ErrSchedulingConflict, req.HallID, err)
	case errors.Is(err, domain.ErrValidation):
		uc.logger.Warn("CreateLesson: %v", err)
		uc.metrics.RecordOutcome(operation, "invalid")
		return err
	case errors.Is(err, ErrHallNotFound):
		uc.logger.Warn("CreateLesson: hall id=%d not found", req.HallID)
		uc.metrics.RecordOutcome(operation, "not_found")
		return err
	case errors.Is(err, ErrInternal):
		uc.logger.Error("CreateLesson: %v", err)
		uc.metrics.RecordOutcome(operation, "error")
		return err
	default:
		uc.logger.Error("CreateLesson: transaction failed: %v", err)
		uc.metrics.RecordOutcome(operation, "error")
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
