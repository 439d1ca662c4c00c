package unenroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage"
)

const (
	operation          = "unenroll"
	defaultMaxAttempts = 3
)

// UseCase отмена записи: освобождает место в занятии. Посещение на абонемент не возвращается.
type UseCase struct {
	repo         Repository
	txManager    TransactionManager
	maxAttempts  int
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(repo Repository, txManager TransactionManager, maxAttempts int, metrics Metrics, logger Logger) *UseCase {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &UseCase{
		repo:         repo,
		txManager:    txManager,
		maxAttempts:  maxAttempts,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("Unenroll: client=%d, lesson=%d", req.ClientID, req.LessonID)

	for attempt := 1; attempt <= uc.maxAttempts; attempt++ {
		resp, err := uc.attempt(ctx, req)
		if err == nil {
			uc.metrics.RecordOutcome(operation, "ok")
			uc.logger.Info("Unenroll: enrollment id=%d cancelled, lesson=%d has %d participants",
				resp.EnrollmentID, resp.LessonID, resp.CurrentParticipants)
			return resp, nil
		}
		if !errors.Is(err, storage.ErrConcurrentUpdate) {
			return nil, uc.fail(req, err)
		}
		uc.logger.Warn("Unenroll: attempt %d/%d lost a concurrent update: %v", attempt, uc.maxAttempts, err)
	}

	uc.metrics.RecordOutcome(operation, "contention")
	return nil, ErrTooManyAttempts
}

func (uc *UseCase) attempt(ctx context.Context, req *Request) (*Response, error) {
	now := uc.timeProvider.Now()
	var resp *Response

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Активная запись
		enrollment, err := uc.repo.GetActiveEnrollment(txCtx, req.ClientID, req.LessonID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrEnrollmentNotFound
			}
			return fmt.Errorf("%w: failed to get enrollment: %v", ErrInternal, err)
		}

		// 2. Занятие ещё не началось
		lesson, err := uc.repo.GetLessonByID(txCtx, req.LessonID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrLessonNotFound
			}
			return fmt.Errorf("%w: failed to get lesson: %v", ErrInternal, err)
		}
		if lesson.Status() != domain.LessonStatusScheduled {
			return ErrLessonAlreadyStarted
		}

		// 3. Отмена записи и освобождение места
		if err := enrollment.Cancel(now); err != nil {
			return err
		}
		expected := lesson.CurrentParticipants()
		if !lesson.RemoveParticipant() {
			uc.logger.Warn("Unenroll: lesson id=%d participant counter already at zero", lesson.ID())
		}

		if err := uc.repo.UpdateEnrollmentStatus(txCtx, enrollment, domain.EnrollmentStatusActive); err != nil {
			return storageErr("update enrollment", err)
		}
		if expected != lesson.CurrentParticipants() {
			if err := uc.repo.UpdateLesson(txCtx, lesson, expected); err != nil {
				return storageErr("update lesson", err)
			}
		}

		resp = &Response{
			EnrollmentID:        enrollment.ID,
			LessonID:            lesson.ID(),
			CurrentParticipants: lesson.CurrentParticipants(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func storageErr(step string, err error) error {
	if errors.Is(err, storage.ErrConcurrentUpdate) {
		return err
	}
	return fmt.Errorf("%w: failed to %s: %v", ErrInternal, step, err)
}

func (uc *UseCase) fail(req *Request, err error) error {
	switch {
	case errors.Is(err, ErrEnrollmentNotFound):
		uc.logger.Warn("Unenroll: client=%d is not enrolled in lesson=%d", req.ClientID, req.LessonID)
		uc.metrics.RecordOutcome(operation, "not_found")
		return err
	case errors.Is(err, ErrLessonNotFound):
		uc.logger.Warn("Unenroll: lesson id=%d not found", req.LessonID)
		uc.metrics.RecordOutcome(operation, "not_found")
		return err
	case errors.Is(err, domain.ErrBusinessRuleViolation), errors.Is(err, domain.ErrInvalidStateTransition):
		uc.logger.Warn("Unenroll: rejected: %v", err)
		uc.metrics.RecordOutcome(operation, "rejected")
		return err
	case errors.Is(err, ErrInternal):
		uc.logger.Error("Unenroll: %v", err)
		uc.metrics.RecordOutcome(operation, "error")
		return err
	default:
		uc.logger.Error("Unenroll: transaction failed: %v", err)
		uc.metrics.RecordOutcome(operation, "error")
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
