package enroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage"
)

const (
	operation          = "enroll"
	defaultMaxAttempts = 3
)

// UseCase координатор записи на занятие: место в занятии и списание посещения
// с абонемента фиксируются одной транзакцией
type UseCase struct {
	repo         Repository
	txManager    TransactionManager
	maxAttempts  int
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(
	repo Repository,
	txManager TransactionManager,
	maxAttempts int,
	metrics Metrics,
	logger Logger,
) *UseCase {
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

// Execute записывает клиента на занятие.
// При проигранном compare-and-set транзакция откатывается и повторяется на свежих данных.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("Enroll: client=%d, lesson=%d", req.ClientID, req.LessonID)

	if req.ClientID <= 0 || req.LessonID <= 0 {
		uc.metrics.RecordOutcome(operation, "invalid")
		return nil, fmt.Errorf("%w: clientID and lessonID must be positive", domain.ErrValidation)
	}

	for attempt := 1; attempt <= uc.maxAttempts; attempt++ {
		resp, err := uc.attempt(ctx, req)
		if err == nil {
			uc.metrics.RecordOutcome(operation, "ok")
			uc.logger.Info("Enroll: enrollment id=%d, lesson=%d now %d/%d",
				resp.EnrollmentID, resp.LessonID, resp.CurrentParticipants, resp.MaxParticipants)
			return resp, nil
		}

		if !errors.Is(err, storage.ErrConcurrentUpdate) {
			return nil, uc.fail(req, err)
		}
		uc.logger.Warn("Enroll: attempt %d/%d lost a concurrent update: %v", attempt, uc.maxAttempts, err)
	}

	uc.metrics.RecordOutcome(operation, "contention")
	uc.logger.Error("Enroll: client=%d, lesson=%d gave up after %d attempts", req.ClientID, req.LessonID, uc.maxAttempts)
	return nil, ErrTooManyAttempts
}

func (uc *UseCase) attempt(ctx context.Context, req *Request) (*Response, error) {
	now := uc.timeProvider.Now()
	var resp *Response

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Занятие должно быть открыто для записи и иметь свободные места
		lesson, err := uc.repo.GetLessonByID(txCtx, req.LessonID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrLessonNotFound
			}
			return fmt.Errorf("%w: failed to get lesson: %v", ErrInternal, err)
		}
		if lesson.Status() != domain.LessonStatusScheduled {
			return domain.ErrLessonNotBookable
		}
		if !lesson.HasSpots() {
			return domain.ErrLessonFull
		}

		// 2. Повторная запись запрещена
		if _, err := uc.repo.GetActiveEnrollment(txCtx, req.ClientID, req.LessonID); err == nil {
			return ErrAlreadyEnrolled
		} else if !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: failed to check enrollment: %v", ErrInternal, err)
		}

		// 3. Абонемент, с которого спишется посещение
		subs, err := uc.repo.FindSubscriptionsByClient(txCtx, req.ClientID)
		if err != nil {
			return fmt.Errorf("%w: failed to get subscriptions: %v", ErrInternal, err)
		}
		sub := domain.SelectUsableSubscription(subs, now)
		if sub == nil {
			return ErrNoUsableSubscription
		}

		// 4. Изменения в памяти
		expectedParticipants := lesson.CurrentParticipants()
		if !lesson.AddParticipant() {
			return domain.ErrLessonFull
		}
		expectedVisits, expectedStatus := sub.RemainingVisits(), sub.Status()
		if err := sub.UseVisit(now); err != nil {
			return err
		}

		// 5. Запись с проверкой, что никто не успел изменить строки
		if err := uc.repo.UpdateLesson(txCtx, lesson, expectedParticipants); err != nil {
			return uc.storageErr("update lesson", err)
		}
		if err := uc.repo.UpdateSubscription(txCtx, sub, expectedVisits, expectedStatus); err != nil {
			return uc.storageErr("update subscription", err)
		}

		enrollment := domain.NewEnrollment(req.ClientID, req.LessonID, sub.ID(), now)
		if err := uc.repo.SaveEnrollment(txCtx, enrollment); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				return ErrAlreadyEnrolled
			}
			return uc.storageErr("save enrollment", err)
		}

		resp = toResponse(enrollment, lesson, sub)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (uc *UseCase) storageErr(step string, err error) error {
	if errors.Is(err, storage.ErrConcurrentUpdate) {
		return err
	}
	return fmt.Errorf("%w: failed to %s: %v", ErrInternal, step, err)
}

func (uc *UseCase) fail(req *Request, err error) error {
	switch {
	case errors.Is(err, domain.ErrCapacityExceeded):
		uc.logger.Warn("Enroll: lesson id=%d is full", req.LessonID)
		uc.metrics.RecordOutcome(operation, "full")
		return err
	case errors.Is(err, domain.ErrBusinessRuleViolation):
		uc.logger.Warn("Enroll: client=%d, lesson=%d rejected: %v", req.ClientID, req.LessonID, err)
		uc.metrics.RecordOutcome(operation, "rejected")
		return err
	case errors.Is(err, ErrLessonNotFound):
		uc.logger.Warn("Enroll: lesson id=%d not found", req.LessonID)
		uc.metrics.RecordOutcome(operation, "not_found")
		return err
	case errors.Is(err, ErrInternal):
		uc.logger.Error("Enroll: %v", err)
		uc.metrics.RecordOutcome(operation, "error")
		return err
	default:
		uc.logger.Error("Enroll: transaction failed: %v", err)
		uc.metrics.RecordOutcome(operation, "error")
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
