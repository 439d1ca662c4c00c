package purchase_subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage"
)

const operation = "purchase_subscription"

// UseCase выдача абонемента по типу. У клиента может быть только один активный абонемент.
type UseCase struct {
	repo         Repository
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(repo Repository, txManager TransactionManager, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		repo:         repo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PurchaseSubscription: client=%d, type=%d", req.ClientID, req.SubscriptionTypeID)

	now := uc.timeProvider.Now()
	var sub *domain.Subscription

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Тип абонемента
		subType, err := uc.repo.GetSubscriptionTypeByID(txCtx, req.SubscriptionTypeID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrSubscriptionTypeNotFound
			}
			return fmt.Errorf("%w: failed to get subscription type: %v", ErrInternal, err)
		}

		// 2. Истёкшие по дате абонементы переводим в expired, иначе они занимают слот активного
		existing, err := uc.repo.FindSubscriptionsByClient(txCtx, req.ClientID)
		if err != nil {
			return fmt.Errorf("%w: failed to get subscriptions: %v", ErrInternal, err)
		}
		for _, s := range existing {
			prevStatus := s.Status()
			if !s.ExpireIfDue(now) {
				continue
			}
			if err := uc.repo.UpdateSubscription(txCtx, s, s.RemainingVisits(), prevStatus); err != nil {
				return fmt.Errorf("%w: failed to expire subscription id=%d: %v", ErrInternal, s.ID(), err)
			}
			uc.logger.Info("PurchaseSubscription: subscription id=%d expired", s.ID())
		}

		// 3. Один активный абонемент на клиента
		if domain.HasActiveSubscription(existing, now) {
			return ErrActiveSubscriptionExists
		}

		// 4. Выдача и сохранение
		sub, err = subType.Issue(req.ClientID, now)
		if err != nil {
			return err
		}
		if err := uc.repo.SaveSubscription(txCtx, sub); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				return ErrActiveSubscriptionExists
			}
			return fmt.Errorf("%w: failed to save subscription: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, uc.fail(req, err)
	}

	uc.metrics.RecordOutcome(operation, "ok")
	uc.logger.Info("PurchaseSubscription: issued subscription id=%d to client=%d, visits=%d, until=%s",
		sub.ID(), sub.ClientID(), sub.RemainingVisits(), sub.EndDate().Format(domain.DateFormat))
	return toResponse(sub), nil
}

func (uc *UseCase) fail(req *Request, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		uc.logger.Warn("PurchaseSubscription: validation failed: %v", err)
		uc.metrics.RecordOutcome(operation, "invalid")
		return err
	case errors.Is(err, domain.ErrBusinessRuleViolation):
		uc.logger.Warn("PurchaseSubscription: client=%d rejected: %v", req.ClientID, err)
		uc.metrics.RecordOutcome(operation, "rejected")
		return err
	case errors.Is(err, ErrSubscriptionTypeNotFound):
		uc.logger.Warn("PurchaseSubscription: type id=%d not found", req.SubscriptionTypeID)
		uc.metrics.RecordOutcome(operation, "not_found")
		return err
	case errors.Is(err, ErrInternal):
		uc.logger.Error("PurchaseSubscription: %v", err)
		uc.metrics.RecordOutcome(operation, "error")
		return err
	default:
		uc.logger.Error("PurchaseSubscription: transaction failed: %v", err)
		uc.metrics.RecordOutcome(operation, "error")
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
