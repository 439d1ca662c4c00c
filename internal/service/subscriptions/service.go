package subscriptions

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage"
	"github.com/m04kA/SMC-DanceStudio/internal/service/subscriptions/models"
)

// Service сервис для работы с абонементами клиентов
type Service struct {
	repo         SubscriptionRepository
	timeProvider TimeProvider
	logger       Logger
}

func NewService(repo SubscriptionRepository, logger Logger) *Service {
	return &Service{
		repo:         repo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Transition suspend/activate/cancel по таблице переходов.
// Абонемент с истёкшим сроком сначала переводится в expired, после чего любое действие отклоняется.
func (s *Service) Transition(ctx context.Context, req *models.TransitionRequest) (*models.SubscriptionResponse, error) {
	s.logger.Info("Transition: subscription id=%d action=%s", req.SubscriptionID, req.Action)

	action, err := domain.ParseSubscriptionAction(req.Action)
	if err != nil {
		s.logger.Warn("Transition: invalid action=%q", req.Action)
		return nil, err
	}

	sub, err := s.repo.GetSubscriptionByID(ctx, req.SubscriptionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("Transition: subscription id=%d not found", req.SubscriptionID)
			return nil, ErrSubscriptionNotFound
		}
		s.logger.Error("Transition: repository error for subscription id=%d: %v", req.SubscriptionID, err)
		return nil, fmt.Errorf("%w: Transition - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	prev := sub.Status()

	if sub.ExpireIfDue(now) {
		if err := s.save(ctx, sub, prev); err != nil {
			return nil, err
		}
		s.logger.Info("Transition: subscription id=%d expired by date", sub.ID())
		prev = sub.Status()
	}

	if err := sub.Apply(action, now); err != nil {
		s.logger.Warn("Transition: %v", err)
		return nil, err
	}

	if err := s.save(ctx, sub, prev); err != nil {
		return nil, err
	}

	s.logger.Info("Transition: subscription id=%d %s -> %s", sub.ID(), prev, sub.Status())
	return models.FromDomainSubscription(sub), nil
}

// GetRemainingVisits сводка по всем абонементам клиента: -1, если действует безлимитный,
// иначе сумма оставшихся посещений по абонементам, с которых можно списать визит
func (s *Service) GetRemainingVisits(ctx context.Context, clientID int64) (*models.RemainingVisitsResponse, error) {
	subs, err := s.repo.FindSubscriptionsByClient(ctx, clientID)
	if err != nil {
		s.logger.Error("GetRemainingVisits: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: GetRemainingVisits - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	total := domain.TotalRemainingVisits(subs, now)

	return &models.RemainingVisitsResponse{
		ClientID:        clientID,
		RemainingVisits: total,
		Unlimited:       total == domain.UnlimitedVisits,
		CanUseVisit:     domain.SelectUsableSubscription(subs, now) != nil,
	}, nil
}

func (s *Service) save(ctx context.Context, sub *domain.Subscription, expected domain.SubscriptionStatus) error {
	err := s.repo.UpdateSubscription(ctx, sub, sub.RemainingVisits(), expected)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrConcurrentUpdate):
		s.logger.Warn("Transition: subscription id=%d changed concurrently", sub.ID())
		return ErrSubscriptionChanged
	case errors.Is(err, storage.ErrDuplicate):
		s.logger.Warn("Transition: client=%d already has an active subscription", sub.ClientID())
		return ErrActiveSubscriptionExists
	default:
		s.logger.Error("Transition: repository error for subscription id=%d: %v", sub.ID(), err)
		return fmt.Errorf("%w: Transition - repository error: %v", ErrInternal, err)
	}
}
