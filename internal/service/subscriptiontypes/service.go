package subscriptiontypes

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage"
	"github.com/m04kA/SMC-DanceStudio/internal/service/subscriptiontypes/models"
)

// Service каталог типов абонементов
type Service struct {
	repo         TypeRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

func NewService(repo TypeRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:         repo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create добавляет тип абонемента
func (s *Service) Create(ctx context.Context, req *models.TypeRequest) (*models.TypeResponse, error) {
	s.logger.Info("CreateType: name=%q, validity=%d, visits=%d, unlimited=%t",
		req.Name, req.ValidityDays, req.VisitCount, req.Unlimited)

	t, err := domain.NewSubscriptionType(req.ToDomainParams(), s.timeProvider.Now())
	if err != nil {
		s.logger.Warn("CreateType: validation failed: %v", err)
		return nil, err
	}

	if err := s.repo.SaveSubscriptionType(ctx, t); err != nil {
		s.logger.Error("CreateType: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateType: created subscription type id=%d", t.ID())
	return models.FromDomainType(t), nil
}

// GetByID получает тип абонемента
func (s *Service) GetByID(ctx context.Context, id int64) (*models.TypeResponse, error) {
	t, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainType(t), nil
}

// Update меняет условия типа. Выданные абонементы хранят снимок условий,
// поэтому тип, по которому уже что-то выдано, не меняется.
func (s *Service) Update(ctx context.Context, id int64, req *models.TypeRequest) (*models.TypeResponse, error) {
	s.logger.Info("UpdateType: id=%d", id)

	var t *domain.SubscriptionType
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		t, err = s.get(txCtx, "UpdateType", id)
		if err != nil {
			return err
		}

		issued, err := s.repo.CountSubscriptionsByType(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: Update - count subscriptions: %v", ErrInternal, err)
		}
		if issued > 0 {
			s.logger.Warn("UpdateType: type id=%d has %d issued subscriptions", id, issued)
			return ErrTypeInUse
		}

		if err := t.Update(req.ToDomainParams()); err != nil {
			s.logger.Warn("UpdateType: validation failed: %v", err)
			return err
		}

		if err := s.repo.UpdateSubscriptionType(txCtx, t); err != nil {
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("UpdateType: %v", err)
		}
		return nil, err
	}

	s.logger.Info("UpdateType: updated subscription type id=%d", id)
	return models.FromDomainType(t), nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.SubscriptionType, error) {
	t, err := s.repo.GetSubscriptionTypeByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("%s: subscription type id=%d not found", op, id)
			return nil, ErrTypeNotFound
		}
		s.logger.Error("%s: repository error for type id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return t, nil
}
