package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage"
	"github.com/m04kA/SMC-DanceStudio/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	staff        StaffChecker
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, staff StaffChecker, logger Logger) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		staff:        staff,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID.
// Клиент видит только свои бронирования, сотрудник студии любые.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.load(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if booking.ClientID() != userID && !s.staff.IsStaff(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetClientBookings история бронирований клиента, новые первыми
func (s *Service) GetClientBookings(ctx context.Context, clientID int64) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d", clientID)

	bookings, err := s.bookingRepo.FindBookingsByClient(ctx, clientID)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: fetched %d bookings for client=%d", len(bookings), clientID)
	return models.FromDomainBookingList(bookings), nil
}

// Transition применяет действие к бронированию по таблице переходов.
// Клиент может только отменить свою бронь; подтверждение и завершение доступны сотрудникам.
// Статус сохраняется через compare-and-set: параллельная смена статуса даёт ErrBookingChanged.
func (s *Service) Transition(ctx context.Context, req *models.TransitionRequest) (*models.BookingResponse, error) {
	s.logger.Info("Transition: booking id=%d action=%s by user=%d", req.BookingID, req.Action, req.UserID)

	action, err := domain.ParseBookingAction(req.Action)
	if err != nil {
		s.logger.Warn("Transition: invalid action=%q", req.Action)
		return nil, err
	}

	booking, err := s.load(ctx, "Transition", req.BookingID)
	if err != nil {
		return nil, err
	}

	if !s.canApply(booking, action, req.UserID) {
		s.logger.Warn("Transition: access denied for user=%d to %s booking id=%d", req.UserID, action, req.BookingID)
		return nil, ErrAccessDenied
	}

	prev := booking.Status()
	if err := booking.Apply(action, s.timeProvider.Now()); err != nil {
		s.logger.Warn("Transition: %v", err)
		return nil, err
	}

	if err := s.bookingRepo.UpdateBookingStatus(ctx, booking, prev); err != nil {
		if errors.Is(err, storage.ErrConcurrentUpdate) {
			s.logger.Warn("Transition: booking id=%d changed concurrently", req.BookingID)
			return nil, ErrBookingChanged
		}
		s.logger.Error("Transition: repository error for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Transition - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Transition: booking id=%d %s -> %s", req.BookingID, prev, booking.Status())
	return models.FromDomainBooking(booking), nil
}

func (s *Service) canApply(b *domain.Booking, action domain.BookingAction, userID int64) bool {
	if s.staff.IsStaff(userID) {
		return true
	}
	return action == domain.BookingActionCancel && b.ClientID() == userID
}

func (s *Service) load(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetBookingByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}
