package storage

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

// ReservationStore полный набор возможностей хранилища.
// Use cases объявляют свои узкие интерфейсы в contract.go, этот нужен
// для проверки на этапе компиляции, что каждый бэкенд реализует всё.
type ReservationStore interface {
	GetHallByID(ctx context.Context, id int64) (*domain.Hall, error)
	UpsertHall(ctx context.Context, hall *domain.Hall) error
	LockHall(ctx context.Context, hallID int64) error

	FindActiveBookings(ctx context.Context, hallID int64) ([]*domain.Booking, error)
	FindBookingsByClient(ctx context.Context, clientID int64) ([]*domain.Booking, error)
	GetBookingByID(ctx context.Context, id int64) (*domain.Booking, error)
	SaveBooking(ctx context.Context, booking *domain.Booking) error
	UpdateBookingStatus(ctx context.Context, booking *domain.Booking, expected domain.BookingStatus) error

	FindActiveLessons(ctx context.Context, hallID int64) ([]*domain.Lesson, error)
	FindLessonsToRefresh(ctx context.Context, now time.Time) ([]*domain.Lesson, error)
	GetLessonByID(ctx context.Context, id int64) (*domain.Lesson, error)
	SaveLesson(ctx context.Context, lesson *domain.Lesson) error
	UpdateLesson(ctx context.Context, lesson *domain.Lesson, expectedParticipants int) error
	UpdateLessonStatus(ctx context.Context, lesson *domain.Lesson, expected domain.LessonStatus) error

	SaveSubscriptionType(ctx context.Context, t *domain.SubscriptionType) error
	GetSubscriptionTypeByID(ctx context.Context, id int64) (*domain.SubscriptionType, error)
	UpdateSubscriptionType(ctx context.Context, t *domain.SubscriptionType) error
	CountSubscriptionsByType(ctx context.Context, typeID int64) (int, error)

	FindSubscriptionsByClient(ctx context.Context, clientID int64) ([]*domain.Subscription, error)
	FindSubscriptionsToExpire(ctx context.Context, now time.Time) ([]*domain.Subscription, error)
	GetSubscriptionByID(ctx context.Context, id int64) (*domain.Subscription, error)
	SaveSubscription(ctx context.Context, sub *domain.Subscription) error
	UpdateSubscription(ctx context.Context, sub *domain.Subscription, expectedVisits int, expectedStatus domain.SubscriptionStatus) error

	SaveEnrollment(ctx context.Context, e *domain.Enrollment) error
	GetActiveEnrollment(ctx context.Context, clientID, lessonID int64) (*domain.Enrollment, error)
	UpdateEnrollmentStatus(ctx context.Context, e *domain.Enrollment, expected domain.EnrollmentStatus) error
}

// TransactionManager транзакция передаётся через ctx, вложенные вызовы её переиспользуют
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
