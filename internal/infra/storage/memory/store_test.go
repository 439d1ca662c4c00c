package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage"
)

var now = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func slotAt(t *testing.T, hour, duration int) domain.TimeSlot {
	t.Helper()
	slot, err := domain.NewTimeSlot(time.Date(2025, 3, 10, hour, 0, 0, 0, time.UTC), duration, now)
	require.NoError(t, err)
	return slot
}

func newBooking(t *testing.T, hallID int64, hour int) *domain.Booking {
	t.Helper()
	b, err := domain.NewBooking(5, hallID, slotAt(t, hour, 60), "practice", now)
	require.NoError(t, err)
	return b
}

func newLesson(t *testing.T, hallID int64, hour, maxParticipants int) *domain.Lesson {
	t.Helper()
	l, err := domain.NewLesson(domain.LessonParams{
		Type:            "salsa",
		Name:            "Salsa basics",
		Slot:            slotAt(t, hour, 90),
		Difficulty:      domain.DifficultyBeginner,
		MaxParticipants: maxParticipants,
		TrainerID:       3,
		HallID:          hallID,
	}, now)
	require.NoError(t, err)
	return l
}

func newSubscription(t *testing.T, s *Store, clientID int64) *domain.Subscription {
	t.Helper()
	st, err := domain.NewSubscriptionType(domain.SubscriptionTypeParams{Name: "8 visits", ValidityDays: 30, VisitCount: 8, Price: 100}, now)
	require.NoError(t, err)
	require.NoError(t, s.SaveSubscriptionType(context.Background(), st))
	sub, err := st.Issue(clientID, now)
	require.NoError(t, err)
	return sub
}

func TestStore_Halls(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.UpsertHall(ctx, &domain.Hall{ID: 7, BranchID: 1, Name: "Big", Capacity: 20}))
	require.NoError(t, s.UpsertHall(ctx, &domain.Hall{ID: 7, BranchID: 1, Name: "Big hall", Capacity: 25}))

	h, err := s.GetHallByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Big hall", h.Name)
	assert.Equal(t, 25, h.Capacity)

	_, err = s.GetHallByID(ctx, 8)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// идентификаторы новых записей не пересекаются с явно заданными
	b := newBooking(t, 7, 10)
	require.NoError(t, s.SaveBooking(ctx, b))
	assert.Greater(t, b.ID(), int64(7))
}

func TestStore_SaveBooking_Overlap(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	first := newBooking(t, 1, 10)
	require.NoError(t, s.SaveBooking(ctx, first))

	err := s.SaveBooking(ctx, newBooking(t, 1, 10))
	assert.ErrorIs(t, err, storage.ErrOverlap)

	// другой зал и соседний слот не конфликтуют
	require.NoError(t, s.SaveBooking(ctx, newBooking(t, 2, 10)))
	require.NoError(t, s.SaveBooking(ctx, newBooking(t, 1, 11)))

	// отменённая бронь освобождает слот
	require.NoError(t, first.Cancel(now))
	require.NoError(t, s.UpdateBookingStatus(ctx, first, domain.BookingStatusPending))
	require.NoError(t, s.SaveBooking(ctx, newBooking(t, 1, 10)))

	active, err := s.FindActiveBookings(ctx, 1)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.True(t, active[0].Slot().Start().Before(active[1].Slot().Start()))
}

func TestStore_UpdateBookingStatus_CAS(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	b := newBooking(t, 1, 10)
	require.NoError(t, s.SaveBooking(ctx, b))
	require.NoError(t, b.Confirm(now))

	err := s.UpdateBookingStatus(ctx, b, domain.BookingStatusConfirmed)
	assert.ErrorIs(t, err, storage.ErrConcurrentUpdate)

	require.NoError(t, s.UpdateBookingStatus(ctx, b, domain.BookingStatusPending))
	got, err := s.GetBookingByID(ctx, b.ID())
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, got.Status())
}

func TestStore_Lessons(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	l := newLesson(t, 1, 10, 2)
	require.NoError(t, s.SaveLesson(ctx, l))
	assert.ErrorIs(t, s.SaveLesson(ctx, newLesson(t, 1, 11, 2)), storage.ErrOverlap)

	require.True(t, l.AddParticipant())
	require.NoError(t, s.UpdateLesson(ctx, l, 0))

	// устаревшее ожидаемое значение счётчика
	require.True(t, l.AddParticipant())
	assert.ErrorIs(t, s.UpdateLesson(ctx, l, 0), storage.ErrConcurrentUpdate)

	got, err := s.GetLessonByID(ctx, l.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, got.CurrentParticipants())

	toRefresh, err := s.FindLessonsToRefresh(ctx, time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, toRefresh, 1)

	toRefresh, err = s.FindLessonsToRefresh(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, toRefresh)
}

func TestStore_Subscriptions_OneActivePerClient(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	first := newSubscription(t, s, 5)
	require.NoError(t, s.SaveSubscription(ctx, first))
	assert.ErrorIs(t, s.SaveSubscription(ctx, newSubscription(t, s, 5)), storage.ErrDuplicate)
	require.NoError(t, s.SaveSubscription(ctx, newSubscription(t, s, 6)))

	require.NoError(t, first.Suspend(now))
	require.NoError(t, s.UpdateSubscription(ctx, first, 8, domain.SubscriptionStatusActive))

	second := newSubscription(t, s, 5)
	require.NoError(t, s.SaveSubscription(ctx, second))

	// повторная активация упирается во второй активный абонемент
	require.NoError(t, first.Activate(now))
	assert.ErrorIs(t, s.UpdateSubscription(ctx, first, 8, domain.SubscriptionStatusSuspended), storage.ErrDuplicate)

	subs, err := s.FindSubscriptionsByClient(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, subs, 2)

	count, err := s.CountSubscriptionsByType(ctx, first.SubscriptionTypeID())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	due, err := s.FindSubscriptionsToExpire(ctx, now.AddDate(0, 0, 31))
	require.NoError(t, err)
	assert.Len(t, due, 3)
}

func TestStore_Enrollments(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	e := domain.NewEnrollment(5, 9, 3, now)
	require.NoError(t, s.SaveEnrollment(ctx, e))
	assert.NotZero(t, e.ID)
	assert.ErrorIs(t, s.SaveEnrollment(ctx, domain.NewEnrollment(5, 9, 3, now)), storage.ErrDuplicate)

	got, err := s.GetActiveEnrollment(ctx, 5, 9)
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)

	require.NoError(t, got.Cancel(now))
	require.NoError(t, s.UpdateEnrollmentStatus(ctx, got, domain.EnrollmentStatusActive))
	assert.ErrorIs(t, s.UpdateEnrollmentStatus(ctx, got, domain.EnrollmentStatusActive), storage.ErrConcurrentUpdate)

	_, err = s.GetActiveEnrollment(ctx, 5, 9)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestTxManager_RollbackOnError(t *testing.T) {
	s := NewStore()
	tm := NewTxManager(s)
	ctx := context.Background()
	boom := errors.New("boom")

	err := tm.Do(ctx, func(ctx context.Context) error {
		require.NoError(t, s.LockHall(ctx, 1))
		require.NoError(t, s.SaveBooking(ctx, newBooking(t, 1, 10)))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	active, err := s.FindActiveBookings(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestTxManager_CommitAndNested(t *testing.T) {
	s := NewStore()
	tm := NewTxManager(s)
	ctx := context.Background()

	err := tm.DoSerializable(ctx, func(ctx context.Context) error {
		if err := s.SaveBooking(ctx, newBooking(t, 1, 10)); err != nil {
			return err
		}
		// вложенный вызов не блокируется на мьютексе внешней транзакции
		return tm.Do(ctx, func(ctx context.Context) error {
			return s.SaveBooking(ctx, newBooking(t, 1, 12))
		})
	})
	require.NoError(t, err)

	active, err := s.FindActiveBookings(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestLockHall_RequiresTransaction(t *testing.T) {
	s := NewStore()
	assert.ErrorIs(t, s.LockHall(context.Background(), 1), ErrNoTransaction)
}
