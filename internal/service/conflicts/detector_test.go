package conflicts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage/memory"
)

var now = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func slot(t *testing.T, hour, minute, duration int) domain.TimeSlot {
	t.Helper()
	s, err := domain.NewTimeSlot(time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC), duration, now)
	require.NoError(t, err)
	return s
}

func seedBooking(t *testing.T, store *memory.Store, hallID int64, s domain.TimeSlot, confirm bool) *domain.Booking {
	t.Helper()
	b, err := domain.NewBooking(5, hallID, s, "", now)
	require.NoError(t, err)
	if confirm {
		require.NoError(t, b.Confirm(now))
	}
	require.NoError(t, store.SaveBooking(context.Background(), b))
	return b
}

func seedLesson(t *testing.T, store *memory.Store, hallID int64, s domain.TimeSlot) *domain.Lesson {
	t.Helper()
	l, err := domain.NewLesson(domain.LessonParams{
		Type:            "tango",
		Name:            "Tango",
		Slot:            s,
		Difficulty:      domain.DifficultyIntermediate,
		MaxParticipants: 10,
		TrainerID:       1,
		HallID:          hallID,
	}, now)
	require.NoError(t, err)
	require.NoError(t, store.SaveLesson(context.Background(), l))
	return l
}

func TestDetector_ScenarioA(t *testing.T) {
	store := memory.NewStore()
	d := NewDetector(store)
	ctx := context.Background()

	existing := seedBooking(t, store, 1, slot(t, 10, 0, 60), true)

	err := d.Check(ctx, 1, slot(t, 10, 30, 60))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchedulingConflict)

	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, []int64{existing.ID()}, conflict.BookingIDs)

	assert.NoError(t, d.Check(ctx, 1, slot(t, 11, 0, 60)))
	assert.NoError(t, d.Check(ctx, 2, slot(t, 10, 30, 60)))
}

func TestDetector_FindConflicts_SortedAcrossKinds(t *testing.T) {
	store := memory.NewStore()
	d := NewDetector(store)

	late := seedBooking(t, store, 1, slot(t, 12, 0, 60), false)
	early := seedBooking(t, store, 1, slot(t, 9, 0, 60), false)
	lesson := seedLesson(t, store, 1, slot(t, 10, 0, 90))

	c, err := d.FindConflicts(context.Background(), 1, slot(t, 9, 30, 180))
	require.NoError(t, err)
	require.Len(t, c.Bookings, 2)
	assert.Equal(t, early.ID(), c.Bookings[0].ID())
	assert.Equal(t, late.ID(), c.Bookings[1].ID())
	require.Len(t, c.Lessons, 1)
	assert.Equal(t, lesson.ID(), c.Lessons[0].ID())
}

func TestDetector_IgnoresInactive(t *testing.T) {
	store := memory.NewStore()
	d := NewDetector(store)
	ctx := context.Background()

	b := seedBooking(t, store, 1, slot(t, 10, 0, 60), false)
	require.NoError(t, b.Cancel(now))
	require.NoError(t, store.UpdateBookingStatus(ctx, b, domain.BookingStatusPending))

	l := seedLesson(t, store, 1, slot(t, 10, 0, 60))
	require.NoError(t, l.Cancel(now))
	require.NoError(t, store.UpdateLessonStatus(ctx, l, domain.LessonStatusScheduled))

	c, err := d.FindConflicts(ctx, 1, slot(t, 10, 0, 60))
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

type failingRepo struct{}

func (failingRepo) FindActiveBookings(context.Context, int64) ([]*domain.Booking, error) {
	return nil, errors.New("connection refused")
}

func (failingRepo) FindActiveLessons(context.Context, int64) ([]*domain.Lesson, error) {
	return nil, nil
}

func TestDetector_RepositoryError(t *testing.T) {
	err := NewDetector(failingRepo{}).Check(context.Background(), 1, slot(t, 10, 0, 60))
	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, domain.ErrSchedulingConflict)
}
