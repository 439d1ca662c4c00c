package create_lesson

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage/memory"
	"github.com/m04kA/SMC-DanceStudio/internal/service/conflicts"
	"github.com/m04kA/SMC-DanceStudio/pkg/logger"
	"github.com/m04kA/SMC-DanceStudio/pkg/metrics"
)

var now = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func setup(t *testing.T) (*UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.UpsertHall(context.Background(), &domain.Hall{ID: 1, BranchID: 1, Name: "Studio A", Capacity: 12}))

	uc := NewUseCase(store, conflicts.NewDetector(store), memory.NewTxManager(store), metrics.Nop{}, logger.NewNop())
	uc.timeProvider = fixedClock{now}
	return uc, store
}

func request(hour, duration, maxParticipants int) *Request {
	return &Request{
		Type:            "bachata",
		Name:            "Bachata for beginners",
		StartTime:       time.Date(2025, 3, 10, hour, 0, 0, 0, time.UTC),
		DurationMinutes: duration,
		Difficulty:      "beginner",
		MaxParticipants: maxParticipants,
		Price:           15,
		TrainerID:       3,
		HallID:          1,
	}
}

func TestExecute_CreatesScheduledLesson(t *testing.T) {
	uc, store := setup(t)

	resp, err := uc.Execute(context.Background(), request(18, 60, 10))
	require.NoError(t, err)
	assert.Equal(t, "scheduled", resp.Status)
	assert.Equal(t, 0, resp.CurrentParticipants)

	l, err := store.GetLessonByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, l.MaxParticipants())
}

func TestExecute_ConflictsWithBooking(t *testing.T) {
	uc, store := setup(t)

	slot, err := domain.NewTimeSlot(time.Date(2025, 3, 10, 17, 30, 0, 0, time.UTC), 90, now)
	require.NoError(t, err)
	b, err := domain.NewBooking(9, 1, slot, "", now)
	require.NoError(t, err)
	require.NoError(t, store.SaveBooking(context.Background(), b))

	_, err = uc.Execute(context.Background(), request(18, 60, 10))
	assert.ErrorIs(t, err, domain.ErrSchedulingConflict)

	// занятие сразу после брони не пересекается
	_, err = uc.Execute(context.Background(), request(19, 60, 10))
	assert.NoError(t, err)
}

func TestExecute_ExceedsHallCapacity(t *testing.T) {
	uc, _ := setup(t)

	_, err := uc.Execute(context.Background(), request(18, 60, 13))
	assert.ErrorIs(t, err, ErrExceedsHallCapacity)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc, _ := setup(t)

	req := request(18, 60, 10)
	req.Difficulty = "expert"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrValidation)

	req = request(18, 60, 10)
	req.Name = "   "
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExecute_HallNotFound(t *testing.T) {
	uc, _ := setup(t)
	req := request(18, 60, 10)
	req.HallID = 2

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrHallNotFound)
}
