package unenroll

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage/memory"
	"github.com/m04kA/SMC-DanceStudio/pkg/logger"
	"github.com/m04kA/SMC-DanceStudio/pkg/metrics"
)

var now = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// seedEnrolled занятие с одним записанным клиентом 7
func seedEnrolled(t *testing.T, store *memory.Store) *domain.Lesson {
	t.Helper()
	ctx := context.Background()

	slot, err := domain.NewTimeSlot(now.Add(4*time.Hour), 60, now)
	require.NoError(t, err)
	l, err := domain.NewLesson(domain.LessonParams{
		Type: "zouk", Name: "Zouk", Slot: slot, Difficulty: domain.DifficultyBeginner,
		MaxParticipants: 3, TrainerID: 1, HallID: 1,
	}, now)
	require.NoError(t, err)
	require.True(t, l.AddParticipant())
	require.NoError(t, store.SaveLesson(ctx, l))
	require.NoError(t, store.SaveEnrollment(ctx, domain.NewEnrollment(7, l.ID(), 1, now)))
	return l
}

func newUseCase(store *memory.Store) *UseCase {
	uc := NewUseCase(store, memory.NewTxManager(store), 3, metrics.Nop{}, logger.NewNop())
	uc.timeProvider = fixedClock{now}
	return uc
}

func TestExecute_FreesSeat(t *testing.T) {
	store := memory.NewStore()
	lesson := seedEnrolled(t, store)

	resp, err := newUseCase(store).Execute(context.Background(), &Request{ClientID: 7, LessonID: lesson.ID()})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.CurrentParticipants)

	got, err := store.GetLessonByID(context.Background(), lesson.ID())
	require.NoError(t, err)
	assert.Equal(t, 0, got.CurrentParticipants())

	_, err = store.GetActiveEnrollment(context.Background(), 7, lesson.ID())
	assert.Error(t, err)
}

func TestExecute_NotEnrolled(t *testing.T) {
	store := memory.NewStore()
	lesson := seedEnrolled(t, store)

	_, err := newUseCase(store).Execute(context.Background(), &Request{ClientID: 8, LessonID: lesson.ID()})
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)

	uc := newUseCase(store)
	_, err = uc.Execute(context.Background(), &Request{ClientID: 7, LessonID: lesson.ID()})
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), &Request{ClientID: 7, LessonID: lesson.ID()})
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}

func TestExecute_LessonStarted(t *testing.T) {
	store := memory.NewStore()
	lesson := seedEnrolled(t, store)
	require.NoError(t, lesson.Start(now))
	require.NoError(t, store.UpdateLessonStatus(context.Background(), lesson, domain.LessonStatusScheduled))

	_, err := newUseCase(store).Execute(context.Background(), &Request{ClientID: 7, LessonID: lesson.ID()})
	assert.ErrorIs(t, err, ErrLessonAlreadyStarted)

	_, err = store.GetActiveEnrollment(context.Background(), 7, lesson.ID())
	assert.NoError(t, err)
}

func TestExecute_LessonNotFound(t *testing.T) {
	store := memory.NewStore()
	// запись ссылается на занятие, которого нет в хранилище
	require.NoError(t, store.SaveEnrollment(context.Background(), domain.NewEnrollment(7, 999, 1, now)))

	_, err := newUseCase(store).Execute(context.Background(), &Request{ClientID: 7, LessonID: 999})
	assert.ErrorIs(t, err, ErrLessonNotFound)
	assert.NotErrorIs(t, err, ErrInternal)
}
