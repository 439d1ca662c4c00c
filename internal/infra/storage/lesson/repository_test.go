package lesson

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage"
	"github.com/m04kA/SMC-DanceStudio/pkg/dbmetrics"
)

var now = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil, "test")), mock
}

func newLesson(t *testing.T) *domain.Lesson {
	t.Helper()
	slot, err := domain.NewTimeSlot(now.Add(10*time.Hour), 90, now)
	require.NoError(t, err)
	l, err := domain.NewLesson(domain.LessonParams{
		Type:            "group",
		Name:            "Salsa",
		Slot:            slot,
		Difficulty:      domain.DifficultyIntermediate,
		MaxParticipants: 12,
		Price:           20,
		TrainerID:       3,
		HallID:          2,
	}, now)
	require.NoError(t, err)
	return l
}

func lessonRow(rows *sqlmock.Rows, id int64, current int, status string) *sqlmock.Rows {
	return rows.AddRow(id, "group", "Salsa", "", now.Add(10*time.Hour), 90, "intermediate",
		12, current, 20.0, status, int64(3), int64(2), now, now)
}

func TestSaveLesson(t *testing.T) {
	repo, mock := newRepo(t)
	l := newLesson(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO lessons (type,name,description,start_time,end_time,duration_minutes,difficulty,max_participants,current_participants,price,status,trainer_id,hall_id,created_at,updated_at)")).
		WithArgs("group", "Salsa", "", now.Add(10*time.Hour), now.Add(11*time.Hour+30*time.Minute), 90,
			"intermediate", 12, 0, 20.0, "scheduled", int64(3), int64(2), now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(4), now, now))

	require.NoError(t, repo.SaveLesson(context.Background(), l))
	assert.Equal(t, int64(4), l.ID())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveLesson_Overlap(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("INSERT INTO lessons").WillReturnError(&pq.Error{Code: "23P01"})

	err := repo.SaveLesson(context.Background(), newLesson(t))
	assert.ErrorIs(t, err, storage.ErrOverlap)
}

func TestGetLessonByID(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM lessons WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnRows(lessonRow(sqlmock.NewRows(columns), 4, 5, "scheduled"))

	l, err := repo.GetLessonByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 5, l.CurrentParticipants())
	assert.Equal(t, 7, l.AvailableSpots())
	assert.True(t, l.CanBeBooked())
}

func TestGetLessonByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("FROM lessons WHERE id").WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetLessonByID(context.Background(), 4)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFindActiveLessons(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM lessons WHERE hall_id = $1 AND status IN ($2,$3)")).
		WithArgs(int64(2), "scheduled", "ongoing").
		WillReturnRows(lessonRow(lessonRow(sqlmock.NewRows(columns), 1, 0, "scheduled"), 2, 3, "ongoing"))

	lessons, err := repo.FindActiveLessons(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.Equal(t, domain.LessonStatusOngoing, lessons[1].Status())
}

func TestFindLessonsToRefresh(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM lessons WHERE status IN ($1,$2) AND start_time <= $3 ORDER BY start_time ASC")).
		WithArgs("scheduled", "ongoing", now).
		WillReturnRows(sqlmock.NewRows(columns))

	lessons, err := repo.FindLessonsToRefresh(context.Background(), now)
	require.NoError(t, err)
	assert.Empty(t, lessons)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLesson_CompareAndSet(t *testing.T) {
	repo, mock := newRepo(t)
	l := newLesson(t)
	l.MarkPersisted(4, now, now)
	require.True(t, l.AddParticipant())

	query := regexp.QuoteMeta("UPDATE lessons SET current_participants = $1, updated_at = NOW() WHERE current_participants = $2 AND id = $3 AND status = $4")

	mock.ExpectExec(query).
		WithArgs(1, 0, int64(4), "scheduled").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateLesson(context.Background(), l, 0))

	mock.ExpectExec(query).
		WithArgs(1, 0, int64(4), "scheduled").
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.UpdateLesson(context.Background(), l, 0)
	assert.ErrorIs(t, err, ErrLessonChanged)
	assert.ErrorIs(t, err, storage.ErrConcurrentUpdate)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLessonStatus(t *testing.T) {
	repo, mock := newRepo(t)
	l := newLesson(t)
	l.MarkPersisted(4, now, now)
	require.NoError(t, l.Start(now.Add(10*time.Hour)))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE lessons SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4")).
		WithArgs("ongoing", now.Add(10*time.Hour), int64(4), "scheduled").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateLessonStatus(context.Background(), l, domain.LessonStatusScheduled))
	require.NoError(t, mock.ExpectationsWereMet())
}
