package booking

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

func newBooking(t *testing.T) *domain.Booking {
	t.Helper()
	slot, err := domain.NewTimeSlot(now.Add(2*time.Hour), 60, now)
	require.NoError(t, err)
	b, err := domain.NewBooking(5, 2, slot, "practice", now)
	require.NoError(t, err)
	return b
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows(columns)
}

func TestSaveBooking(t *testing.T) {
	repo, mock := newRepo(t)
	b := newBooking(t)
	created := now.Add(time.Second)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings (client_id,hall_id,start_time,end_time,duration_minutes,status,purpose,created_at,updated_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) RETURNING id, created_at, updated_at")).
		WithArgs(int64(5), int64(2), now.Add(2*time.Hour), now.Add(3*time.Hour), 60, "pending", "practice", now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), created, created))

	require.NoError(t, repo.SaveBooking(context.Background(), b))
	assert.Equal(t, int64(11), b.ID())
	assert.Equal(t, created, b.CreatedAt())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveBooking_ExclusionViolation(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"})

	err := repo.SaveBooking(context.Background(), newBooking(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrOverlap)
}

func TestGetBookingByID(t *testing.T) {
	repo, mock := newRepo(t)
	start := now.Add(2 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, client_id, hall_id, start_time, duration_minutes, status, purpose, created_at, updated_at FROM bookings WHERE id = $1")).
		WithArgs(int64(11)).
		WillReturnRows(bookingRows().AddRow(int64(11), int64(5), int64(2), start, 60, "confirmed", "practice", now, now))

	b, err := repo.GetBookingByID(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, b.Status())
	assert.Equal(t, start.Add(time.Hour), b.Slot().End())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBookingByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("FROM bookings WHERE id").WillReturnRows(bookingRows())

	_, err := repo.GetBookingByID(context.Background(), 11)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFindActiveBookings(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE hall_id = $1 AND status IN ($2,$3) ORDER BY start_time ASC, duration_minutes ASC")).
		WithArgs(int64(2), "pending", "confirmed").
		WillReturnRows(bookingRows().
			AddRow(int64(1), int64(5), int64(2), now.Add(time.Hour), 60, "pending", "", now, now).
			AddRow(int64(2), int64(6), int64(2), now.Add(3*time.Hour), 90, "confirmed", "", now, now))

	bookings, err := repo.FindActiveBookings(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, int64(1), bookings[0].ID())
	assert.Equal(t, 90, bookings[1].Slot().DurationMinutes())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindBookingsByClient_ScanError(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("FROM bookings WHERE client_id").
		WillReturnRows(bookingRows().AddRow(int64(1), int64(5), int64(2), now, 60, "bogus", "", now, now))

	_, err := repo.FindBookingsByClient(context.Background(), 5)
	assert.ErrorIs(t, err, ErrScanRow)
}

func TestUpdateBookingStatus(t *testing.T) {
	repo, mock := newRepo(t)
	b := newBooking(t)
	b.MarkPersisted(11, now, now)
	require.NoError(t, b.Confirm(now.Add(time.Minute)))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4")).
		WithArgs("confirmed", now.Add(time.Minute), int64(11), "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateBookingStatus(context.Background(), b, domain.BookingStatusPending))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBookingStatus_Stale(t *testing.T) {
	repo, mock := newRepo(t)
	b := newBooking(t)
	b.MarkPersisted(11, now, now)
	require.NoError(t, b.Cancel(now))

	mock.ExpectExec("UPDATE bookings SET status").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateBookingStatus(context.Background(), b, domain.BookingStatusPending)
	assert.ErrorIs(t, err, ErrStatusChanged)
	assert.ErrorIs(t, err, storage.ErrConcurrentUpdate)
}
