package hall

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage"
	"github.com/m04kA/SMC-DanceStudio/pkg/dbmetrics"
)

func newRepo(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := dbmetrics.Wrap(db, nil, "test")
	return NewRepository(wrapped), wrapped, mock
}

func TestGetHallByID(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, branch_id, name, capacity FROM halls WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "branch_id", "name", "capacity"}).
			AddRow(int64(3), int64(1), "Mirror hall", 20))

	h, err := repo.GetHallByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, &domain.Hall{ID: 3, BranchID: 1, Name: "Mirror hall", Capacity: 20}, h)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetHallByID_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery("SELECT id, branch_id, name, capacity FROM halls").
		WillReturnRows(sqlmock.NewRows([]string{"id", "branch_id", "name", "capacity"}))

	_, err := repo.GetHallByID(context.Background(), 3)
	assert.ErrorIs(t, err, ErrHallNotFound)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpsertHall(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO halls (id,branch_id,name,capacity) VALUES ($1,$2,$3,$4) ON CONFLICT (id) DO UPDATE")).
		WithArgs(int64(1), int64(1), "Main", 30).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.UpsertHall(context.Background(), &domain.Hall{ID: 1, BranchID: 1, Name: "Main", Capacity: 30}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLockHall(t *testing.T) {
	repo, db, mock := newRepo(t)
	ctx := context.Background()

	assert.ErrorIs(t, repo.LockHall(ctx, 1), ErrNoTransaction)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock($1)")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, repo.LockHall(dbmetrics.WithTx(ctx, tx), 7))
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}
