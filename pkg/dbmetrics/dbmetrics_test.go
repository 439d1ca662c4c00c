package dbmetrics

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DanceStudio/pkg/metrics"
)

func TestGetExecutor(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	wrapped := Wrap(db, nil, "test")
	ctx := context.Background()

	assert.Equal(t, DBExecutor(wrapped), GetExecutor(ctx, wrapped))
	assert.False(t, IsInTransaction(ctx))

	mock.ExpectBegin()
	tx, err := wrapped.BeginTx(ctx, nil)
	require.NoError(t, err)

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, DBExecutor(tx), GetExecutor(txCtx, wrapped))

	mock.ExpectRollback()
	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_ObservesQueries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := metrics.NewWithRegisterer("studio", prometheus.NewRegistry())
	wrapped := Wrap(db, m, "studio")

	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 1))
	_, err = wrapped.ExecContext(context.Background(), "UPDATE bookings SET status = $1", "confirmed")
	require.NoError(t, err)

	mock.ExpectExec("DELETE FROM bookings").WillReturnError(assert.AnError)
	_, err = wrapped.ExecContext(context.Background(), "DELETE FROM bookings")
	require.Error(t, err)

	assert.Equal(t, 1, testutil.CollectAndCount(m.DBQueryErrors))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("studio", "delete")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOperationName(t *testing.T) {
	assert.Equal(t, "select", operationName("  SELECT id FROM halls"))
	assert.Equal(t, "unknown", operationName(""))
}
