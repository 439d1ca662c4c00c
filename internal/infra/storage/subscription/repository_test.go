package subscription

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

func newType(t *testing.T) *domain.SubscriptionType {
	t.Helper()
	st, err := domain.NewSubscriptionType(domain.SubscriptionTypeParams{
		Name:         "8 visits",
		ValidityDays: 30,
		VisitCount:   8,
		Price:        80,
	}, now)
	require.NoError(t, err)
	return st
}

func TestSaveSubscriptionType(t *testing.T) {
	repo, mock := newRepo(t)
	st := newType(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO subscription_types (name,validity_days,visit_count,unlimited,price,created_at) VALUES ($1,$2,$3,$4,$5,$6) RETURNING id, created_at")).
		WithArgs("8 visits", 30, 8, false, 80.0, now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), now))

	require.NoError(t, repo.SaveSubscriptionType(context.Background(), st))
	assert.Equal(t, int64(1), st.ID())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSubscriptionTypeByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("FROM subscription_types WHERE id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "validity_days", "visit_count", "unlimited", "price", "created_at"}))

	_, err := repo.GetSubscriptionTypeByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrSubscriptionTypeNotFound)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCountSubscriptionsByType(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM subscriptions WHERE subscription_type_id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountSubscriptionsByType(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestSaveSubscription_DuplicateActive(t *testing.T) {
	repo, mock := newRepo(t)
	st := newType(t)
	st.MarkPersisted(1, now)
	sub, err := st.Issue(9, now)
	require.NoError(t, err)

	mock.ExpectQuery("INSERT INTO subscriptions").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "subscriptions_one_active_per_client"})

	err = repo.SaveSubscription(context.Background(), sub)
	assert.ErrorIs(t, err, storage.ErrDuplicate)
	assert.Zero(t, sub.ID())
}

func TestSaveSubscription(t *testing.T) {
	repo, mock := newRepo(t)
	st := newType(t)
	st.MarkPersisted(1, now)
	sub, err := st.Issue(9, now)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO subscriptions (client_id,subscription_type_id,start_date,end_date,remaining_visits,status,purchase_date,updated_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id")).
		WithArgs(int64(9), int64(1), now, now.AddDate(0, 0, 30), 8, "active", now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(21)))

	require.NoError(t, repo.SaveSubscription(context.Background(), sub))
	assert.Equal(t, int64(21), sub.ID())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindSubscriptionsByClient(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM subscriptions WHERE client_id = $1 ORDER BY end_date ASC, id ASC")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(1), int64(9), int64(1), now, now.AddDate(0, 0, 30), -1, "active", now, now).
			AddRow(int64(2), int64(9), int64(2), now, now.AddDate(0, 0, 60), 0, "expired", now, now))

	subs, err := repo.FindSubscriptionsByClient(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.True(t, subs[0].IsUnlimited())
	assert.Equal(t, domain.UnlimitedVisits, domain.TotalRemainingVisits(subs, now.Add(time.Hour)))
}

func TestFindSubscriptionsToExpire(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM subscriptions WHERE status IN ($1,$2) AND end_date < $3")).
		WithArgs("active", "suspended", now).
		WillReturnRows(sqlmock.NewRows(columns))

	subs, err := repo.FindSubscriptionsToExpire(context.Background(), now)
	require.NoError(t, err)
	assert.Empty(t, subs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSubscription_CompareAndSet(t *testing.T) {
	repo, mock := newRepo(t)
	st := newType(t)
	st.MarkPersisted(1, now)
	sub, err := st.Issue(9, now)
	require.NoError(t, err)
	sub.MarkPersisted(21)
	visitAt := now.Add(time.Hour)
	require.NoError(t, sub.UseVisit(visitAt))

	query := regexp.QuoteMeta("UPDATE subscriptions SET remaining_visits = $1, status = $2, updated_at = $3 WHERE id = $4 AND remaining_visits = $5 AND status = $6")

	mock.ExpectExec(query).
		WithArgs(7, "active", visitAt, int64(21), 8, "active").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateSubscription(context.Background(), sub, 8, domain.SubscriptionStatusActive))

	mock.ExpectExec(query).WillReturnResult(sqlmock.NewResult(0, 0))
	err = repo.UpdateSubscription(context.Background(), sub, 8, domain.SubscriptionStatusActive)
	assert.ErrorIs(t, err, storage.ErrConcurrentUpdate)

	require.NoError(t, mock.ExpectationsWereMet())
}
