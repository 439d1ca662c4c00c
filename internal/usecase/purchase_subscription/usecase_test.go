package purchase_subscription

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

var t0 = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

func setup(t *testing.T) (*UseCase, *memory.Store, *clock, int64) {
	t.Helper()
	store := memory.NewStore()
	st, err := domain.NewSubscriptionType(domain.SubscriptionTypeParams{Name: "8 visits", ValidityDays: 30, VisitCount: 8, Price: 80}, t0)
	require.NoError(t, err)
	require.NoError(t, store.SaveSubscriptionType(context.Background(), st))

	c := &clock{t: t0}
	uc := NewUseCase(store, memory.NewTxManager(store), metrics.Nop{}, logger.NewNop())
	uc.timeProvider = c
	return uc, store, c, st.ID()
}

func TestExecute_IssuesSnapshot(t *testing.T) {
	uc, _, _, typeID := setup(t)

	resp, err := uc.Execute(context.Background(), &Request{ClientID: 5, SubscriptionTypeID: typeID})
	require.NoError(t, err)
	assert.Equal(t, 8, resp.RemainingVisits)
	assert.Equal(t, t0.AddDate(0, 0, 30), resp.EndDate)
	assert.Equal(t, "active", resp.Status)
}

func TestExecute_RejectsSecondActive(t *testing.T) {
	uc, _, _, typeID := setup(t)

	_, err := uc.Execute(context.Background(), &Request{ClientID: 5, SubscriptionTypeID: typeID})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{ClientID: 5, SubscriptionTypeID: typeID})
	assert.ErrorIs(t, err, ErrActiveSubscriptionExists)
	assert.ErrorIs(t, err, domain.ErrBusinessRuleViolation)

	// другой клиент не затронут
	_, err = uc.Execute(context.Background(), &Request{ClientID: 6, SubscriptionTypeID: typeID})
	assert.NoError(t, err)
}

func TestExecute_ExpiresDueSubscriptionFirst(t *testing.T) {
	uc, store, c, typeID := setup(t)

	first, err := uc.Execute(context.Background(), &Request{ClientID: 5, SubscriptionTypeID: typeID})
	require.NoError(t, err)

	c.t = t0.AddDate(0, 0, 31)
	second, err := uc.Execute(context.Background(), &Request{ClientID: 5, SubscriptionTypeID: typeID})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	old, err := store.GetSubscriptionByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionStatusExpired, old.Status())
}

func TestExecute_TypeNotFound(t *testing.T) {
	uc, _, _, _ := setup(t)

	_, err := uc.Execute(context.Background(), &Request{ClientID: 5, SubscriptionTypeID: 404})
	assert.ErrorIs(t, err, ErrSubscriptionTypeNotFound)
}

func TestExecute_InvalidClient(t *testing.T) {
	uc, _, _, typeID := setup(t)

	_, err := uc.Execute(context.Background(), &Request{ClientID: 0, SubscriptionTypeID: typeID})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
