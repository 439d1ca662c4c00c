package purchase_subscription

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DanceStudio/internal/api/middleware"
	"github.com/m04kA/SMC-DanceStudio/internal/domain"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage/memory"
	purchaseUC "github.com/m04kA/SMC-DanceStudio/internal/usecase/purchase_subscription"
	"github.com/m04kA/SMC-DanceStudio/pkg/logger"
	"github.com/m04kA/SMC-DanceStudio/pkg/metrics"
)

func post(h *Handler, clientID int64, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/subscriptions", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), clientID))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	store := memory.NewStore()
	st, err := domain.NewSubscriptionType(domain.SubscriptionTypeParams{
		Name: "Unlimited month", ValidityDays: 30, Unlimited: true, Price: 120,
	}, time.Now())
	require.NoError(t, err)
	require.NoError(t, store.SaveSubscriptionType(context.Background(), st))

	uc := purchaseUC.NewUseCase(store, memory.NewTxManager(store), metrics.Nop{}, logger.NewNop())
	h := NewHandler(uc, logger.NewNop())

	rec := post(h, 7, `{"subscriptionTypeId":`+strconv.FormatInt(st.ID(), 10)+`}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"remainingVisits":-1`)

	// второй активный абонемент не выдаётся
	assert.Equal(t, http.StatusUnprocessableEntity, post(h, 7, `{"subscriptionTypeId":`+strconv.FormatInt(st.ID(), 10)+`}`).Code)

	assert.Equal(t, http.StatusNotFound, post(h, 8, `{"subscriptionTypeId":999}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(h, 8, `{"subscriptionTypeId":0}`).Code)
}
