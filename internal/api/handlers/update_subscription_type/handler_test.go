package update_subscription_type

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DanceStudio/internal/api/handlers/create_subscription_type"
	"github.com/m04kA/SMC-DanceStudio/internal/api/middleware"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage/memory"
	"github.com/m04kA/SMC-DanceStudio/internal/service/bookings"
	"github.com/m04kA/SMC-DanceStudio/internal/service/subscriptiontypes"
	"github.com/m04kA/SMC-DanceStudio/pkg/logger"
)

const staffID = 100

func call(t *testing.T, handle http.HandlerFunc, method, typeID string, userID int64, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/api/v1/subscription-types", strings.NewReader(body))
	if typeID != "" {
		req = mux.SetURLVars(req, map[string]string{"typeId": typeID})
	}
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	handle(rec, req)
	return rec
}

func TestCreateThenUpdate(t *testing.T) {
	store := memory.NewStore()
	svc := subscriptiontypes.NewService(store, memory.NewTxManager(store), logger.NewNop())
	staff := bookings.NewStaffList([]int64{staffID})

	create := create_subscription_type.NewHandler(svc, staff, logger.NewNop()).Handle
	update := NewHandler(svc, staff, logger.NewNop()).Handle

	assert.Equal(t, http.StatusForbidden, call(t, create, http.MethodPost, "", 7, `{"name":"x","validityDays":30,"visitCount":4}`).Code)
	assert.Equal(t, http.StatusBadRequest, call(t, create, http.MethodPost, "", staffID, `{"name":"x","validityDays":30}`).Code)

	rec := call(t, create, http.MethodPost, "", staffID, `{"name":"8 visits","validityDays":30,"visitCount":8,"price":80}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	unlimited := call(t, create, http.MethodPost, "", staffID, `{"name":"Unlimited","validityDays":30,"unlimited":true}`)
	require.Equal(t, http.StatusCreated, unlimited.Code)

	types, err := store.GetSubscriptionTypeByID(context.Background(), 1)
	require.NoError(t, err)
	id := strconv.FormatInt(types.ID(), 10)

	rec = call(t, update, http.MethodPut, id, staffID, `{"name":"10 visits","validityDays":45,"visitCount":10,"price":95}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"visitCount":10`)

	// после выдачи абонемента тип не меняется
	sub, err := types.Issue(7, time.Now())
	require.NoError(t, err)
	require.NoError(t, store.SaveSubscription(context.Background(), sub))
	rec = call(t, update, http.MethodPut, id, staffID, `{"name":"12 visits","validityDays":45,"visitCount":12}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	assert.Equal(t, http.StatusNotFound, call(t, update, http.MethodPut, "999", staffID, `{"name":"y","validityDays":5,"visitCount":1}`).Code)
}
