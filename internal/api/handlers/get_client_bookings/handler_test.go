package get_client_bookings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DanceStudio/internal/api/middleware"
	"github.com/m04kA/SMC-DanceStudio/internal/service/bookings"
	"github.com/m04kA/SMC-DanceStudio/internal/service/bookings/models"
	"github.com/m04kA/SMC-DanceStudio/pkg/logger"
)

type stubService struct {
	gotClient int64
	resp      *models.BookingListResponse
	err       error
}

func (s *stubService) GetClientBookings(_ context.Context, clientID int64) (*models.BookingListResponse, error) {
	s.gotClient = clientID
	return s.resp, s.err
}

func TestHandle(t *testing.T) {
	svc := &stubService{resp: &models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 1}, {ID: 2}}}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), 7))
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), svc.gotClient)

	var body []models.BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Len(t, body, 2)
}

func TestHandle_Errors(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&stubService{}, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), 7))
	rec = httptest.NewRecorder()
	NewHandler(&stubService{err: bookings.ErrInternal}, logger.NewNop()).Handle(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
