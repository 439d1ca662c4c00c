package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-DanceStudio/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-DanceStudio/pkg/logger"
)

type stubUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	s.got = req
	return s.resp, s.err
}

func doRequest(uc *stubUseCase, hallID, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/halls/"+hallID+"/available-slots"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"hallId": hallID})
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	day := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	start := day.Add(10 * time.Hour)
	uc := &stubUseCase{resp: &getAvailableSlots.Response{
		HallID: 1,
		Date:   day,
		Slots: []getAvailableSlots.Slot{
			{StartTime: start, EndTime: start.Add(30 * time.Minute), DurationMinutes: 30, Available: false},
		},
	}}

	rec := doRequest(uc, "1", "?date=2025-03-11&duration=30")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, int64(1), uc.got.HallID)
	assert.Equal(t, 30, uc.got.DurationMinutes)
	assert.Equal(t, day, uc.got.Date)

	var body AvailableSlotsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "2025-03-11", body.Date)
	require.Len(t, body.Slots, 1)
	assert.False(t, body.Slots[0].Available)
}

func TestHandle_DefaultDuration(t *testing.T) {
	uc := &stubUseCase{resp: &getAvailableSlots.Response{HallID: 1}}

	rec := doRequest(uc, "1", "?date=2025-03-11")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, DefaultDurationMinutes, uc.got.DurationMinutes)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		hallID string
		query  string
		err    error
		status int
	}{
		{"bad hall", "x", "?date=2025-03-11", nil, http.StatusBadRequest},
		{"missing date", "1", "", nil, http.StatusBadRequest},
		{"bad date", "1", "?date=11.03.2025", nil, http.StatusBadRequest},
		{"bad duration", "1", "?date=2025-03-11&duration=hour", nil, http.StatusBadRequest},
		{"hall not found", "1", "?date=2025-03-11", getAvailableSlots.ErrHallNotFound, http.StatusNotFound},
		{"past date", "1", "?date=2025-03-11", getAvailableSlots.ErrInvalidDate, http.StatusBadRequest},
		{"internal", "1", "?date=2025-03-11", getAvailableSlots.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(&stubUseCase{err: tt.err}, tt.hallID, tt.query)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
