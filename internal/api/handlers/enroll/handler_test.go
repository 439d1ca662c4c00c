package enroll

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DanceStudio/internal/api/middleware"
	"github.com/m04kA/SMC-DanceStudio/internal/domain"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage/memory"
	enrollUC "github.com/m04kA/SMC-DanceStudio/internal/usecase/enroll"
	"github.com/m04kA/SMC-DanceStudio/pkg/logger"
	"github.com/m04kA/SMC-DanceStudio/pkg/metrics"
)

func post(h *Handler, lessonID string, clientID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/lessons/"+lessonID+"/enrollments", nil)
	req = mux.SetURLVars(req, map[string]string{"lessonId": lessonID})
	req = req.WithContext(middleware.WithUserID(req.Context(), clientID))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_LastSeat(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	now := time.Now()

	slot, err := domain.NewTimeSlot(now.Add(24*time.Hour), 60, now)
	require.NoError(t, err)
	lesson, err := domain.NewLesson(domain.LessonParams{
		Type: "tango", Name: "Tango", Slot: slot, Difficulty: domain.DifficultyIntermediate,
		MaxParticipants: 2, TrainerID: 3, HallID: 1,
	}, now)
	require.NoError(t, err)
	require.NoError(t, store.SaveLesson(ctx, lesson))

	for _, clientID := range []int64{7, 8} {
		st, err := domain.NewSubscriptionType(domain.SubscriptionTypeParams{
			Name: "4 visits " + strconv.FormatInt(clientID, 10), ValidityDays: 30, VisitCount: 4,
		}, now)
		require.NoError(t, err)
		require.NoError(t, store.SaveSubscriptionType(ctx, st))
		sub, err := st.Issue(clientID, now)
		require.NoError(t, err)
		require.NoError(t, store.SaveSubscription(ctx, sub))
	}

	uc := enrollUC.NewUseCase(store, memory.NewTxManager(store), 3, metrics.Nop{}, logger.NewNop())
	h := NewHandler(uc, logger.NewNop())
	id := strconv.FormatInt(lesson.ID(), 10)

	rec := post(h, id, 7)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"remainingVisits":3`)

	// повторная запись того же клиента
	assert.Equal(t, http.StatusUnprocessableEntity, post(h, id, 7).Code)
	// у клиента нет абонемента
	assert.Equal(t, http.StatusUnprocessableEntity, post(h, id, 9).Code)

	rec = post(h, id, 8)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"currentParticipants":2`)

	// мест нет: вместимость проверяется раньше абонемента
	assert.Equal(t, http.StatusConflict, post(h, id, 9).Code)

	assert.Equal(t, http.StatusNotFound, post(h, "999", 7).Code)
	assert.Equal(t, http.StatusBadRequest, post(h, "x", 7).Code)
}
