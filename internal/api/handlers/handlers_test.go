package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

func TestDomainStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
		ok     bool
	}{
		{fmt.Errorf("%w: bad", domain.ErrValidation), http.StatusBadRequest, true},
		{domain.ErrSchedulingConflict, http.StatusConflict, true},
		{domain.ErrLessonFull, http.StatusConflict, true},
		{&domain.TransitionError{Entity: "booking", From: "cancelled", Action: "confirm"}, http.StatusConflict, true},
		{domain.ErrNoVisitsLeft, http.StatusUnprocessableEntity, true},
		{fmt.Errorf("boom"), 0, false},
	}

	for _, tt := range tests {
		status, ok := DomainStatus(tt.err)
		assert.Equal(t, tt.ok, ok, tt.err.Error())
		assert.Equal(t, tt.status, status, tt.err.Error())
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"salsa"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "salsa", dst.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"salsa","extra":1}`))
	assert.Error(t, DecodeJSON(r, &dst))
}

func TestValidate(t *testing.T) {
	type dto struct {
		HallID   int64 `validate:"required,gt=0"`
		Duration int   `validate:"required,min=15"`
	}

	assert.NoError(t, Validate(&dto{HallID: 1, Duration: 60}))

	err := Validate(&dto{HallID: 1, Duration: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Duration: min=15")
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondNotFound(rec, "не найдено")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"не найдено"}`, rec.Body.String())
}
