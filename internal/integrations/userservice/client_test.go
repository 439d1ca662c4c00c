package userservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DanceStudio/pkg/logger"
)

type staticStaff map[int64]bool

func (s staticStaff) IsStaff(id int64) bool { return s[id] }

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	users := map[string]User{
		"/internal/users/1": {ID: 1, Name: "Anna", Role: RoleAdmin},
		"/internal/users/2": {ID: 2, Name: "Ivan", Role: RoleTrainer},
		"/internal/users/3": {ID: 3, Name: "Olga", Role: RoleClient},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/internal/users/500" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		u, ok := users[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(ErrorResponse{Code: 404, Message: "not found"})
			return
		}
		_ = json.NewEncoder(w).Encode(u)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetUser(t *testing.T) {
	srv := newServer(t)
	c := NewClient(srv.URL, time.Second, logger.NewNop())

	u, err := c.GetUser(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, RoleTrainer, u.Role)
	assert.True(t, u.IsStaff())

	_, err = c.GetUser(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = c.GetUser(context.Background(), 500)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestStaffResolver(t *testing.T) {
	srv := newServer(t)
	fallback := staticStaff{500: true}
	r := NewStaffResolver(NewClient(srv.URL, time.Second, logger.NewNop()), fallback, time.Second, logger.NewNop())

	assert.True(t, r.IsStaff(1))
	assert.True(t, r.IsStaff(2))
	assert.False(t, r.IsStaff(3))
	assert.False(t, r.IsStaff(42))
	// сервис отвечает 500, решает резервный список
	assert.True(t, r.IsStaff(500))
}

func TestStaffResolver_ServiceDown(t *testing.T) {
	srv := newServer(t)
	url := srv.URL
	srv.Close()

	r := NewStaffResolver(NewClient(url, time.Second, logger.NewNop()), staticStaff{1: true}, time.Second, logger.NewNop())
	assert.True(t, r.IsStaff(1))
	assert.False(t, r.IsStaff(3))
}
