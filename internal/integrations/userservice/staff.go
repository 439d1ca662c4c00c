package userservice

import (
	"context"
	"errors"
	"time"
)

// StaffResolver определяет сотрудников по роли из UserService.
// При недоступности сервиса используется резервный список (graceful degradation).
type StaffResolver struct {
	client   *Client
	fallback StaffChecker
	timeout  time.Duration
	log      Logger
}

func NewStaffResolver(client *Client, fallback StaffChecker, timeout time.Duration, log Logger) *StaffResolver {
	return &StaffResolver{
		client:   client,
		fallback: fallback,
		timeout:  timeout,
		log:      log,
	}
}

func (r *StaffResolver) IsStaff(userID int64) bool {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	user, err := r.client.GetUser(ctx, userID)
	switch {
	case err == nil:
		return user.IsStaff()
	case errors.Is(err, ErrUserNotFound):
		r.log.Info("User id=%d is not registered in UserService", userID)
		return false
	default:
		r.log.Error("UserService unavailable, falling back to static staff list for user_id=%d: %v", userID, err)
		return r.fallback.IsStaff(userID)
	}
}
