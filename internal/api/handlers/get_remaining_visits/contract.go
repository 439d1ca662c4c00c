package get_remaining_visits

import (
	"context"

	"github.com/m04kA/SMC-DanceStudio/internal/service/subscriptions/models"
)

type SubscriptionService interface {
	GetRemainingVisits(ctx context.Context, clientID int64) (*models.RemainingVisitsResponse, error)
}

type StaffChecker interface {
	IsStaff(userID int64) bool
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
