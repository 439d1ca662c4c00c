package transition_subscription

import (
	"context"

	"github.com/m04kA/SMC-DanceStudio/internal/service/subscriptions/models"
)

type SubscriptionService interface {
	Transition(ctx context.Context, req *models.TransitionRequest) (*models.SubscriptionResponse, error)
}

type StaffChecker interface {
	IsStaff(userID int64) bool
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
