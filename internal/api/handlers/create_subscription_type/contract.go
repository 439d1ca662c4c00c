package create_subscription_type

import (
	"context"

	"github.com/m04kA/SMC-DanceStudio/internal/service/subscriptiontypes/models"
)

type SubscriptionTypeService interface {
	Create(ctx context.Context, req *models.TypeRequest) (*models.TypeResponse, error)
}

type StaffChecker interface {
	IsStaff(userID int64) bool
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
