package purchase_subscription

import (
	"context"

	purchaseUC "github.com/m04kA/SMC-DanceStudio/internal/usecase/purchase_subscription"
)

type PurchaseSubscriptionUseCase interface {
	Execute(ctx context.Context, req *purchaseUC.Request) (*purchaseUC.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
