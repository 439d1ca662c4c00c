package enroll

import (
	"context"

	enrollUC "github.com/m04kA/SMC-DanceStudio/internal/usecase/enroll"
)

type EnrollUseCase interface {
	Execute(ctx context.Context, req *enrollUC.Request) (*enrollUC.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
