package unenroll

import (
	"context"

	unenrollUC "github.com/m04kA/SMC-DanceStudio/internal/usecase/unenroll"
)

type UnenrollUseCase interface {
	Execute(ctx context.Context, req *unenrollUC.Request) (*unenrollUC.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
