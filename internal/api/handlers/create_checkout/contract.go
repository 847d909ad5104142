package create_checkout

import (
	"context"

	createCheckout "github.com/SyahmiDin/app-raya-studio/internal/usecase/create_checkout"
)

type CreateCheckoutUseCase interface {
	Execute(ctx context.Context, req *createCheckout.Request) (*createCheckout.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
