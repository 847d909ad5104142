package get_services

import (
	"context"

	"github.com/SyahmiDin/app-raya-studio/internal/service/catalog/models"
)

type CatalogService interface {
	List(ctx context.Context) (*models.ServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
