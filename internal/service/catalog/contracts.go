package catalog

import (
	"context"

	"github.com/SyahmiDin/app-raya-studio/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	List(ctx context.Context) ([]*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
