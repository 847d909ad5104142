package get_availability

import (
	"context"
	"time"

	"github.com/SyahmiDin/app-raya-studio/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	// GetByID получает услугу по идентификатору
	GetByID(ctx context.Context, serviceID string) (*domain.Service, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// GetWithFilter получает бронирования по фильтру
	GetWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
