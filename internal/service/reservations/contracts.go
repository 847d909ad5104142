package reservations

import (
	"context"
	"time"

	"github.com/SyahmiDin/app-raya-studio/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	GetWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
	Delete(ctx context.Context, id string) error
	DeleteExpiredHolds(ctx context.Context, cutoff time.Time) (int64, error)
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
