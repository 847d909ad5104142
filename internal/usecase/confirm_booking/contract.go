package confirm_booking

import (
	"context"
	"time"

	"github.com/SyahmiDin/app-raya-studio/internal/domain"
	"github.com/SyahmiDin/app-raya-studio/internal/integrations/stripepay"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	Confirm(ctx context.Context, id string, sessionID string, confirmedAt time.Time) error
}

// PaymentClient интерфейс клиента платёжного шлюза
type PaymentClient interface {
	GetPaymentInfo(ctx context.Context, sessionID string) (*stripepay.PaymentInfo, error)
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
