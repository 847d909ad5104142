package create_checkout

import (
	"context"
	"time"

	"github.com/SyahmiDin/app-raya-studio/internal/domain"
	"github.com/SyahmiDin/app-raya-studio/internal/integrations/stripepay"
	"github.com/SyahmiDin/app-raya-studio/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetBySlot(ctx context.Context, date time.Time, start types.TimeString) (*domain.Reservation, error)
	GetWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
	SetPaymentRef(ctx context.Context, id string, sessionID string) error
	Delete(ctx context.Context, id string) error
	DeleteHeld(ctx context.Context, id string) error
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetByID(ctx context.Context, serviceID string) (*domain.Service, error)
}

// ReferralRepository интерфейс репозитория промокодов
type ReferralRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.ReferralCode, error)
}

// PaymentClient интерфейс клиента платёжного шлюза
type PaymentClient interface {
	CreateCheckoutSession(ctx context.Context, req stripepay.CheckoutRequest) (*stripepay.CheckoutSession, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
