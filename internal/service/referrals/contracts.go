package referrals

import (
	"context"

	"github.com/SyahmiDin/app-raya-studio/internal/domain"
)

// ReferralRepository интерфейс репозитория промокодов
type ReferralRepository interface {
	Create(ctx context.Context, code *domain.ReferralCode) (*domain.ReferralCode, error)
	GetByCode(ctx context.Context, code string) (*domain.ReferralCode, error)
	List(ctx context.Context) ([]*domain.ReferralCode, error)
	Delete(ctx context.Context, code string) error
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
