package confirm_booking

import (
	"time"

	"github.com/SyahmiDin/app-raya-studio/pkg/types"
)

// Request модель запроса на подтверждение оплаты.
// Клиент передает только непрозрачный ID сессии; статус оплаты
// проверяется напрямую в Stripe
type Request struct {
	SessionID string
}

// Response модель подтвержденной брони
type Response struct {
	ReservationID string
	Status        string
	BookingDate   time.Time
	StartTime     types.TimeString
	ServiceID     string
	FinalPrice    *float64
	ConfirmedAt   *time.Time
}
