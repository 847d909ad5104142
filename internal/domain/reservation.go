package domain

import (
	"time"

	"github.com/SyahmiDin/app-raya-studio/pkg/types"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	// StatusHeld - временная бронь на время оплаты; истекает по hold TTL
	StatusHeld ReservationStatus = "held"
	// StatusConfirmed - оплаченная (или административная) бронь; слот занят навсегда
	StatusConfirmed ReservationStatus = "confirmed"
)

// ReservationKind discriminates customer bookings from administrative blocks
type ReservationKind string

const (
	KindCustomer   ReservationKind = "customer"
	KindAdminBlock ReservationKind = "admin_block"
)

// Customer контактные данные клиента
type Customer struct {
	Name  string
	Email string
	Phone string
}

// Reservation represents a held-or-confirmed occupation of a (date, start time) slot.
// Customer reservations go held -> confirmed through payment; admin blocks are
// created directly in confirmed state with no customer attached.
type Reservation struct {
	ID          string
	BookingDate time.Time
	StartTime   types.TimeString

	ServiceID       string
	DurationMinutes int

	Kind   ReservationKind
	Status ReservationStatus

	ClientName  *string
	ClientEmail *string
	ClientPhone *string

	ReferralCode *string
	BasePrice    float64
	FinalPrice   *float64

	// StripeSessionID внешний платежный референс; заполняется после создания
	// checkout-сессии и используется для корреляции подтверждения оплаты
	StripeSessionID *string

	CreatedAt   time.Time
	UpdatedAt   time.Time
	ConfirmedAt *time.Time
}

// IsConfirmed returns true if the reservation permanently occupies its slot
func (r *Reservation) IsConfirmed() bool {
	return r.Status == StatusConfirmed
}

// IsHeld returns true if the reservation is a pre-payment hold
func (r *Reservation) IsHeld() bool {
	return r.Status == StatusHeld
}

// IsAdminBlock returns true for administrative blocks (no customer, no payment)
func (r *Reservation) IsAdminBlock() bool {
	return r.Kind == KindAdminBlock
}

// HoldExpiredAt returns true if a held reservation is older than ttl at the
// given instant. Expired holds no longer block the slot even if the row still
// exists - expiry is evaluated lazily, not by a timer.
func (r *Reservation) HoldExpiredAt(now time.Time, ttl time.Duration) bool {
	if !r.IsHeld() {
		return false
	}
	return now.Sub(r.CreatedAt) > ttl
}

// ReservationsFilter фильтр для выборки броней
type ReservationsFilter struct {
	Date         *time.Time         // Конкретная дата (опционально)
	Status       *ReservationStatus // Фильтр по статусу (опционально)
	Kind         *ReservationKind   // Фильтр по типу (опционально)
	WithReferral bool               // Только брони с указанным referral-кодом
}
