package models

import (
	"errors"
	"time"

	"github.com/SyahmiDin/app-raya-studio/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrInvalidKind возвращается при некорректном типе брони
	ErrInvalidKind = errors.New("invalid reservation kind")
)

// GetReservationsRequest запрос на получение списка броней
type GetReservationsRequest struct {
	Date   *time.Time // Фильтр по дате (опционально)
	Status *string    // Фильтр по статусу (опционально)
	Kind   *string    // Фильтр по типу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetReservationsRequest) ToDomainFilter() (domain.ReservationsFilter, error) {
	filter := domain.ReservationsFilter{
		Date: r.Date,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if r.Kind != nil {
		kind, err := ToDomainKind(*r.Kind)
		if err != nil {
			return filter, err
		}
		filter.Kind = &kind
	}

	return filter, nil
}

// ToDomainStatus конвертирует строку в domain.ReservationStatus
func ToDomainStatus(s string) (domain.ReservationStatus, error) {
	switch domain.ReservationStatus(s) {
	case domain.StatusHeld, domain.StatusConfirmed:
		return domain.ReservationStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// ToDomainKind конвертирует строку в domain.ReservationKind
func ToDomainKind(s string) (domain.ReservationKind, error) {
	switch domain.ReservationKind(s) {
	case domain.KindCustomer, domain.KindAdminBlock:
		return domain.ReservationKind(s), nil
	default:
		return "", ErrInvalidKind
	}
}

// ReservationResponse ответ с данными брони
type ReservationResponse struct {
	ID              string     `json:"id"`
	BookingDate     string     `json:"bookingDate"` // "2026-03-21"
	StartTime       string     `json:"startTime"`   // "10:00"
	ServiceID       string     `json:"serviceId,omitempty"`
	DurationMinutes int        `json:"durationMinutes"`
	Kind            string     `json:"kind"`
	Status          string     `json:"status"`
	ClientName      *string    `json:"clientName,omitempty"`
	ClientEmail     *string    `json:"clientEmail,omitempty"`
	ClientPhone     *string    `json:"clientPhone,omitempty"`
	ReferralCode    *string    `json:"referralCode,omitempty"`
	BasePrice       float64    `json:"basePrice"`
	FinalPrice      *float64   `json:"finalPrice,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	ConfirmedAt     *time.Time `json:"confirmedAt,omitempty"`
}

// ReservationListResponse ответ со списком броней
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// FromDomainReservation конвертирует domain бронь в response
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:              r.ID,
		BookingDate:     r.BookingDate.Format(domain.DateFormat),
		StartTime:       r.StartTime.String(),
		ServiceID:       r.ServiceID,
		DurationMinutes: r.DurationMinutes,
		Kind:            string(r.Kind),
		Status:          string(r.Status),
		ClientName:      r.ClientName,
		ClientEmail:     r.ClientEmail,
		ClientPhone:     r.ClientPhone,
		ReferralCode:    r.ReferralCode,
		BasePrice:       r.BasePrice,
		FinalPrice:      r.FinalPrice,
		CreatedAt:       r.CreatedAt,
		ConfirmedAt:     r.ConfirmedAt,
	}
}

// FromDomainReservationList конвертирует список domain броней в response
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	result := make([]ReservationResponse, len(reservations))
	for i, r := range reservations {
		result[i] = *FromDomainReservation(r)
	}
	return &ReservationListResponse{Reservations: result}
}
