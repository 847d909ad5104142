package confirm_booking

import (
	"time"

	"github.com/SyahmiDin/app-raya-studio/internal/domain"
	confirmBooking "github.com/SyahmiDin/app-raya-studio/internal/usecase/confirm_booking"
)

// ConfirmRequest HTTP request model
type ConfirmRequest struct {
	SessionID string `json:"sessionId"`
}

// ConfirmResponse HTTP response model
type ConfirmResponse struct {
	ReservationID string   `json:"reservationId"`
	Status        string   `json:"status"`
	BookingDate   string   `json:"bookingDate"`
	StartTime     string   `json:"startTime"`
	ServiceID     string   `json:"serviceId"`
	FinalPrice    *float64 `json:"finalPrice,omitempty"`
	ConfirmedAt   *string  `json:"confirmedAt,omitempty"` // RFC3339
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmBooking.Response) *ConfirmResponse {
	out := &ConfirmResponse{
		ReservationID: resp.ReservationID,
		Status:        resp.Status,
		BookingDate:   resp.BookingDate.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		ServiceID:     resp.ServiceID,
		FinalPrice:    resp.FinalPrice,
	}
	if resp.ConfirmedAt != nil {
		confirmedAt := resp.ConfirmedAt.Format(time.RFC3339)
		out.ConfirmedAt = &confirmedAt
	}
	return out
}
