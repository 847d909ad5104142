package create_checkout

import (
	"time"

	"github.com/SyahmiDin/app-raya-studio/internal/domain"
	createCheckout "github.com/SyahmiDin/app-raya-studio/internal/usecase/create_checkout"
	"github.com/SyahmiDin/app-raya-studio/pkg/types"
)

// CheckoutRequest HTTP request model
type CheckoutRequest struct {
	ServiceID    string  `json:"serviceId"`
	Date         string  `json:"date"`      // "2026-03-21"
	StartTime    string  `json:"startTime"` // "10:00"
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	ReferralCode *string `json:"referralCode,omitempty"`
}

// CheckoutResponse HTTP response model
type CheckoutResponse struct {
	ReservationID string  `json:"reservationId"`
	SessionID     string  `json:"sessionId"`
	CheckoutURL   string  `json:"checkoutUrl"`
	BasePrice     float64 `json:"basePrice"`
	FinalPrice    float64 `json:"finalPrice"`
	HoldExpiresAt string  `json:"holdExpiresAt"` // RFC3339
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckoutRequest) ToUseCaseRequest() (*createCheckout.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createCheckout.Request{
		ServiceID:    r.ServiceID,
		Date:         date,
		StartTime:    startTime,
		ClientName:   r.Name,
		ClientEmail:  r.Email,
		ClientPhone:  r.Phone,
		ReferralCode: r.ReferralCode,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createCheckout.Response) *CheckoutResponse {
	return &CheckoutResponse{
		ReservationID: resp.ReservationID,
		SessionID:     resp.SessionID,
		CheckoutURL:   resp.CheckoutURL,
		BasePrice:     resp.BasePrice,
		FinalPrice:    resp.FinalPrice,
		HoldExpiresAt: resp.HoldExpiresAt.Format(time.RFC3339),
	}
}
