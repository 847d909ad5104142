package get_availability

import (
	"github.com/SyahmiDin/app-raya-studio/internal/domain"
	getAvailability "github.com/SyahmiDin/app-raya-studio/internal/usecase/get_availability"
)

// SlotResponse HTTP модель слота сетки
type SlotResponse struct {
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Session         string `json:"session"`
	Available       bool   `json:"available"`
}

// AvailabilityResponse HTTP модель сетки слотов на день
type AvailabilityResponse struct {
	Date            string         `json:"date"` // "2026-03-21"
	ServiceID       string         `json:"serviceId"`
	ServiceName     string         `json:"serviceName"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime:       s.StartTime.String(),
			DurationMinutes: s.DurationMinutes,
			Session:         s.Session,
			Available:       s.Available,
		}
	}

	return &AvailabilityResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ServiceID:       resp.ServiceID,
		ServiceName:     resp.ServiceName,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
