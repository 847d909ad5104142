package create_checkout

import (
	"fmt"
	"strings"
	"time"

	"github.com/SyahmiDin/app-raya-studio/internal/domain"
	"github.com/SyahmiDin/app-raya-studio/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID == "" {
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime must be in HH:MM format", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.ClientName)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}

	email := strings.TrimSpace(req.ClientEmail)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if len(email) > domain.MaxClientEmailLength || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: email is invalid", ErrInvalidInput)
	}

	if len(req.ClientPhone) > domain.MaxClientPhoneLength {
		return fmt.Errorf("%w: phone is too long", ErrInvalidInput)
	}

	if req.ReferralCode != nil && len(*req.ReferralCode) > domain.MaxReferralCodeLen {
		return fmt.Errorf("%w: referral code is too long", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата брони не в прошлом
func validateDate(requestDate, now time.Time) error {
	dateOnly := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, requestDate.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}
	return nil
}

// validateSlotOnGrid проверяет, что время лежит на сетке слотов услуги.
// Сетка строится так же, как при выдаче доступности: от начала каждого окна
// с шагом duration+buffer, пока сессия помещается в окно.
func validateSlotOnGrid(windows []domain.SessionWindow, durationMinutes, bufferMinutes int, start types.TimeString) error {
	for _, window := range windows {
		currentSlot := window.Start

		for {
			slotEnd, err := currentSlot.AddMinutes(durationMinutes)
			if err != nil {
				break
			}
			if slotEnd.IsAfter(window.End) {
				break
			}

			if currentSlot == start {
				return nil
			}

			currentSlot, err = currentSlot.AddMinutes(durationMinutes + bufferMinutes)
			if err != nil {
				break
			}
		}
	}

	return ErrInvalidTimeSlot
}
