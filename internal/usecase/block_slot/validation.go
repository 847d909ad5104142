package block_slot

import (
	"fmt"
)

const maxBlockDurationMinutes = 12 * 60

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime must be in HH:MM format", ErrInvalidInput)
	}

	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}

	if req.DurationMinutes > maxBlockDurationMinutes {
		return fmt.Errorf("%w: durationMinutes is too large", ErrInvalidInput)
	}

	return nil
}
