package block_slot

import (
	"time"

	"github.com/SyahmiDin/app-raya-studio/internal/domain"
	blockSlot "github.com/SyahmiDin/app-raya-studio/internal/usecase/block_slot"
	"github.com/SyahmiDin/app-raya-studio/pkg/types"
)

// BlockRequest HTTP request model
type BlockRequest struct {
	Date            string `json:"date"`      // "2026-03-21"
	StartTime       string `json:"startTime"` // "14:00"
	DurationMinutes int    `json:"durationMinutes"`
}

// BlockResponse HTTP response model
type BlockResponse struct {
	BlockID         string `json:"blockId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	CreatedAt       string `json:"createdAt"` // RFC3339
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BlockRequest) ToUseCaseRequest() (*blockSlot.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &blockSlot.Request{
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *blockSlot.Response) *BlockResponse {
	return &BlockResponse{
		BlockID:         resp.BlockID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
