package referrals

import (
	"context"

	"github.com/SyahmiDin/app-raya-studio/internal/service/referrals/models"
)

type ReferralsService interface {
	Create(ctx context.Context, req *models.CreateReferralRequest) (*models.ReferralResponse, error)
	List(ctx context.Context) (*models.ReferralListResponse, error)
	Delete(ctx context.Context, code string) error
	Report(ctx context.Context) (*models.ReportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
