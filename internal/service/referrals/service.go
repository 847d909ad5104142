package referrals

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SyahmiDin/app-raya-studio/internal/domain"
	referralRepo "github.com/SyahmiDin/app-raya-studio/internal/infra/storage/referral"
	"github.com/SyahmiDin/app-raya-studio/internal/service/referrals/models"
	"github.com/SyahmiDin/app-raya-studio/pkg/ptr"
)

// Service сервис промокодов и комиссионного отчета
type Service struct {
	referralRepo    ReferralRepository
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса промокодов
func NewService(referralRepo ReferralRepository, reservationRepo ReservationRepository, logger Logger) *Service {
	return &Service{
		referralRepo:    referralRepo,
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// Create создает промокод сотрудника
func (s *Service) Create(ctx context.Context, req *models.CreateReferralRequest) (*models.ReferralResponse, error) {
	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	code := &domain.ReferralCode{
		Code:            strings.ToUpper(strings.TrimSpace(req.Code)),
		StaffName:       strings.TrimSpace(req.StaffName),
		DiscountPercent: req.DiscountPercent,
	}

	created, err := s.referralRepo.Create(ctx, code)
	if err != nil {
		if errors.Is(err, referralRepo.ErrDuplicateCode) {
			s.logger.Warn("Create: referral code %s already exists", code.Code)
			return nil, ErrDuplicateCode
		}
		s.logger.Error("Create: repository error for code %s: %v", code.Code, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created referral code %s for %s (%.1f%%)",
		created.Code, created.StaffName, created.DiscountPercent)
	return models.FromDomainReferral(created), nil
}

// List возвращает все промокоды
func (s *Service) List(ctx context.Context) (*models.ReferralListResponse, error) {
	codes, err := s.referralRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReferralList(codes), nil
}

// Delete удаляет промокод. Выданные по нему брони сохраняют
// зафиксированную скидку и остаются в отчете
func (s *Service) Delete(ctx context.Context, code string) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	if err := s.referralRepo.Delete(ctx, strings.ToUpper(strings.TrimSpace(code))); err != nil {
		if errors.Is(err, referralRepo.ErrCodeNotFound) {
			s.logger.Warn("Delete: referral code %s not found", code)
			return ErrCodeNotFound
		}
		s.logger.Error("Delete: repository error for code %s: %v", code, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: removed referral code %s", code)
	return nil
}

// Report строит комиссионный отчет: по каждому промокоду количество
// оплаченных броней, сумма продаж и комиссия сотрудника
func (s *Service) Report(ctx context.Context) (*models.ReportResponse, error) {
	codes, err := s.referralRepo.List(ctx)
	if err != nil {
		s.logger.Error("Report: failed to list referral codes: %v", err)
		return nil, fmt.Errorf("%w: Report - repository error: %v", ErrInternal, err)
	}

	// Комиссия считается только с оплаченных клиентских броней
	reservations, err := s.reservationRepo.GetWithFilter(ctx, domain.ReservationsFilter{
		Status:       ptr.Ptr(domain.StatusConfirmed),
		Kind:         ptr.Ptr(domain.KindCustomer),
		WithReferral: true,
	})
	if err != nil {
		s.logger.Error("Report: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: Report - repository error: %v", ErrInternal, err)
	}

	type bucket struct {
		count int
		sales float64
	}
	usage := make(map[string]bucket)
	for _, r := range reservations {
		if r.ReferralCode == nil {
			continue
		}
		b := usage[*r.ReferralCode]
		b.count++
		if r.FinalPrice != nil {
			b.sales += *r.FinalPrice
		} else {
			b.sales += r.BasePrice
		}
		usage[*r.ReferralCode] = b
	}

	entries := make([]domain.ReferralReportEntry, len(codes))
	for i, c := range codes {
		b := usage[c.Code]
		entries[i] = domain.ReferralReportEntry{
			Code:            c.Code,
			StaffName:       c.StaffName,
			DiscountPercent: c.DiscountPercent,
			UsageCount:      b.count,
			TotalSales:      b.sales,
			TotalCommission: c.Commission(b.sales),
		}
	}

	s.logger.Info("Report: built report for %d codes over %d paid reservations", len(codes), len(reservations))
	return models.FromDomainReportEntries(entries), nil
}

// validateCreateRequest валидирует запрос на создание промокода
func validateCreateRequest(req *models.CreateReferralRequest) error {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	if len(code) > domain.MaxReferralCodeLen {
		return fmt.Errorf("%w: code is too long", ErrInvalidInput)
	}

	if strings.TrimSpace(req.StaffName) == "" {
		return fmt.Errorf("%w: staffName is required", ErrInvalidInput)
	}

	if req.DiscountPercent <= 0 || req.DiscountPercent > 100 {
		return fmt.Errorf("%w: discountPercent must be in (0, 100]", ErrInvalidInput)
	}

	return nil
}
