package models

import (
	"time"

	"github.com/SyahmiDin/app-raya-studio/internal/domain"
)

// CreateReferralRequest запрос на создание промокода
type CreateReferralRequest struct {
	Code            string  `json:"code"`
	StaffName       string  `json:"staffName"`
	DiscountPercent float64 `json:"discountPercent"`
}

// ReferralResponse ответ с данными промокода
type ReferralResponse struct {
	Code            string    `json:"code"`
	StaffName       string    `json:"staffName"`
	DiscountPercent float64   `json:"discountPercent"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ReferralListResponse ответ со списком промокодов
type ReferralListResponse struct {
	Referrals []ReferralResponse `json:"referrals"`
}

// ReportEntryResponse строка отчета по промокоду
type ReportEntryResponse struct {
	Code            string  `json:"code"`
	StaffName       string  `json:"staffName"`
	DiscountPercent float64 `json:"discountPercent"`
	UsageCount      int     `json:"usageCount"`
	TotalSales      float64 `json:"totalSales"`
	TotalCommission float64 `json:"totalCommission"`
}

// ReportResponse отчет по всем промокодам
type ReportResponse struct {
	Entries []ReportEntryResponse `json:"entries"`
}

// FromDomainReferral конвертирует domain промокод в response
func FromDomainReferral(c *domain.ReferralCode) *ReferralResponse {
	return &ReferralResponse{
		Code:            c.Code,
		StaffName:       c.StaffName,
		DiscountPercent: c.DiscountPercent,
		CreatedAt:       c.CreatedAt,
	}
}

// FromDomainReferralList конвертирует список domain промокодов в response
func FromDomainReferralList(codes []*domain.ReferralCode) *ReferralListResponse {
	result := make([]ReferralResponse, len(codes))
	for i, c := range codes {
		result[i] = *FromDomainReferral(c)
	}
	return &ReferralListResponse{Referrals: result}
}

// FromDomainReportEntries конвертирует строки отчета в response
func FromDomainReportEntries(entries []domain.ReferralReportEntry) *ReportResponse {
	result := make([]ReportEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = ReportEntryResponse{
			Code:            e.Code,
			StaffName:       e.StaffName,
			DiscountPercent: e.DiscountPercent,
			UsageCount:      e.UsageCount,
			TotalSales:      e.TotalSales,
			TotalCommission: e.TotalCommission,
		}
	}
	return &ReportResponse{Entries: result}
}
