package domain

import "time"

// ReferralCode промокод сотрудника: дает клиенту скидку и начисляет
// сотруднику комиссию с оплаченных броней
type ReferralCode struct {
	Code            string
	StaffName       string
	DiscountPercent float64
	CreatedAt       time.Time
}

// Apply возвращает цену со скидкой
func (c *ReferralCode) Apply(price float64) float64 {
	return price * (1 - c.DiscountPercent/100)
}

// Commission возвращает комиссию сотрудника с суммы продаж
func (c *ReferralCode) Commission(totalSales float64) float64 {
	return totalSales * c.DiscountPercent / 100
}

// ReferralReportEntry строка отчета по промокоду
type ReferralReportEntry struct {
	Code            string
	StaffName       string
	DiscountPercent float64
	UsageCount      int
	TotalSales      float64
	TotalCommission float64
}
