package models

import (
	"github.com/SyahmiDin/app-raya-studio/internal/domain"
)

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainService конвертирует domain услугу в response
func FromDomainService(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
	}
}

// FromDomainServiceList конвертирует список domain услуг в response
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	result := make([]ServiceResponse, len(services))
	for i, s := range services {
		result[i] = *FromDomainService(s)
	}
	return &ServiceListResponse{Services: result}
}
