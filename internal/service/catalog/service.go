package catalog

import (
	"context"
	"fmt"

	"github.com/SyahmiDin/app-raya-studio/internal/service/catalog/models"
)

// Service сервис каталога услуг. Витрине нужен только список:
// точечные чтения услуг идут в usecase напрямую через репозиторий
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// List возвращает все услуги каталога в порядке отображения
func (s *Service) List(ctx context.Context) (*models.ServiceListResponse, error) {
	services, err := s.catalogRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d services", len(services))
	return models.FromDomainServiceList(services), nil
}
