package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	reservationRepo "github.com/SyahmiDin/app-raya-studio/internal/infra/storage/reservation"
	"github.com/SyahmiDin/app-raya-studio/internal/service/reservations/models"
)

// Service сервис для административной работы с бронями
type Service struct {
	reservationRepo ReservationRepository
	holdTTL         time.Duration
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса броней
func NewService(reservationRepo ReservationRepository, holdTTL time.Duration, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		holdTTL:         holdTTL,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// List возвращает брони по фильтру (дата, статус, тип)
func (s *Service) List(ctx context.Context, req *models.GetReservationsRequest) (*models.ReservationListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	reservations, err := s.reservationRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d reservations", len(reservations))
	return models.FromDomainReservationList(reservations), nil
}

// Delete удаляет бронь по ID. Админская операция: слот снова становится
// доступным, оплату (если была) студия возвращает вне системы
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}

	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Delete: reservation id=%s not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Delete: repository error for id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: removed reservation id=%s", id)
	return nil
}

// Unblock снимает админ-блок по ID. Клиентские брони этим путем
// удалить нельзя: для них есть Delete с явной семантикой отмены
func (s *Service) Unblock(ctx context.Context, blockID string) error {
	if blockID == "" {
		return fmt.Errorf("%w: blockId is required", ErrInvalidInput)
	}

	res, err := s.reservationRepo.GetByID(ctx, blockID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Unblock: block id=%s not found", blockID)
			return ErrReservationNotFound
		}
		s.logger.Error("Unblock: repository error for id=%s: %v", blockID, err)
		return fmt.Errorf("%w: Unblock - repository error: %v", ErrInternal, err)
	}

	if !res.IsAdminBlock() {
		s.logger.Warn("Unblock: reservation id=%s is kind=%s, refusing", blockID, res.Kind)
		return ErrNotABlock
	}

	if err := s.reservationRepo.Delete(ctx, blockID); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("Unblock: failed to delete block id=%s: %v", blockID, err)
		return fmt.Errorf("%w: Unblock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Unblock: removed block id=%s", blockID)
	return nil
}

// SweepExpiredHolds удаляет просроченные холды. Вызывается фоновой
// горутиной; ленивое вытеснение при checkout работает независимо от него
func (s *Service) SweepExpiredHolds(ctx context.Context) (int64, error) {
	cutoff := s.timeProvider.Now().Add(-s.holdTTL)

	removed, err := s.reservationRepo.DeleteExpiredHolds(ctx, cutoff)
	if err != nil {
		s.logger.Error("SweepExpiredHolds: repository error: %v", err)
		return 0, fmt.Errorf("%w: SweepExpiredHolds - repository error: %v", ErrInternal, err)
	}

	if removed > 0 {
		s.logger.Info("SweepExpiredHolds: removed %d expired holds", removed)
	}
	return removed, nil
}
