package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/SyahmiDin/app-raya-studio/internal/domain"
	catalogRepo "github.com/SyahmiDin/app-raya-studio/internal/infra/storage/catalog"
	"github.com/SyahmiDin/app-raya-studio/pkg/ptr"
)

// UseCase use case для получения сетки слотов на день
type UseCase struct {
	catalogRepo     CatalogRepository
	reservationRepo ReservationRepository
	windows         []domain.SessionWindow
	bufferMinutes   int
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	reservationRepo ReservationRepository,
	windows []domain.SessionWindow,
	bufferMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:     catalogRepo,
		reservationRepo: reservationRepo,
		windows:         windows,
		bufferMinutes:   bufferMinutes,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения сетки слотов.
// Сетка всегда считается заново по подтвержденным броням даты, без кэша.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: service=%s, date=%s", req.ServiceID, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailability: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	service, err := uc.catalogRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailability: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailability: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	slots, err := generateTimeSlots(uc.windows, service.DurationMinutes, uc.bufferMinutes)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	// Доступность определяют только подтвержденные брони: активные холды
	// закрываются на этапе checkout, а не на витрине
	filter := domain.ReservationsFilter{
		Date:   ptr.Ptr(req.Date),
		Status: ptr.Ptr(domain.StatusConfirmed),
	}

	reservations, err := uc.reservationRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	marked := markAvailability(slots, uc.bufferMinutes, reservations)

	uc.logger.Info("GetAvailability: generated %d slots for service=%s, date=%s",
		len(marked), req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		DurationMinutes: service.DurationMinutes,
		Slots:           marked,
	}, nil
}
