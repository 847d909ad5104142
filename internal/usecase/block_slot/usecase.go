package block_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SyahmiDin/app-raya-studio/internal/domain"
	reservationRepo "github.com/SyahmiDin/app-raya-studio/internal/infra/storage/reservation"
	"github.com/SyahmiDin/app-raya-studio/pkg/ptr"
)

// UseCase use case для блокировки интервала администратором
type UseCase struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	bufferMinutes   int
	holdTTL         time.Duration
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	bufferMinutes int,
	holdTTL time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		bufferMinutes:   bufferMinutes,
		holdTTL:         holdTTL,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case блокировки интервала.
// Блокировка хранится как обычная confirmed-бронь с kind=admin_block,
// поэтому витрина доступности учитывает ее без отдельной логики
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BlockSlot: date=%s, time=%s, duration=%d",
		req.Date.Format(domain.DateFormat), req.StartTime, req.DurationMinutes)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BlockSlot: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var created *domain.Reservation

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Подтвержденные брони даты под блокировкой строк
		confirmed, err := uc.reservationRepo.GetWithFilter(txCtx, domain.ReservationsFilter{
			Date:   ptr.Ptr(req.Date),
			Status: ptr.Ptr(domain.StatusConfirmed),
		})
		if err != nil {
			uc.logger.Error("BlockSlot: failed to get confirmed reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		candidate := domain.NewOccupiedInterval(req.StartTime, req.DurationMinutes, uc.bufferMinutes)
		for _, r := range confirmed {
			occupied := domain.NewOccupiedInterval(r.StartTime, r.DurationMinutes, uc.bufferMinutes)
			if candidate.Overlaps(occupied) {
				uc.logger.Warn("BlockSlot: interval at %s overlaps confirmed reservation id=%s", req.StartTime, r.ID)
				return ErrSlotAlreadyConfirmed
			}
		}

		existing, err := uc.reservationRepo.GetBySlot(txCtx, req.Date, req.StartTime)
		if err != nil && !errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Error("BlockSlot: failed to get slot reservation: %v", err)
			return fmt.Errorf("%w: failed to get slot reservation: %v", ErrInternal, err)
		}

		if existing != nil {
			switch {
			case existing.IsConfirmed():
				return ErrSlotAlreadyConfirmed
			case existing.HoldExpiredAt(now, uc.holdTTL):
				uc.logger.Info("BlockSlot: evicting expired hold id=%s", existing.ID)
				if err := uc.reservationRepo.Delete(txCtx, existing.ID); err != nil {
					uc.logger.Error("BlockSlot: failed to evict expired hold id=%s: %v", existing.ID, err)
					return fmt.Errorf("%w: failed to evict expired hold: %v", ErrInternal, err)
				}
			default:
				uc.logger.Warn("BlockSlot: slot %s is held by reservation id=%s", req.StartTime, existing.ID)
				return ErrSlotHeldByOther
			}
		}

		block := &domain.Reservation{
			ID:              uuid.NewString(),
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: req.DurationMinutes,
			Kind:            domain.KindAdminBlock,
			Status:          domain.StatusConfirmed,
			ConfirmedAt:     ptr.Ptr(now),
		}

		created, err = uc.reservationRepo.Create(txCtx, block)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrDuplicateSlot) {
				uc.logger.Warn("BlockSlot: lost slot race for %s %s", req.Date.Format(domain.DateFormat), req.StartTime)
				return ErrRaceLost
			}
			uc.logger.Error("BlockSlot: failed to create block: %v", err)
			return fmt.Errorf("%w: failed to create block: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("BlockSlot: created block id=%s for %s %s",
		created.ID, req.Date.Format(domain.DateFormat), req.StartTime)

	return &Response{
		BlockID:         created.ID,
		Date:            created.BookingDate,
		StartTime:       created.StartTime,
		DurationMinutes: created.DurationMinutes,
		CreatedAt:       created.CreatedAt,
	}, nil
}
