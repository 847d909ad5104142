package confirm_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/SyahmiDin/app-raya-studio/internal/domain"
	reservationRepo "github.com/SyahmiDin/app-raya-studio/internal/infra/storage/reservation"
	"github.com/SyahmiDin/app-raya-studio/internal/integrations/stripepay"
)

// UseCase use case для подтверждения оплаченной брони
type UseCase struct {
	reservationRepo ReservationRepository
	payment         PaymentClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	payment PaymentClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		payment:         payment,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case подтверждения оплаты.
// Переход held -> confirmed делается одним условным UPDATE, поэтому повторное
// подтверждение той же сессии идемпотентно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.SessionID == "" {
		return nil, fmt.Errorf("%w: sessionId is required", ErrInvalidInput)
	}

	uc.logger.Info("ConfirmBooking: session=%s", req.SessionID)

	// 1. Проверяем оплату на стороне Stripe, клиентскому флагу не доверяем
	info, err := uc.payment.GetPaymentInfo(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, stripepay.ErrSessionNotFound) {
			uc.logger.Warn("ConfirmBooking: session %s not found in Stripe", req.SessionID)
			return nil, ErrSessionNotFound
		}
		uc.logger.Error("ConfirmBooking: failed to get payment info for session %s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: failed to get payment info: %v", ErrInternal, err)
	}

	if !info.Paid {
		uc.logger.Warn("ConfirmBooking: session %s is not paid, reservation id=%s left untouched",
			req.SessionID, info.ReservationID)
		return nil, ErrPaymentNotVerified
	}

	now := uc.timeProvider.Now()

	// 2. Условный переход held -> confirmed
	err = uc.reservationRepo.Confirm(ctx, info.ReservationID, req.SessionID, now)
	if err == nil {
		uc.logger.Info("ConfirmBooking: confirmed reservation id=%s", info.ReservationID)
		return uc.buildResponse(ctx, info.ReservationID)
	}

	if !errors.Is(err, reservationRepo.ErrNotHeld) {
		uc.logger.Error("ConfirmBooking: failed to confirm reservation id=%s: %v", info.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to confirm reservation: %v", ErrInternal, err)
	}

	// 3. UPDATE не зацепил строку: либо повторное подтверждение, либо холд истек
	res, err := uc.reservationRepo.GetByID(ctx, info.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Error("ConfirmBooking: PAID session %s has no reservation id=%s, manual refund required",
				req.SessionID, info.ReservationID)
			return nil, ErrReservationExpired
		}
		uc.logger.Error("ConfirmBooking: failed to re-read reservation id=%s: %v", info.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to re-read reservation: %v", ErrInternal, err)
	}

	if res.IsConfirmed() && res.StripeSessionID != nil && *res.StripeSessionID == req.SessionID {
		uc.logger.Info("ConfirmBooking: reservation id=%s already confirmed by session %s, idempotent success",
			res.ID, req.SessionID)
		return toResponse(res), nil
	}

	// Слот перепродан после истечения холда, оплату возвращаем вручную
	uc.logger.Error("ConfirmBooking: PAID session %s cannot be applied, reservation id=%s is %s/%s, manual refund required",
		req.SessionID, res.ID, res.Kind, res.Status)
	return nil, ErrReservationExpired
}

func (uc *UseCase) buildResponse(ctx context.Context, id string) (*Response, error) {
	res, err := uc.reservationRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Error("ConfirmBooking: failed to read confirmed reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to read reservation: %v", ErrInternal, err)
	}
	return toResponse(res), nil
}

func toResponse(res *domain.Reservation) *Response {
	return &Response{
		ReservationID: res.ID,
		Status:        string(res.Status),
		BookingDate:   res.BookingDate,
		StartTime:     res.StartTime,
		ServiceID:     res.ServiceID,
		FinalPrice:    res.FinalPrice,
		ConfirmedAt:   res.ConfirmedAt,
	}
}
