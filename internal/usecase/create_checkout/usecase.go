package create_checkout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SyahmiDin/app-raya-studio/internal/domain"
	catalogRepo "github.com/SyahmiDin/app-raya-studio/internal/infra/storage/catalog"
	referralRepo "github.com/SyahmiDin/app-raya-studio/internal/infra/storage/referral"
	reservationRepo "github.com/SyahmiDin/app-raya-studio/internal/infra/storage/reservation"
	"github.com/SyahmiDin/app-raya-studio/internal/integrations/stripepay"
	"github.com/SyahmiDin/app-raya-studio/pkg/ptr"
)

// UseCase use case для удержания слота и создания платёжной сессии
type UseCase struct {
	reservationRepo ReservationRepository
	catalogRepo     CatalogRepository
	referralRepo    ReferralRepository
	payment         PaymentClient
	txManager       TransactionManager
	windows         []domain.SessionWindow
	bufferMinutes   int
	holdTTL         time.Duration
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	catalogRepo CatalogRepository,
	referralRepo ReferralRepository,
	payment PaymentClient,
	txManager TransactionManager,
	windows []domain.SessionWindow,
	bufferMinutes int,
	holdTTL time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		catalogRepo:     catalogRepo,
		referralRepo:    referralRepo,
		payment:         payment,
		txManager:       txManager,
		windows:         windows,
		bufferMinutes:   bufferMinutes,
		holdTTL:         holdTTL,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания брони.
// Слот удерживается в сериализуемой транзакции, затем создается платёжная
// сессия Stripe; до подтверждения оплаты бронь остается в статусе held
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateCheckout: service=%s, date=%s, time=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateCheckout: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateCheckout: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем услугу
	service, err := uc.catalogRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateCheckout: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateCheckout: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Проверяем, что время лежит на сетке слотов услуги
	if err := validateSlotOnGrid(uc.windows, service.DurationMinutes, uc.bufferMinutes, req.StartTime); err != nil {
		uc.logger.Warn("CreateCheckout: time %s is not on the grid for service id=%s", req.StartTime, req.ServiceID)
		return nil, err
	}

	// 5. Применяем промокод, если передан. Коды хранятся в верхнем
	// регистре, клиентский ввод приводим к нему перед поиском
	basePrice := service.Price
	finalPrice := basePrice

	var referralCode *string
	if req.ReferralCode != nil && strings.TrimSpace(*req.ReferralCode) != "" {
		normalized := strings.ToUpper(strings.TrimSpace(*req.ReferralCode))

		code, err := uc.referralRepo.GetByCode(ctx, normalized)
		if err != nil {
			if errors.Is(err, referralRepo.ErrCodeNotFound) {
				uc.logger.Warn("CreateCheckout: referral code %s not found", normalized)
				return nil, ErrReferralNotFound
			}
			uc.logger.Error("CreateCheckout: failed to get referral code %s: %v", normalized, err)
			return nil, fmt.Errorf("%w: failed to get referral code: %v", ErrInternal, err)
		}
		finalPrice = code.Apply(basePrice)
		referralCode = &normalized
	}

	var created *domain.Reservation

	// 6. Удерживаем слот в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Перепроверяем доступность по подтвержденным броням даты (FOR UPDATE)
		confirmed, err := uc.reservationRepo.GetWithFilter(txCtx, domain.ReservationsFilter{
			Date:   ptr.Ptr(req.Date),
			Status: ptr.Ptr(domain.StatusConfirmed),
		})
		if err != nil {
			uc.logger.Error("CreateCheckout: failed to get confirmed reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		candidate := domain.NewOccupiedInterval(req.StartTime, service.DurationMinutes, uc.bufferMinutes)
		for _, r := range confirmed {
			occupied := domain.NewOccupiedInterval(r.StartTime, r.DurationMinutes, uc.bufferMinutes)
			if candidate.Overlaps(occupied) {
				uc.logger.Warn("CreateCheckout: slot %s overlaps confirmed reservation id=%s", req.StartTime, r.ID)
				return ErrSlotAlreadyConfirmed
			}
		}

		// 6.2. Точное совпадение по (дата, время): живой холд или просроченный
		existing, err := uc.reservationRepo.GetBySlot(txCtx, req.Date, req.StartTime)
		if err != nil && !errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Error("CreateCheckout: failed to get slot reservation: %v", err)
			return fmt.Errorf("%w: failed to get slot reservation: %v", ErrInternal, err)
		}

		if existing != nil {
			switch {
			case existing.IsConfirmed():
				return ErrSlotAlreadyConfirmed
			case existing.HoldExpiredAt(now, uc.holdTTL):
				// Просроченный холд вытесняется лениво, прямо при следующей попытке занять слот
				uc.logger.Info("CreateCheckout: evicting expired hold id=%s", existing.ID)
				if err := uc.reservationRepo.Delete(txCtx, existing.ID); err != nil {
					uc.logger.Error("CreateCheckout: failed to evict expired hold id=%s: %v", existing.ID, err)
					return fmt.Errorf("%w: failed to evict expired hold: %v", ErrInternal, err)
				}
			default:
				uc.logger.Warn("CreateCheckout: slot %s is held by reservation id=%s", req.StartTime, existing.ID)
				return ErrSlotHeldByOther
			}
		}

		// 6.3. Создаем удержание
		res := &domain.Reservation{
			ID:              uuid.NewString(),
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			ServiceID:       service.ID,
			DurationMinutes: service.DurationMinutes,
			Kind:            domain.KindCustomer,
			Status:          domain.StatusHeld,
			ClientName:      ptr.Ptr(req.ClientName),
			ClientEmail:     ptr.Ptr(req.ClientEmail),
			ClientPhone:     ptr.Ptr(req.ClientPhone),
			ReferralCode:    referralCode,
			BasePrice:       basePrice,
			FinalPrice:      ptr.Ptr(finalPrice),
		}

		created, err = uc.reservationRepo.Create(txCtx, res)
		if err != nil {
			// Уникальный индекс (booking_date, start_time) закрывает гонку:
			// проигравший параллельный запрос получает duplicate key
			if errors.Is(err, reservationRepo.ErrDuplicateSlot) {
				uc.logger.Warn("CreateCheckout: lost slot race for %s %s", req.Date.Format(domain.DateFormat), req.StartTime)
				return ErrRaceLost
			}
			uc.logger.Error("CreateCheckout: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateCheckout: held reservation id=%s for %s %s",
		created.ID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 7. Создаем платёжную сессию; при сбое шлюза снимаем удержание
	session, err := uc.payment.CreateCheckoutSession(ctx, stripepay.CheckoutRequest{
		ReservationID: created.ID,
		ServiceName:   service.Name,
		AmountCents:   int64(math.Round(finalPrice * 100)),
		ClientEmail:   req.ClientEmail,
	})
	if err != nil {
		uc.logger.Error("CreateCheckout: payment gateway failed for reservation id=%s: %v", created.ID, err)
		if delErr := uc.reservationRepo.DeleteHeld(ctx, created.ID); delErr != nil {
			uc.logger.Error("CreateCheckout: failed to release hold id=%s: %v", created.ID, delErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrPaymentGateway, err)
	}

	// 8. Сохраняем платёжный референс для корреляции подтверждения
	if err := uc.reservationRepo.SetPaymentRef(ctx, created.ID, session.ID); err != nil {
		// Подтверждение найдет бронь по reservation_id из metadata сессии,
		// поэтому сбой записи референса не ломает оплату
		uc.logger.Error("CreateCheckout: failed to store payment ref for id=%s: %v", created.ID, err)
	}

	return &Response{
		ReservationID: created.ID,
		SessionID:     session.ID,
		CheckoutURL:   session.URL,
		BasePrice:     basePrice,
		FinalPrice:    finalPrice,
		HoldExpiresAt: created.CreatedAt.Add(uc.holdTTL),
	}, nil
}
