package stripepay

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	stripeclient "github.com/stripe/stripe-go/v76/client"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Client клиент для работы со Stripe Checkout
type Client struct {
	api        *stripeclient.API
	currency   string
	successURL string
	cancelURL  string
	log        Logger
}

// NewClient создает новый экземпляр клиента Stripe
func NewClient(secretKey, currency, successURL, cancelURL string, log Logger) *Client {
	api := &stripeclient.API{}
	api.Init(secretKey, nil)

	return &Client{
		api:        api,
		currency:   currency,
		successURL: successURL,
		cancelURL:  cancelURL,
		log:        log,
	}
}

// CreateCheckoutSession создает платёжную сессию Stripe Checkout.
// Идентификатор брони кладётся в metadata, чтобы подтверждение могло
// сверить оплату с конкретной бронью на стороне сервера.
func (c *Client) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card", "fpx"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(c.currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ServiceName),
					},
					UnitAmount: stripe.Int64(req.AmountCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(c.successURL),
		CancelURL:  stripe.String(c.cancelURL),
	}
	params.Context = ctx
	params.AddMetadata("reservation_id", req.ReservationID)

	if req.ClientEmail != "" {
		params.CustomerEmail = stripe.String(req.ClientEmail)
	}

	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		c.log.Error("Failed to create checkout session for reservation_id=%s: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to create checkout session: %v", ErrInternal, err)
	}

	c.log.Info("Created checkout session %s for reservation_id=%s", sess.ID, req.ReservationID)

	return &CheckoutSession{
		ID:  sess.ID,
		URL: sess.URL,
	}, nil
}

// GetPaymentInfo получает статус оплаты сессии напрямую из Stripe.
// Статусу, переданному клиентом, доверять нельзя.
func (c *Client) GetPaymentInfo(ctx context.Context, sessionID string) (*PaymentInfo, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := c.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Code == stripe.ErrorCodeResourceMissing {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: failed to retrieve checkout session %s: %v", ErrInternal, sessionID, err)
	}

	reservationID, ok := sess.Metadata["reservation_id"]
	if !ok || reservationID == "" {
		return nil, fmt.Errorf("%w: session %s has no reservation_id metadata", ErrInvalidResponse, sessionID)
	}

	return &PaymentInfo{
		SessionID:     sess.ID,
		Paid:          sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		ReservationID: reservationID,
	}, nil
}
