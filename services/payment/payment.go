package payment

import (
	"context"
	"fmt"
	"sync"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
	"go.uber.org/zap"

	"github.com/mbendary2019/Shoporia-sub001/models"
)

// StripePaymentHandler is the payment collaborator. Card payments go through
// Stripe PaymentIntents; cash and wallet bookings are recorded as pending and
// settled at completion time.
type StripePaymentHandler struct {
	logger *zap.Logger

	mu      sync.Mutex
	intents map[string]string // bookingID -> payment intent ID
}

// NewStripePaymentHandler builds the handler. The Stripe API key is expected
// to be set globally (stripe.Key) at startup.
func NewStripePaymentHandler(logger *zap.Logger) *StripePaymentHandler {
	return &StripePaymentHandler{
		logger:  logger,
		intents: make(map[string]string),
	}
}

// Register records the payment intent for a new booking and returns the
// initial payment status.
func (h *StripePaymentHandler) Register(ctx context.Context, req models.PaymentRequest) (models.PaymentStatus, error) {
	switch req.Method {
	case "card":
		return h.registerCard(ctx, req)
	case "cash", "wallet":
		h.logger.Info("deferred payment recorded",
			zap.String("bookingId", req.BookingID),
			zap.String("method", req.Method))
		return models.PaymentPending, nil
	default:
		return "", fmt.Errorf("unsupported payment method: %s", req.Method)
	}
}

func (h *StripePaymentHandler) registerCard(ctx context.Context, req models.PaymentRequest) (models.PaymentStatus, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(req.Amount * 100)),
		Currency: stripe.String(req.Currency),
		Metadata: map[string]string{
			"bookingId":  req.BookingID,
			"customerId": req.CustomerID,
		},
	}
	if req.Token != "" {
		params.PaymentMethod = stripe.String(req.Token)
		params.Confirm = stripe.Bool(true)
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe payment intent failed: %w", err)
	}

	h.mu.Lock()
	h.intents[req.BookingID] = intent.ID
	h.mu.Unlock()

	status := models.PaymentPending
	if intent.Status == stripe.PaymentIntentStatusSucceeded {
		status = models.PaymentPaid
	}
	h.logger.Info("card payment registered",
		zap.String("bookingId", req.BookingID),
		zap.String("intentId", intent.ID),
		zap.String("status", string(intent.Status)))
	return status, nil
}

// Capture settles a pending cash or wallet payment when the store marks the
// service delivered.
func (h *StripePaymentHandler) Capture(ctx context.Context, bookingID string) (models.PaymentStatus, error) {
	h.logger.Info("deferred payment settled", zap.String("bookingId", bookingID))
	return models.PaymentPaid, nil
}

// MarkRefundEligible opens a refund for a captured card payment after the
// booking is cancelled.
func (h *StripePaymentHandler) MarkRefundEligible(ctx context.Context, bookingID string) error {
	h.mu.Lock()
	intentID, ok := h.intents[bookingID]
	h.mu.Unlock()
	if !ok {
		// Nothing was captured through us; cash bookings have no refund path.
		return nil
	}

	params := &stripe.RefundParams{PaymentIntent: stripe.String(intentID)}
	params.Context = ctx
	if _, err := refund.New(params); err != nil {
		return fmt.Errorf("stripe refund failed: %w", err)
	}

	h.logger.Info("refund opened",
		zap.String("bookingId", bookingID),
		zap.String("intentId", intentID))
	return nil
}
