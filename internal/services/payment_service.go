// internal/services/payment_service.go
package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"gorm.io/gorm"

	"github.com/georgeY2002/E-Commerce/internal/models"
)

// PaymentService creates Stripe payment intents for card orders and records
// their outcome. Cash-on-delivery orders never touch Stripe; their payment
// status is settled manually through the admin status update.
type PaymentService struct {
	db             *gorm.DB
	publishableKey string
}

func NewPaymentService(db *gorm.DB, secretKey, publishableKey string) *PaymentService {
	stripe.Key = secretKey
	return &PaymentService{db: db, publishableKey: publishableKey}
}

type PaymentIntentResponse struct {
	ClientSecret   string `json:"clientSecret"`
	PublishableKey string `json:"publishableKey"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
}

// CreateIntent creates a Stripe PaymentIntent for a pending visa order.
// The amount is the order total in cents.
func (s *PaymentService) CreateIntent(orderID uuid.UUID) (*PaymentIntentResponse, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if order.PaymentMethod != models.PaymentMethodVisa {
		return nil, fmt.Errorf("%w: order is not a card payment", ErrValidation)
	}
	if order.PaymentStatus != models.PaymentStatusPending {
		return nil, fmt.Errorf("%w: order payment is already %s", ErrValidation, order.PaymentStatus)
	}

	amountCents := int64(math.Round(order.TotalAmount * 100))

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("order_id", order.ID.String())

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"order_id":  order.ID,
		"intent_id": intent.ID,
		"amount":    amountCents,
	}).Info("Payment intent created")

	return &PaymentIntentResponse{
		ClientSecret:   intent.ClientSecret,
		PublishableKey: s.publishableKey,
		Amount:         amountCents,
		Currency:       string(intent.Currency),
	}, nil
}

// ConfirmPayment marks an order paid after the client reports a successful
// charge, verifying the intent state with Stripe first.
func (s *PaymentService) ConfirmPayment(orderID uuid.UUID, intentID string) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	intent, err := paymentintent.Get(intentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment intent: %w", err)
	}
	if intent.Metadata["order_id"] != order.ID.String() {
		return nil, fmt.Errorf("%w: payment intent does not belong to this order", ErrValidation)
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, fmt.Errorf("%w: payment intent is %s", ErrValidation, intent.Status)
	}

	if err := s.db.Model(&order).
		Update("payment_status", models.PaymentStatusCompleted).Error; err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	order.PaymentStatus = models.PaymentStatusCompleted

	logrus.WithFields(logrus.Fields{
		"order_id":  order.ID,
		"intent_id": intentID,
	}).Info("Payment confirmed")

	return &order, nil
}
