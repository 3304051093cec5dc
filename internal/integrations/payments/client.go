package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
)

const statusSucceeded = string(stripe.PaymentIntentStatusSucceeded)

// intentGetter подмножество paymentintent.Client
type intentGetter interface {
	Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// Client проверяет статус оплаты в stripe
// Создание и подтверждение intent выполняет фронтенд, сервис только читает статус
type Client struct {
	intents intentGetter
	log     Logger
}

// NewClient создает клиента stripe с секретным ключом
func NewClient(secretKey string, log Logger) *Client {
	return &Client{
		intents: &paymentintent.Client{B: stripe.GetBackend(stripe.APIBackend), Key: secretKey},
		log:     log,
	}
}

// GetPayment получает состояние payment intent по ID
func (c *Client) GetPayment(ctx context.Context, intentID string) (*Payment, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	intent, err := c.intents.Get(intentID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Code == stripe.ErrorCodeResourceMissing {
			c.log.Warn("Payments: intent %s not found", intentID)
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("%w: get payment intent %s: %v", ErrProvider, intentID, err)
	}

	return &Payment{
		IntentID: intent.ID,
		Status:   string(intent.Status),
		Amount:   intent.Amount,
		Currency: string(intent.Currency),
	}, nil
}
