package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/stripe/stripe-go/v79"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIntents struct {
	intent *stripe.PaymentIntent
	err    error
}

func (f *fakeIntents) Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.intent, nil
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

func TestClient_GetPayment(t *testing.T) {
	c := &Client{
		intents: &fakeIntents{intent: &stripe.PaymentIntent{
			ID:       "pi_1",
			Status:   stripe.PaymentIntentStatusSucceeded,
			Amount:   15000,
			Currency: stripe.CurrencyUSD,
		}},
		log: nopLogger{},
	}

	p, err := c.GetPayment(context.Background(), "pi_1")
	require.NoError(t, err)
	assert.True(t, p.IsPaid())
	assert.Equal(t, int64(15000), p.Amount)
}

func TestClient_GetPayment_NotPaid(t *testing.T) {
	c := &Client{
		intents: &fakeIntents{intent: &stripe.PaymentIntent{ID: "pi_2", Status: stripe.PaymentIntentStatusRequiresPaymentMethod}},
		log:     nopLogger{},
	}

	p, err := c.GetPayment(context.Background(), "pi_2")
	require.NoError(t, err)
	assert.False(t, p.IsPaid())
}

func TestClient_GetPayment_Errors(t *testing.T) {
	missing := &Client{
		intents: &fakeIntents{err: &stripe.Error{Code: stripe.ErrorCodeResourceMissing}},
		log:     nopLogger{},
	}
	_, err := missing.GetPayment(context.Background(), "pi_x")
	assert.ErrorIs(t, err, ErrPaymentNotFound)

	broken := &Client{intents: &fakeIntents{err: errors.New("timeout")}, log: nopLogger{}}
	_, err = broken.GetPayment(context.Background(), "pi_x")
	assert.ErrorIs(t, err, ErrProvider)
}
