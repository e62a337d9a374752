package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
)

type fakeIntents struct {
	calls  int
	params []*stripe.PaymentIntentParams
	err    error
}

func (f *fakeIntents) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	f.calls++
	f.params = append(f.params, params)
	if f.err != nil {
		return nil, f.err
	}
	return &stripe.PaymentIntent{ClientSecret: "pi_secret_123"}, nil
}

func TestClient_CreateIntent_Success(t *testing.T) {
	intents := &fakeIntents{}
	c := newClient(intents)

	secret, err := c.CreateIntent(context.Background(), 1999, 42)

	require.NoError(t, err)
	assert.Equal(t, "pi_secret_123", secret)

	require.Len(t, intents.params, 1)
	params := intents.params[0]
	assert.Equal(t, int64(1999), *params.Amount)
	assert.Equal(t, string(stripe.CurrencyUSD), *params.Currency)
	assert.Equal(t, "42", params.Metadata["cartId"])
}

func TestClient_CreateIntent_UnknownCartMetadata(t *testing.T) {
	intents := &fakeIntents{}
	c := newClient(intents)

	_, err := c.CreateIntent(context.Background(), 500, 0)

	require.NoError(t, err)
	assert.Equal(t, "unknown", intents.params[0].Metadata["cartId"])
}

func TestClient_CreateIntent_ErrorPropagates(t *testing.T) {
	intents := &fakeIntents{err: errors.New("stripe unavailable")}
	c := newClient(intents)

	secret, err := c.CreateIntent(context.Background(), 1999, 42)

	assert.Error(t, err)
	assert.Empty(t, secret)
}

func TestClient_CreateIntent_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	intents := &fakeIntents{err: errors.New("stripe unavailable")}
	c := newClient(intents)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := c.CreateIntent(ctx, 1000, 1)
		require.Error(t, err)
	}
	callsBefore := intents.calls

	_, err := c.CreateIntent(ctx, 1000, 1)

	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, callsBefore, intents.calls, "open breaker short-circuits the call")
}
