package payment

import (
	"context"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// IntentCreator is the slice of the Stripe API this service uses.
type IntentCreator interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// Client creates payment intents against Stripe. Calls run under a per-call
// timeout and a circuit breaker; a failure propagates to the caller, there is
// no retry here.
type Client struct {
	intents IntentCreator
	cb      *gobreaker.CircuitBreaker
	timeout time.Duration
}

// NewClient builds a Client backed by the real Stripe API.
func NewClient(secretKey string) *Client {
	api := &client.API{}
	api.Init(secretKey, nil)
	return newClient(api.PaymentIntents)
}

func newClient(intents IntentCreator) *Client {
	log := logrus.WithField("component", "payment")
	st := gobreaker.Settings{
		Name:        "Stripe",
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warnf("circuit breaker %s state changed from %s to %s", name, from, to)
		},
	}

	return &Client{
		intents: intents,
		cb:      gobreaker.NewCircuitBreaker(st),
		timeout: 3 * time.Second,
	}
}

// CreateIntent creates a one-time payment intent for amountCents (usd) and
// returns its client secret. The cart id travels as intent metadata so
// payments can be traced back to carts.
func (c *Client) CreateIntent(ctx context.Context, amountCents, cartID int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
	}
	params.Context = ctx

	cartMeta := "unknown"
	if cartID > 0 {
		cartMeta = strconv.FormatInt(cartID, 10)
	}
	params.AddMetadata("cartId", cartMeta)

	res, err := c.cb.Execute(func() (any, error) {
		return c.intents.New(params)
	})
	if err != nil {
		return "", err
	}
	return res.(*stripe.PaymentIntent).ClientSecret, nil
}
