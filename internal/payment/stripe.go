package payment

import (
	"context"
	"errors"
	"log"

	"fittrack/fitness-tracker/internal/config"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// stripeGateway implements the Gateway interface using the Stripe SDK.
type stripeGateway struct {
	api *client.API
}

// NewStripeGateway creates a Stripe-backed payment gateway.
func NewStripeGateway(cfg config.StripeConfig) (Gateway, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("stripe secret key is required")
	}

	api := &client.API{}
	api.Init(cfg.SecretKey, nil)

	return &stripeGateway{api: api}, nil
}

// CreateIntent creates a card PaymentIntent and returns its client secret.
func (g *stripeGateway) CreateIntent(ctx context.Context, amountMinor int64, currency string) (*Intent, error) {
	if amountMinor <= 0 {
		return nil, errors.New("amount must be positive")
	}

	params := &stripe.PaymentIntentParams{
		Params:             stripe.Params{Context: ctx},
		Amount:             stripe.Int64(amountMinor),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		log.Printf("ERROR: Stripe payment intent creation failed: %v", err)
		return nil, err
	}

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
	}, nil
}
