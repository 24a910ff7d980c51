package payment

import "context"

// Intent is the gateway-side representation of an authorized but
// not-yet-captured charge.
type Intent struct {
	ID           string
	ClientSecret string
}

// Gateway abstracts the external payment provider. The booking service only
// ever creates an intent; capture and confirmation happen client-side
// against the provider.
type Gateway interface {
	// CreateIntent creates a charge intent for the given amount in minor
	// units (cents) and returns the client secret the frontend uses to
	// complete the payment.
	CreateIntent(ctx context.Context, amountMinor int64, currency string) (*Intent, error)
}
