package payment

import "context"

// Verifier checks that an external payment reference is settled for the
// expected amount before a subscription is activated from it.
type Verifier interface {
	Verify(ctx context.Context, ref string, amount float64, currency string) error
}
