package payment

import (
	"context"
	"strconv"
	"strings"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"

	"github.com/booklyhq/bookly-api/internal/httperr"
)

const statusApproved = "approved"

type MercadoPagoVerifier struct {
	client mppayment.Client
}

func NewMercadoPagoVerifier(accessToken string) (*MercadoPagoVerifier, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}
	return &MercadoPagoVerifier{client: mppayment.NewClient(cfg)}, nil
}

func (v *MercadoPagoVerifier) Verify(
	ctx context.Context,
	ref string,
	amount float64,
	currency string,
) error {

	id, err := strconv.Atoi(strings.TrimSpace(ref))
	if err != nil || id <= 0 {
		return httperr.ErrBusiness("invalid_payment_reference")
	}

	resp, err := v.client.Get(ctx, id)
	if err != nil {
		return err
	}

	if resp.Status != statusApproved {
		return httperr.ErrBusiness("payment_not_approved")
	}
	if resp.TransactionAmount < amount {
		return httperr.ErrBusiness("payment_amount_mismatch")
	}
	if currency != "" && !strings.EqualFold(resp.CurrencyID, currency) {
		return httperr.ErrBusiness("payment_currency_mismatch")
	}

	return nil
}

var _ Verifier = (*MercadoPagoVerifier)(nil)
