package payment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Gateway is an external payment provider.
type Gateway interface {
	InitializePayment(ctx context.Context, email string, amount decimal.Decimal, callbackURL string) (*InitializeResponse, error)
	VerifyPayment(ctx context.Context, reference string) (*VerifyResponse, error)
	VerifyWebhookSignature(body []byte, signature string) bool
}

type InitializeResponse struct {
	Status  bool           `json:"status"`
	Message string         `json:"message"`
	Data    InitializeData `json:"data"`
}

type InitializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type VerifyResponse struct {
	Status  bool       `json:"status"`
	Message string     `json:"message"`
	Data    VerifyData `json:"data"`
}

type VerifyData struct {
	ID              int64  `json:"id"`
	Status          string `json:"status"`
	Reference       string `json:"reference"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	GatewayResponse string `json:"gateway_response"`
	Channel         string `json:"channel"`
	PaidAt          string `json:"paid_at"`
}

// GatewayError is a transport failure or unsuccessful response from the provider.
type GatewayError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *GatewayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gateway %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// ToMinorUnits converts an amount to the provider's integer subunit, truncating fractions.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).IntPart()
}
