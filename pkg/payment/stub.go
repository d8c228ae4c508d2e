package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const stubPrefix = "stub_"

// StubProvider is a development gateway that never leaves the process.
// Every reference it issues verifies as successful; webhooks are always rejected.
type StubProvider struct{}

func (s *StubProvider) InitializePayment(ctx context.Context, email string, amount decimal.Decimal, callbackURL string) (*InitializeResponse, error) {
	ref := fmt.Sprintf("%s%d", stubPrefix, time.Now().UnixNano())
	return &InitializeResponse{
		Status:  true,
		Message: "Authorization URL created",
		Data: InitializeData{
			AuthorizationURL: callbackURL,
			AccessCode:       ref,
			Reference:        ref,
		},
	}, nil
}

func (s *StubProvider) VerifyPayment(ctx context.Context, reference string) (*VerifyResponse, error) {
	status := "failed"
	if strings.HasPrefix(reference, stubPrefix) {
		status = "success"
	}
	return &VerifyResponse{
		Status:  true,
		Message: "Verification successful",
		Data:    VerifyData{Status: status, Reference: reference, Currency: "NGN"},
	}, nil
}

func (s *StubProvider) VerifyWebhookSignature(body []byte, signature string) bool {
	return false
}
