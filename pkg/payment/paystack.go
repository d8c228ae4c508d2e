package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultPaystackBaseURL = "https://api.paystack.co"

// PaystackProvider talks to the Paystack transaction API.
type PaystackProvider struct {
	BaseURL   string
	secretKey string
	client    *http.Client
	logger    *zap.Logger
}

func NewPaystackProvider(baseURL, secretKey string, timeout time.Duration, logger *zap.Logger) *PaystackProvider {
	if baseURL == "" {
		baseURL = defaultPaystackBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &PaystackProvider{
		BaseURL:   baseURL,
		secretKey: secretKey,
		client:    &http.Client{Timeout: timeout},
		logger:    logger,
	}
}

type initializeReq struct {
	Email       string `json:"email"`
	Amount      int64  `json:"amount"`
	CallbackURL string `json:"callback_url,omitempty"`
}

func (p *PaystackProvider) InitializePayment(ctx context.Context, email string, amount decimal.Decimal, callbackURL string) (*InitializeResponse, error) {
	body, err := json.Marshal(initializeReq{
		Email:       email,
		Amount:      ToMinorUnits(amount),
		CallbackURL: callbackURL,
	})
	if err != nil {
		return nil, &GatewayError{Op: "initialize", Err: err}
	}
	var out InitializeResponse
	if err := p.do(ctx, "initialize", http.MethodPost, "/transaction/initialize", body, &out); err != nil {
		return nil, err
	}
	if !out.Status {
		return nil, p.fail("initialize", 0, fmt.Errorf("rejected: %s", out.Message))
	}
	p.logger.Info("paystack transaction initialized", zap.String("reference", out.Data.Reference))
	return &out, nil
}

func (p *PaystackProvider) VerifyPayment(ctx context.Context, reference string) (*VerifyResponse, error) {
	if reference == "" {
		return nil, p.fail("verify", 0, errors.New("empty reference"))
	}
	var out VerifyResponse
	if err := p.do(ctx, "verify", http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil, &out); err != nil {
		return nil, err
	}
	if !out.Status {
		return nil, p.fail("verify", 0, fmt.Errorf("rejected: %s", out.Message))
	}
	p.logger.Info("paystack transaction verified",
		zap.String("reference", reference), zap.String("status", out.Data.Status))
	return &out, nil
}

// VerifyWebhookSignature reports whether signature is the hex HMAC-SHA512 of body under the secret key.
func (p *PaystackProvider) VerifyWebhookSignature(body []byte, signature string) bool {
	if p.secretKey == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha512.New, []byte(p.secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}

func (p *PaystackProvider) do(ctx context.Context, op, method, path string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, p.BaseURL+path, reader)
	if err != nil {
		return p.fail(op, 0, err)
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := p.client.Do(req)
	if err != nil {
		return p.fail(op, 0, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return p.fail(op, resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return p.fail(op, resp.StatusCode, fmt.Errorf("unexpected response: %s", truncate(respBody, 512)))
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return p.fail(op, resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (p *PaystackProvider) fail(op string, status int, err error) error {
	gerr := &GatewayError{Op: op, StatusCode: status, Err: err}
	p.logger.Error("paystack request failed", zap.String("op", op), zap.Int("status", status), zap.Error(err))
	return gerr
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
