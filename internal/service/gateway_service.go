package service

import (
	"context"
	"encoding/json"
	"errors"

	"paymentapi/internal/domain"
	"paymentapi/internal/models"
	"paymentapi/internal/repository"
	"paymentapi/pkg/payment"

	"go.uber.org/zap"
)

// GatewayService runs the initiate/verify/webhook workflow against a payment gateway.
type GatewayService struct {
	gateway   payment.Gateway
	payments  *repository.PaymentRepository
	lifecycle *LifecycleService
	logger    *zap.Logger
}

func NewGatewayService(gateway payment.Gateway, payments *repository.PaymentRepository, lifecycle *LifecycleService, logger *zap.Logger) *GatewayService {
	return &GatewayService{gateway: gateway, payments: payments, lifecycle: lifecycle, logger: logger}
}

// Initiate opens a gateway transaction and stores its reference on the payment.
func (s *GatewayService) Initiate(ctx context.Context, p *models.Payment, callbackURL string) (*payment.InitializeData, error) {
	resp, err := s.gateway.InitializePayment(ctx, p.Email, p.Amount, callbackURL)
	if err != nil {
		s.logger.Error("payment initialization failed", zap.Uint("transaction_id", p.TransactionID), zap.Error(err))
		return nil, err
	}
	if resp.Data.Reference == "" {
		err := &payment.GatewayError{Op: "initialize", Err: errors.New("response has no reference")}
		s.logger.Error("payment initialization failed", zap.Uint("transaction_id", p.TransactionID), zap.Error(err))
		return nil, err
	}
	if err := s.payments.SetReference(ctx, p, resp.Data.Reference); err != nil {
		s.logger.Error("failed to store payment reference",
			zap.Uint("transaction_id", p.TransactionID), zap.String("reference", resp.Data.Reference), zap.Error(err))
		return nil, &domain.PaymentOperationError{Op: "initiate_payment", Record: p.Kind(), ID: p.TransactionID, Err: err}
	}
	s.logger.Info("payment initiated",
		zap.Uint("transaction_id", p.TransactionID), zap.String("reference", resp.Data.Reference))
	return &resp.Data, nil
}

// Verify polls the gateway and settles the payment. paid reports the outcome.
func (s *GatewayService) Verify(ctx context.Context, p *models.Payment) (data *payment.VerifyData, paid bool, err error) {
	ref := p.Reference()
	if ref == "" {
		return nil, false, domain.NewValidationError("payment_reference", "payment has not been initiated")
	}
	resp, err := s.gateway.VerifyPayment(ctx, ref)
	if err != nil {
		s.logger.Error("payment verification failed", zap.Uint("transaction_id", p.TransactionID), zap.Error(err))
		return nil, false, err
	}
	if resp.Data.Status == domain.GatewayStatusSuccess {
		if err := s.lifecycle.MarkAsPaid(ctx, p); err != nil {
			return nil, false, err
		}
		return &resp.Data, true, nil
	}
	if err := s.lifecycle.MarkAsFailed(ctx, p); err != nil {
		return nil, false, err
	}
	return &resp.Data, false, nil
}

type webhookPayload struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
	} `json:"data"`
}

// HandleWebhook authenticates a gateway callback and applies it to the referenced payment.
func (s *GatewayService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if signature == "" {
		return &domain.SignatureError{Err: domain.ErrSignatureMissing}
	}
	if !s.gateway.VerifyWebhookSignature(body, signature) {
		s.logger.Warn("webhook rejected: signature mismatch")
		return &domain.SignatureError{Err: domain.ErrSignatureInvalid}
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.NewValidationError("body", "invalid webhook payload")
	}
	ref := payload.Data.Reference
	if ref == "" {
		return domain.NewValidationError("data.reference", "reference is required")
	}

	p, err := s.payments.GetByReference(ctx, ref)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("webhook for unknown reference", zap.String("reference", ref))
		} else {
			s.logger.Error("webhook lookup failed", zap.String("reference", ref), zap.Error(err))
		}
		return err
	}

	switch payload.Event {
	case domain.EventChargeSuccess:
		return s.lifecycle.MarkAsPaid(ctx, p)
	case domain.EventChargeFailed:
		return s.lifecycle.MarkAsFailed(ctx, p)
	default:
		s.logger.Info("webhook event ignored", zap.String("event", payload.Event), zap.String("reference", ref))
		return nil
	}
}
