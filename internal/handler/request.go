package handler

import (
	"paymentapi/internal/models"

	"github.com/shopspring/decimal"
)

// Writable fields shared by every record. A nil field means "not sent":
// PUT clears it, PATCH leaves the stored value alone.
type baseRequest struct {
	CustomerName *string          `json:"customer_name"`
	Amount       *decimal.Decimal `json:"amount"`
	Email        *string          `json:"email"`
}

func (r *baseRequest) apply(b *models.BasePayment, partial bool) {
	if !partial {
		b.CustomerName, b.Amount, b.Email = "", decimal.Zero, ""
	}
	if r.CustomerName != nil {
		b.CustomerName = *r.CustomerName
	}
	if r.Amount != nil {
		b.Amount = *r.Amount
	}
	if r.Email != nil {
		b.Email = *r.Email
	}
}

type paymentRequest struct {
	baseRequest
}

func (r *paymentRequest) apply(p *models.Payment, partial bool) {
	r.baseRequest.apply(&p.BasePayment, partial)
}

// historyRequest never touches notes on update; the log only grows through add_note.
type historyRequest struct {
	baseRequest
	OriginalPayment *uint `json:"original_payment"`
}

func (r *historyRequest) apply(h *models.PaymentHistory, partial bool) {
	r.baseRequest.apply(&h.BasePayment, partial)
	if !partial {
		h.OriginalPaymentID = 0
	}
	if r.OriginalPayment != nil {
		h.OriginalPaymentID = *r.OriginalPayment
	}
}

// historyCreateRequest may seed the notes log.
type historyCreateRequest struct {
	historyRequest
	Notes string `json:"notes"`
}

type refundRequest struct {
	baseRequest
	OriginalPayment *uint   `json:"original_payment"`
	RefundReason    *string `json:"refund_reason"`
}

func (r *refundRequest) apply(ref *models.PaymentRefund, partial bool) {
	r.baseRequest.apply(&ref.BasePayment, partial)
	if !partial {
		ref.OriginalPaymentID = 0
	}
	if r.OriginalPayment != nil {
		ref.OriginalPaymentID = *r.OriginalPayment
	}
	if r.RefundReason != nil {
		ref.RefundReason = *r.RefundReason
	}
}

type chargeRequest struct {
	baseRequest
	Description *string          `json:"description"`
	Tax         *decimal.Decimal `json:"tax"`
}

func (r *chargeRequest) apply(ch *models.PaymentCharge, partial bool) {
	r.baseRequest.apply(&ch.BasePayment, partial)
	if !partial {
		ch.Description, ch.Tax = "", decimal.Zero
	}
	if r.Description != nil {
		ch.Description = *r.Description
	}
	if r.Tax != nil {
		ch.Tax = *r.Tax
	}
}

type noteRequest struct {
	Note string `json:"note"`
}
