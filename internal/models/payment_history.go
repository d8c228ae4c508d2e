package models

import (
	"paymentapi/internal/domain"
)

// PaymentHistory tracks the history of a payment through an append-only notes log.
type PaymentHistory struct {
	BasePayment
	OriginalPaymentID uint   `gorm:"not null;index" json:"original_payment"`
	Notes             string `gorm:"type:text" json:"notes"`
}

func (PaymentHistory) TableName() string {
	return "payment_history"
}

func (*PaymentHistory) Kind() string {
	return domain.RecordHistory
}

// AppendNote adds note on its own line.
func (h *PaymentHistory) AppendNote(note string) {
	if h.Notes != "" {
		h.Notes += "\n" + note
		return
	}
	h.Notes = note
}
