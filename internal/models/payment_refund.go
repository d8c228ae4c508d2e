package models

import (
	"paymentapi/internal/domain"
)

type PaymentRefund struct {
	BasePayment
	OriginalPaymentID   uint   `gorm:"not null;index" json:"original_payment"`
	RefundReason        string `gorm:"type:text" json:"refund_reason"`
	RefundTransactionID string `gorm:"size:255" json:"refund_transaction_id"`
}

func (PaymentRefund) TableName() string {
	return "payment_refunds"
}

func (*PaymentRefund) Kind() string {
	return domain.RecordRefund
}

func (r *PaymentRefund) StatusColumns() map[string]interface{} {
	cols := r.BasePayment.StatusColumns()
	cols["refund_transaction_id"] = r.RefundTransactionID
	return cols
}
