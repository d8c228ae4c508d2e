package models

import "paymentapi/internal/domain"

type Payment struct {
	BasePayment
	PaymentReference *string `gorm:"size:255;uniqueIndex" json:"payment_reference"`
}

func (Payment) TableName() string {
	return "payments"
}

func (*Payment) Kind() string {
	return domain.RecordPayment
}

// Reference returns the gateway reference, or "" before initiation.
func (p *Payment) Reference() string {
	if p.PaymentReference == nil {
		return ""
	}
	return *p.PaymentReference
}
