package models

import (
	"paymentapi/internal/domain"

	"github.com/shopspring/decimal"
)

// PaymentCharge is an additional charge with tax.
type PaymentCharge struct {
	BasePayment
	Description string          `gorm:"size:255" json:"description"`
	Tax         decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"tax"`
}

func (PaymentCharge) TableName() string {
	return "payment_charges"
}

func (*PaymentCharge) Kind() string {
	return domain.RecordCharge
}

// Total is amount plus tax.
func (c *PaymentCharge) Total() decimal.Decimal {
	return c.Amount.Add(c.Tax)
}
