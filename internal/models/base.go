package models

import (
	"time"

	"paymentapi/internal/domain"

	"github.com/shopspring/decimal"
)

// BasePayment is the shape shared by every payment-like record. Embed it by value.
type BasePayment struct {
	TransactionID uint            `gorm:"column:transaction_id;primaryKey;autoIncrement" json:"transaction_id"`
	CustomerName  string          `gorm:"size:55;not null" json:"customer_name"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Email         string          `gorm:"size:254;not null;index" json:"email"`
	Status        string          `gorm:"size:10;not null;default:'PENDING';index" json:"status"`
	Paid          bool            `gorm:"not null;default:false" json:"paid"`
	Version       uint            `gorm:"not null;default:1" json:"-"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Record is implemented by pointers to every payment-like model.
type Record interface {
	Base() *BasePayment
	Kind() string
	// StatusColumns lists the columns a lifecycle transition writes.
	StatusColumns() map[string]interface{}
}

func (b *BasePayment) Base() *BasePayment {
	return b
}

// Reset puts a newly built record into its initial lifecycle state.
func (b *BasePayment) Reset() {
	b.TransactionID = 0
	b.Status = domain.StatusPending
	b.Paid = false
	b.Version = 1
}

func (b *BasePayment) MarkPaid() {
	b.Paid = true
	b.Status = domain.StatusCompleted
}

func (b *BasePayment) MarkFailed() {
	b.Paid = false
	b.Status = domain.StatusFailed
}

func (b *BasePayment) StatusColumns() map[string]interface{} {
	return map[string]interface{}{
		"status": b.Status,
		"paid":   b.Paid,
	}
}
