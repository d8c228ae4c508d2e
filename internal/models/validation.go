package models

import (
	"strings"
	"unicode/utf8"

	"paymentapi/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	maxCustomerName = 55
	maxDescription  = 255
	// decimal(10,2)
	amountScale     = 2
	maxAmountDigits = 8
)

var validate = validator.New()

// Validate checks the invariants shared by every record.
func (b *BasePayment) Validate() error {
	name := strings.TrimSpace(b.CustomerName)
	if name == "" {
		return domain.NewValidationError("customer_name", "customer name is required")
	}
	if utf8.RuneCountInString(name) > maxCustomerName {
		return domain.NewValidationError("customer_name", "customer name is too long")
	}
	if err := validateMoney("amount", b.Amount); err != nil {
		return err
	}
	if !b.Amount.IsPositive() {
		return domain.NewValidationError("amount", "amount must be greater than 0")
	}
	return validateEmail(b.Email)
}

func (h *PaymentHistory) Validate() error {
	if err := h.BasePayment.Validate(); err != nil {
		return err
	}
	if h.OriginalPaymentID == 0 {
		return domain.NewValidationError("original_payment", "original payment is required")
	}
	return nil
}

func (c *PaymentCharge) Validate() error {
	if err := c.BasePayment.Validate(); err != nil {
		return err
	}
	if utf8.RuneCountInString(c.Description) > maxDescription {
		return domain.NewValidationError("description", "description is too long")
	}
	if c.Tax.IsNegative() {
		return domain.NewValidationError("tax", "tax cannot be negative")
	}
	return validateMoney("tax", c.Tax)
}

// ValidateAgainst checks the refund and its bound by the original payment.
func (r *PaymentRefund) ValidateAgainst(original *Payment) error {
	if err := r.BasePayment.Validate(); err != nil {
		return err
	}
	if r.OriginalPaymentID == 0 || original == nil {
		return domain.NewValidationError("original_payment", "original payment is required")
	}
	if r.Amount.GreaterThan(original.Amount) {
		return domain.NewValidationError("amount", "refund amount cannot be greater than original payment")
	}
	return nil
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return domain.NewValidationError("email", "email is required")
	}
	if !strings.Contains(email, "@") {
		return domain.NewValidationError("email", "invalid email format")
	}
	if err := validate.Var(email, "email"); err != nil {
		return domain.NewValidationError("email", "invalid email format")
	}
	return nil
}

func validateMoney(field string, d decimal.Decimal) error {
	if d.Exponent() < -amountScale && !d.Equal(d.Truncate(amountScale)) {
		return domain.NewValidationError(field, "ensure that there are no more than 2 decimal places")
	}
	if d.Abs().GreaterThanOrEqual(decimal.New(1, maxAmountDigits)) {
		return domain.NewValidationError(field, "ensure that there are no more than 8 digits before the decimal point")
	}
	return nil
}
