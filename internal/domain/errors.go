package domain

import (
	"errors"
	"fmt"
)

// ValidationError is bad input data; the message is safe to return to the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// PaymentOperationError is a failed state transition or persistence on a record.
type PaymentOperationError struct {
	Op     string
	Record string
	ID     uint
	Err    error
}

func (e *PaymentOperationError) Error() string {
	return fmt.Sprintf("%s %s %d: %v", e.Op, e.Record, e.ID, e.Err)
}

func (e *PaymentOperationError) Unwrap() error {
	return e.Err
}

var (
	ErrSignatureMissing = errors.New("paystack signature not found")
	ErrSignatureInvalid = errors.New("invalid paystack signature")
)

// SignatureError rejects a webhook before any business logic runs.
type SignatureError struct {
	Err error
}

func (e *SignatureError) Error() string {
	return e.Err.Error()
}

func (e *SignatureError) Unwrap() error {
	return e.Err
}
