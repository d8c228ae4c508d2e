package domain

import "time"

// StatusEvent is emitted after a record's status has been persisted.
type StatusEvent struct {
	Record        string    `json:"record"`
	TransactionID uint      `json:"transaction_id"`
	Status        string    `json:"status"`
	Paid          bool      `json:"paid"`
	Reference     string    `json:"reference,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
