package domain

const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// Record kinds, used in logs and status events.
const (
	RecordPayment = "payment"
	RecordHistory = "payment_history"
	RecordRefund  = "payment_refund"
	RecordCharge  = "payment_charge"
)

// Paystack webhook events.
const (
	EventChargeSuccess = "charge.success"
	EventChargeFailed  = "charge.failed"
)

// GatewayStatusSuccess is the transaction status the gateway reports for a settled charge.
const GatewayStatusSuccess = "success"
