package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"paymentapi/internal/domain"
	"paymentapi/internal/events"
	"paymentapi/internal/models"
	"paymentapi/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LifecycleService moves payment-like records between PENDING, COMPLETED and FAILED.
type LifecycleService struct {
	records   *repository.RecordRepository
	history   *repository.HistoryRepository
	refunds   *repository.RefundRepository
	publisher events.Publisher
	logger    *zap.Logger
}

func NewLifecycleService(
	records *repository.RecordRepository,
	history *repository.HistoryRepository,
	refunds *repository.RefundRepository,
	publisher events.Publisher,
	logger *zap.Logger,
) *LifecycleService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &LifecycleService{
		records:   records,
		history:   history,
		refunds:   refunds,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *LifecycleService) MarkAsPaid(ctx context.Context, rec models.Record) error {
	rec.Base().MarkPaid()
	return s.saveStatus(ctx, "mark_as_paid", rec)
}

func (s *LifecycleService) MarkAsFailed(ctx context.Context, rec models.Record) error {
	rec.Base().MarkFailed()
	return s.saveStatus(ctx, "mark_as_failed", rec)
}

// ProcessPayment completes the payment, falling back to FAILED when that cannot be persisted.
func (s *LifecycleService) ProcessPayment(ctx context.Context, p *models.Payment) error {
	if err := s.MarkAsPaid(ctx, p); err != nil {
		return s.failProcessing(ctx, "process_payment", p, err)
	}
	s.logger.Info("payment processed", zap.Uint("transaction_id", p.TransactionID))
	return nil
}

// ProcessRefund re-validates the refund against its payment and completes it.
func (s *LifecycleService) ProcessRefund(ctx context.Context, r *models.PaymentRefund) error {
	if err := s.refunds.Validate(ctx, r); err != nil {
		return s.failProcessing(ctx, "process_refund", r, err)
	}
	prevID := r.RefundTransactionID
	if r.RefundTransactionID == "" {
		r.RefundTransactionID = "rf_" + uuid.NewString()
	}
	if err := s.MarkAsPaid(ctx, r); err != nil {
		r.RefundTransactionID = prevID
		return s.failProcessing(ctx, "process_refund", r, err)
	}
	s.logger.Info("refund processed",
		zap.Uint("transaction_id", r.TransactionID),
		zap.String("refund_transaction_id", r.RefundTransactionID))
	return nil
}

// AddNote appends note to the history log.
func (s *LifecycleService) AddNote(ctx context.Context, h *models.PaymentHistory, note string) error {
	if strings.TrimSpace(note) == "" {
		return domain.NewValidationError("note", "note is required")
	}
	prev := h.Notes
	h.AppendNote(note)
	if err := s.history.UpdateNotes(ctx, h); err != nil {
		h.Notes = prev
		s.logger.Error("failed to add note",
			zap.Uint("transaction_id", h.TransactionID), zap.Error(err))
		return &domain.PaymentOperationError{Op: "add_note", Record: h.Kind(), ID: h.TransactionID, Err: err}
	}
	s.logger.Info("note added", zap.Uint("transaction_id", h.TransactionID))
	return nil
}

func (s *LifecycleService) saveStatus(ctx context.Context, op string, rec models.Record) error {
	b := rec.Base()
	if err := s.records.UpdateStatus(ctx, rec); err != nil {
		s.logger.Error("failed to persist status",
			zap.String("op", op),
			zap.String("record", rec.Kind()),
			zap.Uint("transaction_id", b.TransactionID),
			zap.Error(err))
		return &domain.PaymentOperationError{Op: op, Record: rec.Kind(), ID: b.TransactionID, Err: err}
	}
	s.logger.Info("status updated",
		zap.String("record", rec.Kind()),
		zap.Uint("transaction_id", b.TransactionID),
		zap.String("status", b.Status))

	ev := domain.StatusEvent{
		Record:        rec.Kind(),
		TransactionID: b.TransactionID,
		Status:        b.Status,
		Paid:          b.Paid,
		OccurredAt:    time.Now().UTC(),
	}
	if p, ok := rec.(*models.Payment); ok {
		ev.Reference = p.Reference()
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Warn("status event not delivered",
			zap.String("record", rec.Kind()), zap.Uint("transaction_id", b.TransactionID), zap.Error(err))
	}
	return nil
}

// failProcessing marks rec FAILED and reports cause as a PaymentOperationError.
func (s *LifecycleService) failProcessing(ctx context.Context, op string, rec models.Record, cause error) error {
	id := rec.Base().TransactionID
	s.logger.Error("processing failed",
		zap.String("op", op), zap.String("record", rec.Kind()), zap.Uint("transaction_id", id), zap.Error(cause))

	if errors.Is(cause, repository.ErrStaleRecord) {
		// someone else moved the record on; don't overwrite their state
		return asOperationError(op, rec, cause)
	}
	if err := s.MarkAsFailed(ctx, rec); err != nil {
		s.logger.Error("failed to mark record as failed",
			zap.String("op", op), zap.Uint("transaction_id", id), zap.Error(err))
	}
	return asOperationError(op, rec, cause)
}

func asOperationError(op string, rec models.Record, cause error) error {
	var opErr *domain.PaymentOperationError
	if errors.As(cause, &opErr) {
		cause = opErr.Err
	}
	return &domain.PaymentOperationError{Op: op, Record: rec.Kind(), ID: rec.Base().TransactionID, Err: cause}
}
