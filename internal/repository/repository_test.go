package repository

import (
	"context"
	"errors"
	"testing"

	"paymentapi/internal/domain"
	"paymentapi/internal/models"
	"paymentapi/internal/testutil"

	"github.com/shopspring/decimal"
)

func newPayment(amount string) *models.Payment {
	return &models.Payment{BasePayment: models.BasePayment{
		CustomerName: "Grace Hopper",
		Amount:       decimal.RequireFromString(amount),
		Email:        "grace@example.com",
	}}
}

func TestPaymentCreateAndGet(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	p := newPayment("100.00")
	p.Status = domain.StatusCompleted
	p.Paid = true
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if p.TransactionID == 0 {
		t.Fatal("Expected transaction id to be assigned")
	}
	if p.Status != domain.StatusPending || p.Paid {
		t.Errorf("Expected new payment to start PENDING/unpaid, got %s/%v", p.Status, p.Paid)
	}

	got, err := repo.GetByID(ctx, p.TransactionID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.Amount.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected amount 100, got %s", got.Amount)
	}
	if got.Version != 1 {
		t.Errorf("Expected version 1, got %d", got.Version)
	}
}

func TestPaymentCreateRejectsInvalid(t *testing.T) {
	repo := NewPaymentRepository(testutil.NewDB(t))

	err := repo.Create(context.Background(), newPayment("0"))
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
}

func TestGetMissing(t *testing.T) {
	repo := NewPaymentRepository(testutil.NewDB(t))
	if _, err := repo.GetByID(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByReference(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSetReferenceAndLookup(t *testing.T) {
	repo := NewPaymentRepository(testutil.NewDB(t))
	ctx := context.Background()

	p := newPayment("10")
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.SetReference(ctx, p, "ref_abc"); err != nil {
		t.Fatalf("SetReference failed: %v", err)
	}
	got, err := repo.GetByReference(ctx, "ref_abc")
	if err != nil {
		t.Fatalf("GetByReference failed: %v", err)
	}
	if got.TransactionID != p.TransactionID {
		t.Errorf("Expected payment %d, got %d", p.TransactionID, got.TransactionID)
	}
	if got.Reference() != "ref_abc" {
		t.Errorf("Expected reference ref_abc, got %q", got.Reference())
	}
}

func TestStaleUpdateRejected(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPaymentRepository(db)
	records := NewRecordRepository(db)
	ctx := context.Background()

	p := newPayment("10")
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	first, _ := repo.GetByID(ctx, p.TransactionID)
	second, _ := repo.GetByID(ctx, p.TransactionID)

	first.MarkPaid()
	if err := records.UpdateStatus(ctx, first); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	second.MarkFailed()
	if err := records.UpdateStatus(ctx, second); !errors.Is(err, ErrStaleRecord) {
		t.Fatalf("Expected ErrStaleRecord, got %v", err)
	}

	got, _ := repo.GetByID(ctx, p.TransactionID)
	if got.Status != domain.StatusCompleted || !got.Paid {
		t.Errorf("Expected COMPLETED/paid to survive, got %s/%v", got.Status, got.Paid)
	}
	if got.Version != 2 {
		t.Errorf("Expected version 2, got %d", got.Version)
	}
}

func TestPaymentUpdate(t *testing.T) {
	repo := NewPaymentRepository(testutil.NewDB(t))
	ctx := context.Background()

	p := newPayment("10")
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	p.CustomerName = "Grace B. Hopper"
	p.Amount = decimal.RequireFromString("12.50")
	if err := repo.Update(ctx, p); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, _ := repo.GetByID(ctx, p.TransactionID)
	if got.CustomerName != "Grace B. Hopper" || !got.Amount.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("Update not persisted: %+v", got.BasePayment)
	}

	p.Email = "invalid"
	var verr *domain.ValidationError
	if err := repo.Update(ctx, p); !errors.As(err, &verr) {
		t.Errorf("Expected ValidationError, got %v", err)
	}
}

func TestRefundBoundedByOriginal(t *testing.T) {
	db := testutil.NewDB(t)
	payments := NewPaymentRepository(db)
	refunds := NewRefundRepository(db)
	ctx := context.Background()

	p := newPayment("50")
	if err := payments.Create(ctx, p); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	over := &models.PaymentRefund{BasePayment: newPayment("50.01").BasePayment, OriginalPaymentID: p.TransactionID}
	var verr *domain.ValidationError
	if err := refunds.Create(ctx, over); !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError for refund above original, got %v", err)
	}

	ok := &models.PaymentRefund{BasePayment: newPayment("50").BasePayment, OriginalPaymentID: p.TransactionID}
	if err := refunds.Create(ctx, ok); err != nil {
		t.Fatalf("Create refund failed: %v", err)
	}

	orphan := &models.PaymentRefund{BasePayment: newPayment("1").BasePayment, OriginalPaymentID: 999}
	if err := refunds.Create(ctx, orphan); !errors.As(err, &verr) || verr.Field != "original_payment" {
		t.Fatalf("Expected original_payment ValidationError, got %v", err)
	}
}

func TestDeletePaymentCascades(t *testing.T) {
	db := testutil.NewDB(t)
	payments := NewPaymentRepository(db)
	history := NewHistoryRepository(db)
	refunds := NewRefundRepository(db)
	ctx := context.Background()

	p := newPayment("20")
	if err := payments.Create(ctx, p); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	h := &models.PaymentHistory{BasePayment: newPayment("20").BasePayment, OriginalPaymentID: p.TransactionID}
	if err := history.Create(ctx, h); err != nil {
		t.Fatalf("Create history failed: %v", err)
	}
	r := &models.PaymentRefund{BasePayment: newPayment("5").BasePayment, OriginalPaymentID: p.TransactionID}
	if err := refunds.Create(ctx, r); err != nil {
		t.Fatalf("Create refund failed: %v", err)
	}

	if err := payments.Delete(ctx, p.TransactionID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := history.GetByID(ctx, h.TransactionID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected history to be deleted, got %v", err)
	}
	if _, err := refunds.GetByID(ctx, r.TransactionID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected refund to be deleted, got %v", err)
	}
	if err := payments.Delete(ctx, p.TransactionID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestChargeRoundTrip(t *testing.T) {
	repo := NewChargeRepository(testutil.NewDB(t))
	ctx := context.Background()

	c := &models.PaymentCharge{
		BasePayment: newPayment("49.99").BasePayment,
		Description: "Service fee",
		Tax:         decimal.RequireFromString("5.00"),
	}
	if err := repo.Create(ctx, c); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	got, err := repo.GetByID(ctx, c.TransactionID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.Total().Equal(decimal.RequireFromString("54.99")) {
		t.Errorf("Expected total 54.99, got %s", got.Total())
	}

	list, err := repo.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("Expected one charge, got %d (%v)", len(list), err)
	}
}

func TestHistoryNotes(t *testing.T) {
	db := testutil.NewDB(t)
	payments := NewPaymentRepository(db)
	history := NewHistoryRepository(db)
	ctx := context.Background()

	p := newPayment("20")
	if err := payments.Create(ctx, p); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	h := &models.PaymentHistory{BasePayment: newPayment("20").BasePayment, OriginalPaymentID: p.TransactionID, Notes: "a"}
	if err := history.Create(ctx, h); err != nil {
		t.Fatalf("Create history failed: %v", err)
	}
	h.AppendNote("b")
	if err := history.UpdateNotes(ctx, h); err != nil {
		t.Fatalf("UpdateNotes failed: %v", err)
	}
	got, _ := history.GetByID(ctx, h.TransactionID)
	if got.Notes != "a\nb" {
		t.Errorf("Expected notes %q, got %q", "a\nb", got.Notes)
	}
}

func TestHistoryUpdateKeepsNotes(t *testing.T) {
	db := testutil.NewDB(t)
	payments := NewPaymentRepository(db)
	history := NewHistoryRepository(db)
	ctx := context.Background()

	p := newPayment("20")
	if err := payments.Create(ctx, p); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	h := &models.PaymentHistory{BasePayment: newPayment("20").BasePayment, OriginalPaymentID: p.TransactionID, Notes: "a"}
	if err := history.Create(ctx, h); err != nil {
		t.Fatalf("Create history failed: %v", err)
	}

	h.Notes = ""
	h.Amount = decimal.NewFromInt(15)
	if err := history.Update(ctx, h); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, _ := history.GetByID(ctx, h.TransactionID)
	if got.Notes != "a" {
		t.Errorf("Expected notes %q to survive Update, got %q", "a", got.Notes)
	}
	if !got.Amount.Equal(decimal.NewFromInt(15)) {
		t.Errorf("Expected amount 15, got %s", got.Amount)
	}
}
