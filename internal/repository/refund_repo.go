package repository

import (
	"context"
	"errors"

	"paymentapi/internal/domain"
	"paymentapi/internal/models"

	"gorm.io/gorm"
)

type RefundRepository struct {
	db *gorm.DB
}

func NewRefundRepository(db *gorm.DB) *RefundRepository {
	return &RefundRepository{db: db}
}

func (r *RefundRepository) Create(ctx context.Context, ref *models.PaymentRefund) error {
	ref.Reset()
	ref.RefundTransactionID = ""
	if err := r.Validate(ctx, ref); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(ref).Error
}

func (r *RefundRepository) GetByID(ctx context.Context, id uint) (*models.PaymentRefund, error) {
	return getByID[models.PaymentRefund](r.db.WithContext(ctx), id)
}

func (r *RefundRepository) List(ctx context.Context) ([]models.PaymentRefund, error) {
	return listAll[models.PaymentRefund](r.db.WithContext(ctx))
}

func (r *RefundRepository) Update(ctx context.Context, ref *models.PaymentRefund) error {
	if err := r.Validate(ctx, ref); err != nil {
		return err
	}
	cols := baseColumns(&ref.BasePayment)
	cols["original_payment_id"] = ref.OriginalPaymentID
	cols["refund_reason"] = ref.RefundReason
	return updateVersioned(r.db.WithContext(ctx), ref, cols)
}

func (r *RefundRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID[models.PaymentRefund](r.db.WithContext(ctx), id)
}

// Validate checks the refund against the payment it refunds.
func (r *RefundRepository) Validate(ctx context.Context, ref *models.PaymentRefund) error {
	var original *models.Payment
	if ref.OriginalPaymentID != 0 {
		p, err := getByID[models.Payment](r.db.WithContext(ctx), ref.OriginalPaymentID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		if p == nil {
			return domain.NewValidationError("original_payment", "original payment does not exist")
		}
		original = p
	}
	return ref.ValidateAgainst(original)
}
