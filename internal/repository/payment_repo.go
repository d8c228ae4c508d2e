package repository

import (
	"context"
	"errors"

	"paymentapi/internal/models"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	p.Reset()
	p.PaymentReference = nil
	if err := p.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	return getByID[models.Payment](r.db.WithContext(ctx), id)
}

func (r *PaymentRepository) GetByReference(ctx context.Context, ref string) (*models.Payment, error) {
	var p models.Payment
	err := r.db.WithContext(ctx).Where("payment_reference = ?", ref).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) List(ctx context.Context) ([]models.Payment, error) {
	return listAll[models.Payment](r.db.WithContext(ctx))
}

// Update writes the client-editable fields.
func (r *PaymentRepository) Update(ctx context.Context, p *models.Payment) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return updateVersioned(r.db.WithContext(ctx), p, baseColumns(&p.BasePayment))
}

// SetReference stores the gateway reference used to correlate webhooks.
func (r *PaymentRepository) SetReference(ctx context.Context, p *models.Payment, ref string) error {
	if err := updateVersioned(r.db.WithContext(ctx), p, map[string]interface{}{"payment_reference": ref}); err != nil {
		return err
	}
	p.PaymentReference = &ref
	return nil
}

// Delete removes the payment together with its history and refunds.
func (r *PaymentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("original_payment_id = ?", id).Delete(&models.PaymentHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("original_payment_id = ?", id).Delete(&models.PaymentRefund{}).Error; err != nil {
			return err
		}
		return deleteByID[models.Payment](tx, id)
	})
}
