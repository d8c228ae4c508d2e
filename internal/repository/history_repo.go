package repository

import (
	"context"

	"paymentapi/internal/domain"
	"paymentapi/internal/models"

	"gorm.io/gorm"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Create(ctx context.Context, h *models.PaymentHistory) error {
	h.Reset()
	if err := r.validate(ctx, h); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *HistoryRepository) GetByID(ctx context.Context, id uint) (*models.PaymentHistory, error) {
	return getByID[models.PaymentHistory](r.db.WithContext(ctx), id)
}

func (r *HistoryRepository) List(ctx context.Context) ([]models.PaymentHistory, error) {
	return listAll[models.PaymentHistory](r.db.WithContext(ctx))
}

// Update writes everything but notes, which only UpdateNotes changes.
func (r *HistoryRepository) Update(ctx context.Context, h *models.PaymentHistory) error {
	if err := r.validate(ctx, h); err != nil {
		return err
	}
	cols := baseColumns(&h.BasePayment)
	cols["original_payment_id"] = h.OriginalPaymentID
	return updateVersioned(r.db.WithContext(ctx), h, cols)
}

// UpdateNotes persists the notes log only.
func (r *HistoryRepository) UpdateNotes(ctx context.Context, h *models.PaymentHistory) error {
	return updateVersioned(r.db.WithContext(ctx), h, map[string]interface{}{"notes": h.Notes})
}

func (r *HistoryRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID[models.PaymentHistory](r.db.WithContext(ctx), id)
}

func (r *HistoryRepository) validate(ctx context.Context, h *models.PaymentHistory) error {
	if err := h.Validate(); err != nil {
		return err
	}
	return requirePayment(r.db.WithContext(ctx), h.OriginalPaymentID)
}

func requirePayment(db *gorm.DB, id uint) error {
	var count int64
	if err := db.Model(&models.Payment{}).Where("transaction_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domain.NewValidationError("original_payment", "original payment does not exist")
	}
	return nil
}
