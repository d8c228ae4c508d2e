package repository

import (
	"context"

	"paymentapi/internal/models"

	"gorm.io/gorm"
)

type ChargeRepository struct {
	db *gorm.DB
}

func NewChargeRepository(db *gorm.DB) *ChargeRepository {
	return &ChargeRepository{db: db}
}

func (r *ChargeRepository) Create(ctx context.Context, c *models.PaymentCharge) error {
	c.Reset()
	if err := c.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ChargeRepository) GetByID(ctx context.Context, id uint) (*models.PaymentCharge, error) {
	return getByID[models.PaymentCharge](r.db.WithContext(ctx), id)
}

func (r *ChargeRepository) List(ctx context.Context) ([]models.PaymentCharge, error) {
	return listAll[models.PaymentCharge](r.db.WithContext(ctx))
}

func (r *ChargeRepository) Update(ctx context.Context, c *models.PaymentCharge) error {
	if err := c.Validate(); err != nil {
		return err
	}
	cols := baseColumns(&c.BasePayment)
	cols["description"] = c.Description
	cols["tax"] = c.Tax
	return updateVersioned(r.db.WithContext(ctx), c, cols)
}

func (r *ChargeRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID[models.PaymentCharge](r.db.WithContext(ctx), id)
}
