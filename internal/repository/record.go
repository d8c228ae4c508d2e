package repository

import (
	"context"
	"errors"

	"paymentapi/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrStaleRecord = errors.New("record was modified by another request")
)

// RecordRepository writes lifecycle state for any payment-like record.
type RecordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// UpdateStatus persists the columns a lifecycle transition changed.
func (r *RecordRepository) UpdateStatus(ctx context.Context, rec models.Record) error {
	return updateVersioned(r.db.WithContext(ctx), rec, rec.StatusColumns())
}

// updateVersioned writes cols only if nobody else updated the row since it was read.
func updateVersioned(db *gorm.DB, rec models.Record, cols map[string]interface{}) error {
	b := rec.Base()
	if b.TransactionID == 0 {
		return ErrNotFound
	}
	prev := b.Version
	cols["version"] = prev + 1
	res := db.Model(rec).Where("version = ?", prev).Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleRecord
	}
	b.Version = prev + 1
	return nil
}

func getByID[T any](db *gorm.DB, id uint) (*T, error) {
	var rec T
	if err := db.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func listAll[T any](db *gorm.DB) ([]T, error) {
	out := []T{}
	if err := db.Order("transaction_id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func deleteByID[T any](db *gorm.DB, id uint) error {
	var rec T
	res := db.Delete(&rec, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func baseColumns(b *models.BasePayment) map[string]interface{} {
	return map[string]interface{}{
		"customer_name": b.CustomerName,
		"amount":        b.Amount,
		"email":         b.Email,
	}
}
