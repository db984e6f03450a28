package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plantngo/backend/internal/logger"
	"github.com/plantngo/backend/internal/types"
)

type CartRepo interface {
	Create(ctx context.Context, tx *gorm.DB, items []*types.CartItem) ([]*types.CartItem, error)
	GetByCustomerID(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) ([]*types.CartItem, error)
	Exists(ctx context.Context, tx *gorm.DB, customerID, voucherID uuid.UUID) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, customerID, voucherID uuid.UUID) error
	DeleteByCustomerID(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) error
}

type cartRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCartRepo(db *gorm.DB, baseLog *logger.Logger) CartRepo {
	repoLog := baseLog.With("repo", "CartRepo")
	return &cartRepo{db: db, log: repoLog}
}

func (cr *cartRepo) Create(ctx context.Context, tx *gorm.DB, items []*types.CartItem) ([]*types.CartItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if len(items) == 0 {
		return []*types.CartItem{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (cr *cartRepo) GetByCustomerID(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) ([]*types.CartItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.CartItem
	if err := transaction.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *cartRepo) Exists(ctx context.Context, tx *gorm.DB, customerID, voucherID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.CartItem{}).
		Where("customer_id = ? AND voucher_id = ?", customerID, voucherID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (cr *cartRepo) Delete(ctx context.Context, tx *gorm.DB, customerID, voucherID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	return transaction.WithContext(ctx).
		Where("customer_id = ? AND voucher_id = ?", customerID, voucherID).
		Delete(&types.CartItem{}).Error
}

func (cr *cartRepo) DeleteByCustomerID(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	return transaction.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Delete(&types.CartItem{}).Error
}
