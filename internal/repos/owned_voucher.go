package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plantngo/backend/internal/logger"
	"github.com/plantngo/backend/internal/types"
)

type OwnedVoucherRepo interface {
	Create(ctx context.Context, tx *gorm.DB, owned []*types.OwnedVoucher) ([]*types.OwnedVoucher, error)
	GetByCustomerID(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) ([]*types.OwnedVoucher, error)
	Exists(ctx context.Context, tx *gorm.DB, customerID, voucherID uuid.UUID) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, customerID, voucherID uuid.UUID) error
	DeleteByCustomerID(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) error
}

type ownedVoucherRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOwnedVoucherRepo(db *gorm.DB, baseLog *logger.Logger) OwnedVoucherRepo {
	repoLog := baseLog.With("repo", "OwnedVoucherRepo")
	return &ownedVoucherRepo{db: db, log: repoLog}
}

func (or *ownedVoucherRepo) Create(ctx context.Context, tx *gorm.DB, owned []*types.OwnedVoucher) ([]*types.OwnedVoucher, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	if len(owned) == 0 {
		return []*types.OwnedVoucher{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&owned).Error; err != nil {
		return nil, err
	}
	return owned, nil
}

func (or *ownedVoucherRepo) GetByCustomerID(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) ([]*types.OwnedVoucher, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	var results []*types.OwnedVoucher
	if err := transaction.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *ownedVoucherRepo) Exists(ctx context.Context, tx *gorm.DB, customerID, voucherID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.OwnedVoucher{}).
		Where("customer_id = ? AND voucher_id = ?", customerID, voucherID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (or *ownedVoucherRepo) Delete(ctx context.Context, tx *gorm.DB, customerID, voucherID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	return transaction.WithContext(ctx).
		Where("customer_id = ? AND voucher_id = ?", customerID, voucherID).
		Delete(&types.OwnedVoucher{}).Error
}

func (or *ownedVoucherRepo) DeleteByCustomerID(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	return transaction.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Delete(&types.OwnedVoucher{}).Error
}
