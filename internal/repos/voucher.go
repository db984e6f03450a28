package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plantngo/backend/internal/logger"
	"github.com/plantngo/backend/internal/types"
)

type VoucherRepo interface {
	Create(ctx context.Context, tx *gorm.DB, vouchers []*types.Voucher) ([]*types.Voucher, error)
	GetByMerchantAndID(ctx context.Context, tx *gorm.DB, merchantID, voucherID uuid.UUID) (*types.Voucher, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, voucherIDs []uuid.UUID) ([]*types.Voucher, error)
	GetByMerchantIDs(ctx context.Context, tx *gorm.DB, merchantIDs []uuid.UUID) ([]*types.Voucher, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Voucher, error)
	Update(ctx context.Context, tx *gorm.DB, voucher *types.Voucher) error
	Delete(ctx context.Context, tx *gorm.DB, voucherID uuid.UUID) error
}

type voucherRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVoucherRepo(db *gorm.DB, baseLog *logger.Logger) VoucherRepo {
	repoLog := baseLog.With("repo", "VoucherRepo")
	return &voucherRepo{db: db, log: repoLog}
}

func (vr *voucherRepo) Create(ctx context.Context, tx *gorm.DB, vouchers []*types.Voucher) ([]*types.Voucher, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	if len(vouchers) == 0 {
		return []*types.Voucher{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&vouchers).Error; err != nil {
		return nil, err
	}
	return vouchers, nil
}

func (vr *voucherRepo) GetByMerchantAndID(ctx context.Context, tx *gorm.DB, merchantID, voucherID uuid.UUID) (*types.Voucher, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	var results []*types.Voucher
	if err := transaction.WithContext(ctx).
		Where("merchant_id = ? AND id = ?", merchantID, voucherID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (vr *voucherRepo) GetByIDs(ctx context.Context, tx *gorm.DB, voucherIDs []uuid.UUID) ([]*types.Voucher, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	var results []*types.Voucher
	if len(voucherIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", voucherIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (vr *voucherRepo) GetByMerchantIDs(ctx context.Context, tx *gorm.DB, merchantIDs []uuid.UUID) ([]*types.Voucher, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	var results []*types.Voucher
	if len(merchantIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("merchant_id IN ?", merchantIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (vr *voucherRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Voucher, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	var results []*types.Voucher
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (vr *voucherRepo) Update(ctx context.Context, tx *gorm.DB, voucher *types.Voucher) error {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	return transaction.WithContext(ctx).Save(voucher).Error
}

func (vr *voucherRepo) Delete(ctx context.Context, tx *gorm.DB, voucherID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", voucherID).
		Delete(&types.Voucher{}).Error
}
