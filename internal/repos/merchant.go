package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plantngo/backend/internal/logger"
	"github.com/plantngo/backend/internal/types"
)

type MerchantRepo interface {
	Create(ctx context.Context, tx *gorm.DB, merchants []*types.Merchant) ([]*types.Merchant, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, merchantIDs []uuid.UUID) ([]*types.Merchant, error)
	GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*types.Merchant, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Merchant, error)
	UsernameExists(ctx context.Context, tx *gorm.DB, username string) (bool, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
}

type merchantRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMerchantRepo(db *gorm.DB, baseLog *logger.Logger) MerchantRepo {
	repoLog := baseLog.With("repo", "MerchantRepo")
	return &merchantRepo{db: db, log: repoLog}
}

func (mr *merchantRepo) Create(ctx context.Context, tx *gorm.DB, merchants []*types.Merchant) ([]*types.Merchant, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	if len(merchants) == 0 {
		return []*types.Merchant{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&merchants).Error; err != nil {
		return nil, err
	}
	return merchants, nil
}

func (mr *merchantRepo) GetByIDs(ctx context.Context, tx *gorm.DB, merchantIDs []uuid.UUID) ([]*types.Merchant, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.Merchant
	if len(merchantIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", merchantIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *merchantRepo) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*types.Merchant, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.Merchant
	if err := transaction.WithContext(ctx).
		Where("username = ?", username).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (mr *merchantRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Merchant, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.Merchant
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *merchantRepo) UsernameExists(ctx context.Context, tx *gorm.DB, username string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Merchant{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (mr *merchantRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Merchant{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
