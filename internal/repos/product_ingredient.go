package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plantngo/backend/internal/logger"
	"github.com/plantngo/backend/internal/types"
)

type ProductIngredientRepo interface {
	Create(ctx context.Context, tx *gorm.DB, associations []*types.ProductIngredient) ([]*types.ProductIngredient, error)
	GetByProductID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) ([]*types.ProductIngredient, error)
	GetByProductAndIngredient(ctx context.Context, tx *gorm.DB, productID, ingredientID uuid.UUID) (*types.ProductIngredient, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.ProductIngredient, error)
	Exists(ctx context.Context, tx *gorm.DB, productID, ingredientID uuid.UUID) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, association *types.ProductIngredient) error
	Delete(ctx context.Context, tx *gorm.DB, productID, ingredientID uuid.UUID) error
}

type productIngredientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductIngredientRepo(db *gorm.DB, baseLog *logger.Logger) ProductIngredientRepo {
	repoLog := baseLog.With("repo", "ProductIngredientRepo")
	return &productIngredientRepo{db: db, log: repoLog}
}

func (pir *productIngredientRepo) Create(ctx context.Context, tx *gorm.DB, associations []*types.ProductIngredient) ([]*types.ProductIngredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = pir.db
	}

	if len(associations) == 0 {
		return []*types.ProductIngredient{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&associations).Error; err != nil {
		return nil, err
	}
	return associations, nil
}

func (pir *productIngredientRepo) GetByProductID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) ([]*types.ProductIngredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = pir.db
	}

	var results []*types.ProductIngredient
	if err := transaction.WithContext(ctx).
		Where("product_id = ?", productID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pir *productIngredientRepo) GetByProductAndIngredient(ctx context.Context, tx *gorm.DB, productID, ingredientID uuid.UUID) (*types.ProductIngredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = pir.db
	}

	var results []*types.ProductIngredient
	if err := transaction.WithContext(ctx).
		Where("product_id = ? AND ingredient_id = ?", productID, ingredientID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (pir *productIngredientRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.ProductIngredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = pir.db
	}

	var results []*types.ProductIngredient
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pir *productIngredientRepo) Exists(ctx context.Context, tx *gorm.DB, productID, ingredientID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = pir.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ProductIngredient{}).
		Where("product_id = ? AND ingredient_id = ?", productID, ingredientID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (pir *productIngredientRepo) Update(ctx context.Context, tx *gorm.DB, association *types.ProductIngredient) error {
	transaction := tx
	if transaction == nil {
		transaction = pir.db
	}

	return transaction.WithContext(ctx).Save(association).Error
}

func (pir *productIngredientRepo) Delete(ctx context.Context, tx *gorm.DB, productID, ingredientID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pir.db
	}

	return transaction.WithContext(ctx).
		Where("product_id = ? AND ingredient_id = ?", productID, ingredientID).
		Delete(&types.ProductIngredient{}).Error
}
