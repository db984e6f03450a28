package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plantngo/backend/internal/apierr"
	"github.com/plantngo/backend/internal/locks"
	"github.com/plantngo/backend/internal/logger"
	"github.com/plantngo/backend/internal/repos"
	"github.com/plantngo/backend/internal/types"
)

// ProductService manages a product's ingredient composition and keeps the
// derived carbon_emission in step with it. The emission is recomputed
// from the full association set on every structural change, never
// adjusted incrementally.
type ProductService interface {
	GetAllProducts(ctx context.Context) ([]*types.Product, error)
	GetProductByID(ctx context.Context, productID uuid.UUID) (*types.Product, error)
	GetIngredientByName(ctx context.Context, name string) (*types.Ingredient, error)
	GetAllProductIngredients(ctx context.Context) ([]*types.ProductIngredient, error)
	AddProductIngredient(ctx context.Context, productID uuid.UUID, ingredientName string, servingQty float64) (*types.ProductIngredient, error)
	UpdateProductIngredient(ctx context.Context, productID uuid.UUID, ingredientName string, servingQty float64) (*types.ProductIngredient, error)
	DeleteProductIngredient(ctx context.Context, productID uuid.UUID, ingredientName string) error
}

type productService struct {
	db             *gorm.DB
	log            *logger.Logger
	productLock    *locks.KeyedMutex
	productRepo    repos.ProductRepo
	ingredientRepo repos.IngredientRepo
	assocRepo      repos.ProductIngredientRepo
}

func NewProductService(
	db *gorm.DB,
	baseLog *logger.Logger,
	productLock *locks.KeyedMutex,
	productRepo repos.ProductRepo,
	ingredientRepo repos.IngredientRepo,
	assocRepo repos.ProductIngredientRepo,
) ProductService {
	return &productService{
		db:             db,
		log:            baseLog.With("service", "ProductService"),
		productLock:    productLock,
		productRepo:    productRepo,
		ingredientRepo: ingredientRepo,
		assocRepo:      assocRepo,
	}
}

func productKey(productID uuid.UUID) string {
	return "product:" + productID.String()
}

func (s *productService) GetAllProducts(ctx context.Context) ([]*types.Product, error) {
	return s.productRepo.GetAll(ctx, nil)
}

func (s *productService) GetProductByID(ctx context.Context, productID uuid.UUID) (*types.Product, error) {
	products, err := s.productRepo.GetByIDs(ctx, nil, []uuid.UUID{productID})
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if len(products) == 0 {
		return nil, apierr.NotFound("Product")
	}
	return products[0], nil
}

func (s *productService) GetIngredientByName(ctx context.Context, name string) (*types.Ingredient, error) {
	ingredient, err := s.ingredientRepo.GetByName(ctx, nil, name)
	if err != nil {
		return nil, fmt.Errorf("load ingredient: %w", err)
	}
	if ingredient == nil {
		return nil, apierr.NotFound("Ingredient")
	}
	return ingredient, nil
}

func (s *productService) GetAllProductIngredients(ctx context.Context) ([]*types.ProductIngredient, error) {
	return s.assocRepo.GetAll(ctx, nil)
}

func (s *productService) AddProductIngredient(ctx context.Context, productID uuid.UUID, ingredientName string, servingQty float64) (*types.ProductIngredient, error) {
	product, err := s.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	ingredient, err := s.GetIngredientByName(ctx, ingredientName)
	if err != nil {
		return nil, err
	}

	release := s.productLock.Lock(productKey(product.ID))
	defer release()

	exists, err := s.assocRepo.Exists(ctx, nil, product.ID, ingredient.ID)
	if err != nil {
		return nil, fmt.Errorf("check composition: %w", err)
	}
	if exists {
		return nil, apierr.AlreadyExists("Product Ingredient")
	}

	association := &types.ProductIngredient{
		ProductID:    product.ID,
		IngredientID: ingredient.ID,
		ServingQty:   servingQty,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.assocRepo.Create(ctx, tx, []*types.ProductIngredient{association}); err != nil {
			return fmt.Errorf("create association: %w", err)
		}
		return s.recomputeEmission(ctx, tx, product)
	})
	if err != nil {
		s.log.Warn("AddProductIngredient failed", "error", err, "product_id", product.ID, "ingredient", ingredientName)
		return nil, err
	}
	return association, nil
}

func (s *productService) UpdateProductIngredient(ctx context.Context, productID uuid.UUID, ingredientName string, servingQty float64) (*types.ProductIngredient, error) {
	product, err := s.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	ingredient, err := s.GetIngredientByName(ctx, ingredientName)
	if err != nil {
		return nil, err
	}

	release := s.productLock.Lock(productKey(product.ID))
	defer release()

	association, err := s.assocRepo.GetByProductAndIngredient(ctx, nil, product.ID, ingredient.ID)
	if err != nil {
		return nil, fmt.Errorf("load association: %w", err)
	}
	if association == nil {
		return nil, apierr.NotFound("Product Ingredient")
	}

	association.ServingQty = servingQty
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.assocRepo.Update(ctx, tx, association); err != nil {
			return fmt.Errorf("update association: %w", err)
		}
		return s.recomputeEmission(ctx, tx, product)
	})
	if err != nil {
		s.log.Warn("UpdateProductIngredient failed", "error", err, "product_id", product.ID, "ingredient", ingredientName)
		return nil, err
	}
	return association, nil
}

func (s *productService) DeleteProductIngredient(ctx context.Context, productID uuid.UUID, ingredientName string) error {
	product, err := s.GetProductByID(ctx, productID)
	if err != nil {
		return err
	}
	ingredient, err := s.GetIngredientByName(ctx, ingredientName)
	if err != nil {
		return err
	}

	release := s.productLock.Lock(productKey(product.ID))
	defer release()

	association, err := s.assocRepo.GetByProductAndIngredient(ctx, nil, product.ID, ingredient.ID)
	if err != nil {
		return fmt.Errorf("load association: %w", err)
	}
	if association == nil {
		return apierr.NotFound("Product Ingredient")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.assocRepo.Delete(ctx, tx, product.ID, ingredient.ID); err != nil {
			return fmt.Errorf("delete association: %w", err)
		}
		return s.recomputeEmission(ctx, tx, product)
	})
	if err != nil {
		s.log.Warn("DeleteProductIngredient failed", "error", err, "product_id", product.ID, "ingredient", ingredientName)
		return err
	}
	return nil
}

// recomputeEmission sums emission_per_gram × serving_qty over the
// product's current composition and persists the product. Runs inside
// the caller's transaction so the association write and the derived
// value commit together.
func (s *productService) recomputeEmission(ctx context.Context, tx *gorm.DB, product *types.Product) error {
	associations, err := s.assocRepo.GetByProductID(ctx, tx, product.ID)
	if err != nil {
		return fmt.Errorf("load composition: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(associations))
	for _, a := range associations {
		ids = append(ids, a.IngredientID)
	}
	ingredients, err := s.ingredientRepo.GetByIDs(ctx, tx, ids)
	if err != nil {
		return fmt.Errorf("load ingredients: %w", err)
	}
	emissionPerGram := make(map[uuid.UUID]float64, len(ingredients))
	for _, ing := range ingredients {
		emissionPerGram[ing.ID] = ing.EmissionPerGram
	}

	total := 0.0
	for _, a := range associations {
		total += emissionPerGram[a.IngredientID] * a.ServingQty
	}

	product.CarbonEmission = total
	if err := s.productRepo.Update(ctx, tx, product); err != nil {
		return fmt.Errorf("persist product emission: %w", err)
	}
	return nil
}
