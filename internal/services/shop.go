package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plantngo/backend/internal/apierr"
	"github.com/plantngo/backend/internal/cache"
	"github.com/plantngo/backend/internal/logger"
	"github.com/plantngo/backend/internal/repos"
	"github.com/plantngo/backend/internal/types"
)

// ShopService is the merchant-side owner of the voucher catalog and the
// product/ingredient records. Voucher writes invalidate the catalog cache
// so customer-facing reads never serve stale prices.
type ShopService interface {
	CreateVoucher(ctx context.Context, merchant *types.Merchant, description string, price float64) (*types.Voucher, error)
	GetVoucher(ctx context.Context, merchant *types.Merchant, voucherID uuid.UUID) (*types.Voucher, error)
	GetVouchersByMerchant(ctx context.Context, merchant *types.Merchant) ([]*types.Voucher, error)
	UpdateVoucher(ctx context.Context, merchant *types.Merchant, voucherID uuid.UUID, description string, price float64) (*types.Voucher, error)
	DeleteVoucher(ctx context.Context, merchant *types.Merchant, voucherID uuid.UUID) error
	CreateProduct(ctx context.Context, merchant *types.Merchant, name string, price float64) (*types.Product, error)
	GetProductsByMerchant(ctx context.Context, merchant *types.Merchant) ([]*types.Product, error)
	CreateIngredient(ctx context.Context, name string, emissionPerGram float64) (*types.Ingredient, error)
}

type shopService struct {
	db             *gorm.DB
	log            *logger.Logger
	voucherRepo    repos.VoucherRepo
	productRepo    repos.ProductRepo
	ingredientRepo repos.IngredientRepo
	voucherCache   *cache.VoucherCache
}

func NewShopService(
	db *gorm.DB,
	baseLog *logger.Logger,
	voucherRepo repos.VoucherRepo,
	productRepo repos.ProductRepo,
	ingredientRepo repos.IngredientRepo,
	voucherCache *cache.VoucherCache,
) ShopService {
	return &shopService{
		db:             db,
		log:            baseLog.With("service", "ShopService"),
		voucherRepo:    voucherRepo,
		productRepo:    productRepo,
		ingredientRepo: ingredientRepo,
		voucherCache:   voucherCache,
	}
}

func (s *shopService) CreateVoucher(ctx context.Context, merchant *types.Merchant, description string, price float64) (*types.Voucher, error) {
	voucher := &types.Voucher{
		MerchantID:  merchant.ID,
		Description: description,
		Price:       price,
	}
	if _, err := s.voucherRepo.Create(ctx, nil, []*types.Voucher{voucher}); err != nil {
		return nil, fmt.Errorf("create voucher: %w", err)
	}
	s.invalidateCatalog(ctx)
	return voucher, nil
}

func (s *shopService) GetVoucher(ctx context.Context, merchant *types.Merchant, voucherID uuid.UUID) (*types.Voucher, error) {
	voucher, err := s.voucherRepo.GetByMerchantAndID(ctx, nil, merchant.ID, voucherID)
	if err != nil {
		return nil, fmt.Errorf("load voucher: %w", err)
	}
	if voucher == nil {
		return nil, apierr.NotFound("Voucher")
	}
	return voucher, nil
}

func (s *shopService) GetVouchersByMerchant(ctx context.Context, merchant *types.Merchant) ([]*types.Voucher, error) {
	return s.voucherRepo.GetByMerchantIDs(ctx, nil, []uuid.UUID{merchant.ID})
}

func (s *shopService) UpdateVoucher(ctx context.Context, merchant *types.Merchant, voucherID uuid.UUID, description string, price float64) (*types.Voucher, error) {
	voucher, err := s.GetVoucher(ctx, merchant, voucherID)
	if err != nil {
		return nil, err
	}

	voucher.Description = description
	voucher.Price = price
	if err := s.voucherRepo.Update(ctx, nil, voucher); err != nil {
		return nil, fmt.Errorf("update voucher: %w", err)
	}
	s.invalidateCatalog(ctx)
	return voucher, nil
}

func (s *shopService) DeleteVoucher(ctx context.Context, merchant *types.Merchant, voucherID uuid.UUID) error {
	if _, err := s.GetVoucher(ctx, merchant, voucherID); err != nil {
		return err
	}
	if err := s.voucherRepo.Delete(ctx, nil, voucherID); err != nil {
		return fmt.Errorf("delete voucher: %w", err)
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *shopService) CreateProduct(ctx context.Context, merchant *types.Merchant, name string, price float64) (*types.Product, error) {
	product := &types.Product{
		MerchantID: merchant.ID,
		Name:       name,
		Price:      price,
	}
	if _, err := s.productRepo.Create(ctx, nil, []*types.Product{product}); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

func (s *shopService) GetProductsByMerchant(ctx context.Context, merchant *types.Merchant) ([]*types.Product, error) {
	return s.productRepo.GetByMerchantIDs(ctx, nil, []uuid.UUID{merchant.ID})
}

func (s *shopService) CreateIngredient(ctx context.Context, name string, emissionPerGram float64) (*types.Ingredient, error) {
	existing, err := s.ingredientRepo.GetByName(ctx, nil, name)
	if err != nil {
		return nil, fmt.Errorf("check ingredient name: %w", err)
	}
	if existing != nil {
		return nil, apierr.AlreadyExists("Ingredient")
	}

	ingredient := &types.Ingredient{Name: name, EmissionPerGram: emissionPerGram}
	if _, err := s.ingredientRepo.Create(ctx, nil, []*types.Ingredient{ingredient}); err != nil {
		return nil, fmt.Errorf("create ingredient: %w", err)
	}
	return ingredient, nil
}

func (s *shopService) invalidateCatalog(ctx context.Context) {
	if s.voucherCache != nil {
		s.voucherCache.InvalidateCatalog(ctx)
	}
}
