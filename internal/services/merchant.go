package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plantngo/backend/internal/apierr"
	"github.com/plantngo/backend/internal/logger"
	"github.com/plantngo/backend/internal/repos"
	"github.com/plantngo/backend/internal/types"
)

type MerchantService interface {
	GetMerchantByID(ctx context.Context, merchantID uuid.UUID) (*types.Merchant, error)
	GetMerchantByUsername(ctx context.Context, username string) (*types.Merchant, error)
	FindAll(ctx context.Context) ([]*types.Merchant, error)
}

type merchantService struct {
	db           *gorm.DB
	log          *logger.Logger
	merchantRepo repos.MerchantRepo
}

func NewMerchantService(db *gorm.DB, baseLog *logger.Logger, merchantRepo repos.MerchantRepo) MerchantService {
	return &merchantService{
		db:           db,
		log:          baseLog.With("service", "MerchantService"),
		merchantRepo: merchantRepo,
	}
}

func (s *merchantService) GetMerchantByID(ctx context.Context, merchantID uuid.UUID) (*types.Merchant, error) {
	merchants, err := s.merchantRepo.GetByIDs(ctx, nil, []uuid.UUID{merchantID})
	if err != nil {
		return nil, fmt.Errorf("load merchant: %w", err)
	}
	if len(merchants) == 0 {
		return nil, apierr.NotFound("Merchant")
	}
	return merchants[0], nil
}

func (s *merchantService) GetMerchantByUsername(ctx context.Context, username string) (*types.Merchant, error) {
	merchant, err := s.merchantRepo.GetByUsername(ctx, nil, username)
	if err != nil {
		return nil, fmt.Errorf("load merchant: %w", err)
	}
	if merchant == nil {
		return nil, apierr.UserNotFound()
	}
	return merchant, nil
}

func (s *merchantService) FindAll(ctx context.Context) ([]*types.Merchant, error) {
	return s.merchantRepo.GetAll(ctx, nil)
}
