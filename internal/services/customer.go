package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/plantngo/backend/internal/apierr"
	"github.com/plantngo/backend/internal/logger"
	"github.com/plantngo/backend/internal/repos"
	"github.com/plantngo/backend/internal/types"
)

type CustomerService interface {
	GetCustomerByUsername(ctx context.Context, username string) (*types.Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (*types.Customer, error)
	FindAll(ctx context.Context) ([]*types.Customer, error)
	DeleteCustomer(ctx context.Context, username string) error
}

type customerService struct {
	db           *gorm.DB
	log          *logger.Logger
	customerRepo repos.CustomerRepo
	cartRepo     repos.CartRepo
	ownedRepo    repos.OwnedVoucherRepo
}

func NewCustomerService(
	db *gorm.DB,
	baseLog *logger.Logger,
	customerRepo repos.CustomerRepo,
	cartRepo repos.CartRepo,
	ownedRepo repos.OwnedVoucherRepo,
) CustomerService {
	return &customerService{
		db:           db,
		log:          baseLog.With("service", "CustomerService"),
		customerRepo: customerRepo,
		cartRepo:     cartRepo,
		ownedRepo:    ownedRepo,
	}
}

func (s *customerService) GetCustomerByUsername(ctx context.Context, username string) (*types.Customer, error) {
	customer, err := s.customerRepo.GetByUsername(ctx, nil, username)
	if err != nil {
		return nil, fmt.Errorf("load customer: %w", err)
	}
	if customer == nil {
		return nil, apierr.UserNotFound()
	}
	return customer, nil
}

func (s *customerService) GetCustomerByEmail(ctx context.Context, email string) (*types.Customer, error) {
	customer, err := s.customerRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("load customer: %w", err)
	}
	if customer == nil {
		return nil, apierr.NotFound("Customer")
	}
	return customer, nil
}

func (s *customerService) FindAll(ctx context.Context) ([]*types.Customer, error) {
	return s.customerRepo.GetAll(ctx, nil)
}

// DeleteCustomer removes the account together with its cart and owned
// voucher rows in one transaction.
func (s *customerService) DeleteCustomer(ctx context.Context, username string) error {
	customer, err := s.GetCustomerByUsername(ctx, username)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.cartRepo.DeleteByCustomerID(ctx, tx, customer.ID); err != nil {
			return fmt.Errorf("delete cart rows: %w", err)
		}
		if err := s.ownedRepo.DeleteByCustomerID(ctx, tx, customer.ID); err != nil {
			return fmt.Errorf("delete owned rows: %w", err)
		}
		if err := s.customerRepo.Delete(ctx, tx, customer.ID); err != nil {
			return fmt.Errorf("delete customer: %w", err)
		}
		return nil
	})
}
