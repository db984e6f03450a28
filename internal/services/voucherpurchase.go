package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plantngo/backend/internal/apierr"
	"github.com/plantngo/backend/internal/cache"
	"github.com/plantngo/backend/internal/locks"
	"github.com/plantngo/backend/internal/logger"
	"github.com/plantngo/backend/internal/repos"
	"github.com/plantngo/backend/internal/types"
)

// VoucherPurchaseService owns the customer-side voucher state: the cart
// (staged vouchers), the owned set (acquired vouchers), and the purchase
// transition between them. Cart and owned set are independent; the same
// voucher may legitimately sit in both.
type VoucherPurchaseService interface {
	GetAllVouchers(ctx context.Context) ([]*types.Voucher, error)
	GetAllInCartVouchers(ctx context.Context, username string) ([]*types.Voucher, error)
	GetAllOwnedVouchers(ctx context.Context, username string) ([]*types.Voucher, error)
	AddToCart(ctx context.Context, customer *types.Customer, voucher *types.Voucher) error
	DeleteFromCart(ctx context.Context, customer *types.Customer, voucher *types.Voucher) error
	AddOwnedVoucher(ctx context.Context, customer *types.Customer, voucher *types.Voucher) error
	DeleteOwnedVoucher(ctx context.Context, customer *types.Customer, voucher *types.Voucher) error
	PurchaseVouchers(ctx context.Context, customer *types.Customer) (*types.Order, error)
}

type voucherPurchaseService struct {
	db           *gorm.DB
	log          *logger.Logger
	customerLock *locks.KeyedMutex
	customerRepo repos.CustomerRepo
	voucherRepo  repos.VoucherRepo
	cartRepo     repos.CartRepo
	ownedRepo    repos.OwnedVoucherRepo
	orderRepo    repos.OrderRepo
	voucherCache *cache.VoucherCache
}

func NewVoucherPurchaseService(
	db *gorm.DB,
	baseLog *logger.Logger,
	customerLock *locks.KeyedMutex,
	customerRepo repos.CustomerRepo,
	voucherRepo repos.VoucherRepo,
	cartRepo repos.CartRepo,
	ownedRepo repos.OwnedVoucherRepo,
	orderRepo repos.OrderRepo,
	voucherCache *cache.VoucherCache,
) VoucherPurchaseService {
	return &voucherPurchaseService{
		db:           db,
		log:          baseLog.With("service", "VoucherPurchaseService"),
		customerLock: customerLock,
		customerRepo: customerRepo,
		voucherRepo:  voucherRepo,
		cartRepo:     cartRepo,
		ownedRepo:    ownedRepo,
		orderRepo:    orderRepo,
		voucherCache: voucherCache,
	}
}

func customerKey(customerID uuid.UUID) string {
	return "customer:" + customerID.String()
}

func (s *voucherPurchaseService) GetAllVouchers(ctx context.Context) ([]*types.Voucher, error) {
	if s.voucherCache != nil {
		if vouchers, ok := s.voucherCache.GetCatalog(ctx); ok {
			return vouchers, nil
		}
	}

	vouchers, err := s.voucherRepo.GetAll(ctx, nil)
	if err != nil {
		s.log.Warn("GetAllVouchers: load catalog failed", "error", err)
		return nil, err
	}

	if s.voucherCache != nil {
		s.voucherCache.SetCatalog(ctx, vouchers)
	}
	return vouchers, nil
}

func (s *voucherPurchaseService) GetAllInCartVouchers(ctx context.Context, username string) ([]*types.Voucher, error) {
	customer, err := s.resolveCustomer(ctx, username)
	if err != nil {
		return nil, err
	}

	items, err := s.cartRepo.GetByCustomerID(ctx, nil, customer.ID)
	if err != nil {
		s.log.Warn("GetAllInCartVouchers: load cart failed", "error", err, "customer_id", customer.ID)
		return nil, err
	}
	return s.vouchersForItems(ctx, cartVoucherIDs(items))
}

func (s *voucherPurchaseService) GetAllOwnedVouchers(ctx context.Context, username string) ([]*types.Voucher, error) {
	customer, err := s.resolveCustomer(ctx, username)
	if err != nil {
		return nil, err
	}

	owned, err := s.ownedRepo.GetByCustomerID(ctx, nil, customer.ID)
	if err != nil {
		s.log.Warn("GetAllOwnedVouchers: load owned set failed", "error", err, "customer_id", customer.ID)
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(owned))
	for _, o := range owned {
		ids = append(ids, o.VoucherID)
	}
	return s.vouchersForItems(ctx, ids)
}

func (s *voucherPurchaseService) AddToCart(ctx context.Context, customer *types.Customer, voucher *types.Voucher) error {
	release := s.customerLock.Lock(customerKey(customer.ID))
	defer release()

	exists, err := s.cartRepo.Exists(ctx, nil, customer.ID, voucher.ID)
	if err != nil {
		return fmt.Errorf("check cart membership: %w", err)
	}
	if exists {
		return apierr.AlreadyExists("Cart Voucher")
	}

	item := &types.CartItem{CustomerID: customer.ID, VoucherID: voucher.ID}
	if _, err := s.cartRepo.Create(ctx, nil, []*types.CartItem{item}); err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}
	return nil
}

func (s *voucherPurchaseService) DeleteFromCart(ctx context.Context, customer *types.Customer, voucher *types.Voucher) error {
	release := s.customerLock.Lock(customerKey(customer.ID))
	defer release()

	exists, err := s.cartRepo.Exists(ctx, nil, customer.ID, voucher.ID)
	if err != nil {
		return fmt.Errorf("check cart membership: %w", err)
	}
	if !exists {
		return apierr.NotFound("Cart Voucher")
	}

	if err := s.cartRepo.Delete(ctx, nil, customer.ID, voucher.ID); err != nil {
		return fmt.Errorf("delete from cart: %w", err)
	}
	return nil
}

func (s *voucherPurchaseService) AddOwnedVoucher(ctx context.Context, customer *types.Customer, voucher *types.Voucher) error {
	release := s.customerLock.Lock(customerKey(customer.ID))
	defer release()

	exists, err := s.ownedRepo.Exists(ctx, nil, customer.ID, voucher.ID)
	if err != nil {
		return fmt.Errorf("check owned membership: %w", err)
	}
	if exists {
		return apierr.AlreadyExists("Owned Voucher")
	}

	owned := &types.OwnedVoucher{CustomerID: customer.ID, VoucherID: voucher.ID}
	if _, err := s.ownedRepo.Create(ctx, nil, []*types.OwnedVoucher{owned}); err != nil {
		return fmt.Errorf("add owned voucher: %w", err)
	}
	return nil
}

func (s *voucherPurchaseService) DeleteOwnedVoucher(ctx context.Context, customer *types.Customer, voucher *types.Voucher) error {
	release := s.customerLock.Lock(customerKey(customer.ID))
	defer release()

	exists, err := s.ownedRepo.Exists(ctx, nil, customer.ID, voucher.ID)
	if err != nil {
		return fmt.Errorf("check owned membership: %w", err)
	}
	if !exists {
		return apierr.NotFound("Owned Voucher")
	}

	if err := s.ownedRepo.Delete(ctx, nil, customer.ID, voucher.ID); err != nil {
		return fmt.Errorf("delete owned voucher: %w", err)
	}
	return nil
}

// PurchaseVouchers moves every cart voucher into the owned set, records
// one Order with an item per voucher, and clears the cart — all in a
// single transaction under the customer's lock. A voucher already owned
// is still billed but not re-inserted. An empty cart is a trivial
// success with no Order.
func (s *voucherPurchaseService) PurchaseVouchers(ctx context.Context, customer *types.Customer) (*types.Order, error) {
	release := s.customerLock.Lock(customerKey(customer.ID))
	defer release()

	var order *types.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.customerRepo.GetByIDs(ctx, tx, []uuid.UUID{customer.ID})
		if err != nil {
			return fmt.Errorf("re-read customer: %w", err)
		}
		if len(found) == 0 {
			return apierr.UserNotFound()
		}

		items, err := s.cartRepo.GetByCustomerID(ctx, tx, customer.ID)
		if err != nil {
			return fmt.Errorf("read cart: %w", err)
		}
		if len(items) == 0 {
			return nil
		}

		vouchers, err := s.voucherRepo.GetByIDs(ctx, tx, cartVoucherIDs(items))
		if err != nil {
			return fmt.Errorf("read cart vouchers: %w", err)
		}

		var toOwn []*types.OwnedVoucher
		for _, v := range vouchers {
			owned, err := s.ownedRepo.Exists(ctx, tx, customer.ID, v.ID)
			if err != nil {
				return fmt.Errorf("check owned membership: %w", err)
			}
			if !owned {
				toOwn = append(toOwn, &types.OwnedVoucher{CustomerID: customer.ID, VoucherID: v.ID})
			}
		}
		if _, err := s.ownedRepo.Create(ctx, tx, toOwn); err != nil {
			return fmt.Errorf("move vouchers to owned set: %w", err)
		}

		total := 0.0
		orderItems := make([]types.OrderItem, 0, len(vouchers))
		for _, v := range vouchers {
			total += v.Price
			orderItems = append(orderItems, types.OrderItem{VoucherID: v.ID, Price: v.Price})
		}
		newOrder := &types.Order{
			CustomerID: customer.ID,
			TotalPrice: total,
			Items:      orderItems,
		}
		if _, err := s.orderRepo.Create(ctx, tx, []*types.Order{newOrder}); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		if err := s.cartRepo.DeleteByCustomerID(ctx, tx, customer.ID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		order = newOrder
		return nil
	})
	if err != nil {
		var apiErr *apierr.Error
		if errors.As(err, &apiErr) {
			return nil, apiErr
		}
		s.log.Error("PurchaseVouchers: transaction aborted", "error", err, "customer_id", customer.ID)
		return nil, apierr.TransactionFailed(err)
	}
	return order, nil
}

func (s *voucherPurchaseService) resolveCustomer(ctx context.Context, username string) (*types.Customer, error) {
	customer, err := s.customerRepo.GetByUsername(ctx, nil, username)
	if err != nil {
		return nil, fmt.Errorf("resolve customer: %w", err)
	}
	if customer == nil {
		return nil, apierr.UserNotFound()
	}
	return customer, nil
}

func (s *voucherPurchaseService) vouchersForItems(ctx context.Context, voucherIDs []uuid.UUID) ([]*types.Voucher, error) {
	if len(voucherIDs) == 0 {
		return []*types.Voucher{}, nil
	}
	vouchers, err := s.voucherRepo.GetByIDs(ctx, nil, voucherIDs)
	if err != nil {
		return nil, fmt.Errorf("load vouchers: %w", err)
	}
	return vouchers, nil
}

func cartVoucherIDs(items []*types.CartItem) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.VoucherID)
	}
	return ids
}
