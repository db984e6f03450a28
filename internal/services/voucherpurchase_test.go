package services

import (
	"context"
	"math"
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/plantngo/backend/internal/apierr"
	"github.com/plantngo/backend/internal/locks"
	"github.com/plantngo/backend/internal/repos"
	"github.com/plantngo/backend/internal/types"
)

func newPurchaseService(t *testing.T) (VoucherPurchaseService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger()
	svc := NewVoucherPurchaseService(
		db,
		log,
		locks.NewKeyedMutex(),
		repos.NewCustomerRepo(db, log),
		repos.NewVoucherRepo(db, log),
		repos.NewCartRepo(db, log),
		repos.NewOwnedVoucherRepo(db, log),
		repos.NewOrderRepo(db, log),
		nil,
	)
	return svc, db
}

func cartCount(t *testing.T, db *gorm.DB, customer *types.Customer) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&types.CartItem{}).Where("customer_id = ?", customer.ID).Count(&count).Error; err != nil {
		t.Fatalf("count cart: %v", err)
	}
	return count
}

func ownedCount(t *testing.T, db *gorm.DB, customer *types.Customer) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&types.OwnedVoucher{}).Where("customer_id = ?", customer.ID).Count(&count).Error; err != nil {
		t.Fatalf("count owned: %v", err)
	}
	return count
}

func TestAddToCartDuplicateRejected(t *testing.T) {
	svc, db := newPurchaseService(t)
	ctx := context.Background()

	customer := seedCustomer(t, db, "alice")
	merchant := seedMerchant(t, db, "shop")
	voucher := seedVoucher(t, db, merchant, "10% off", 4.50)

	if err := svc.AddToCart(ctx, customer, voucher); err != nil {
		t.Fatalf("first AddToCart: %v", err)
	}
	err := svc.AddToCart(ctx, customer, voucher)
	if !apierr.IsAlreadyExists(err) {
		t.Fatalf("second AddToCart err=%v, want AlreadyExists", err)
	}
	if got := cartCount(t, db, customer); got != 1 {
		t.Fatalf("cart size=%d, want 1", got)
	}
}

func TestDeleteFromCartRequiresPresence(t *testing.T) {
	svc, db := newPurchaseService(t)
	ctx := context.Background()

	customer := seedCustomer(t, db, "alice")
	merchant := seedMerchant(t, db, "shop")
	inCart := seedVoucher(t, db, merchant, "in cart", 1.00)
	absent := seedVoucher(t, db, merchant, "never added", 2.00)

	if err := svc.AddToCart(ctx, customer, inCart); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	err := svc.DeleteFromCart(ctx, customer, absent)
	if !apierr.IsNotFound(err) {
		t.Fatalf("DeleteFromCart err=%v, want NotFound", err)
	}
	if got := cartCount(t, db, customer); got != 1 {
		t.Fatalf("cart size=%d after failed delete, want 1", got)
	}
}

func TestOwnedVoucherDuplicateRejected(t *testing.T) {
	svc, db := newPurchaseService(t)
	ctx := context.Background()

	customer := seedCustomer(t, db, "alice")
	merchant := seedMerchant(t, db, "shop")
	voucher := seedVoucher(t, db, merchant, "free coffee", 3.00)

	if err := svc.AddOwnedVoucher(ctx, customer, voucher); err != nil {
		t.Fatalf("first AddOwnedVoucher: %v", err)
	}
	err := svc.AddOwnedVoucher(ctx, customer, voucher)
	if !apierr.IsAlreadyExists(err) {
		t.Fatalf("second AddOwnedVoucher err=%v, want AlreadyExists", err)
	}
}

// A voucher may sit in the cart and the owned set at the same time; the
// two sets are deduplicated independently.
func TestAddToCartWhileOwned(t *testing.T) {
	svc, db := newPurchaseService(t)
	ctx := context.Background()

	customer := seedCustomer(t, db, "alice")
	merchant := seedMerchant(t, db, "shop")
	voucher := seedVoucher(t, db, merchant, "reusable cup", 6.00)

	if err := svc.AddOwnedVoucher(ctx, customer, voucher); err != nil {
		t.Fatalf("AddOwnedVoucher: %v", err)
	}
	if err := svc.AddToCart(ctx, customer, voucher); err != nil {
		t.Fatalf("AddToCart while owned: %v", err)
	}
	if got := cartCount(t, db, customer); got != 1 {
		t.Fatalf("cart size=%d, want 1", got)
	}
	if got := ownedCount(t, db, customer); got != 1 {
		t.Fatalf("owned size=%d, want 1", got)
	}
}

func TestPurchaseMovesCartToOwned(t *testing.T) {
	svc, db := newPurchaseService(t)
	ctx := context.Background()

	customer := seedCustomer(t, db, "alice")
	merchant := seedMerchant(t, db, "shop")
	voucherA := seedVoucher(t, db, merchant, "A", 4.50)
	voucherB := seedVoucher(t, db, merchant, "B", 2.25)

	if err := svc.AddToCart(ctx, customer, voucherA); err != nil {
		t.Fatalf("AddToCart A: %v", err)
	}
	if err := svc.AddToCart(ctx, customer, voucherB); err != nil {
		t.Fatalf("AddToCart B: %v", err)
	}

	order, err := svc.PurchaseVouchers(ctx, customer)
	if err != nil {
		t.Fatalf("PurchaseVouchers: %v", err)
	}
	if order == nil {
		t.Fatal("PurchaseVouchers returned nil order for non-empty cart")
	}

	if got := cartCount(t, db, customer); got != 0 {
		t.Fatalf("cart size=%d after purchase, want 0", got)
	}
	if got := ownedCount(t, db, customer); got != 2 {
		t.Fatalf("owned size=%d after purchase, want 2", got)
	}

	var orders []*types.Order
	if err := db.Preload("Items").Where("customer_id = ?", customer.ID).Find(&orders).Error; err != nil {
		t.Fatalf("load orders: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("orders=%d, want exactly 1", len(orders))
	}
	if math.Abs(orders[0].TotalPrice-6.75) > 1e-9 {
		t.Fatalf("total=%v, want 6.75", orders[0].TotalPrice)
	}
	if len(orders[0].Items) != 2 {
		t.Fatalf("order items=%d, want 2", len(orders[0].Items))
	}
}

// Purchasing an empty cart succeeds trivially and creates no Order.
func TestPurchaseEmptyCart(t *testing.T) {
	svc, db := newPurchaseService(t)
	ctx := context.Background()

	customer := seedCustomer(t, db, "alice")

	order, err := svc.PurchaseVouchers(ctx, customer)
	if err != nil {
		t.Fatalf("PurchaseVouchers on empty cart: %v", err)
	}
	if order != nil {
		t.Fatalf("order=%+v, want nil for empty cart", order)
	}

	var count int64
	if err := db.Model(&types.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if count != 0 {
		t.Fatalf("orders=%d after empty purchase, want 0", count)
	}
	if got := cartCount(t, db, customer); got != 0 {
		t.Fatalf("cart size=%d, want 0", got)
	}
}

// A cart voucher the customer already owns is billed but not re-added to
// the owned set.
func TestPurchaseWithVoucherAlreadyOwned(t *testing.T) {
	svc, db := newPurchaseService(t)
	ctx := context.Background()

	customer := seedCustomer(t, db, "alice")
	merchant := seedMerchant(t, db, "shop")
	voucherA := seedVoucher(t, db, merchant, "A", 4.00)
	voucherB := seedVoucher(t, db, merchant, "B", 1.00)

	if err := svc.AddOwnedVoucher(ctx, customer, voucherA); err != nil {
		t.Fatalf("AddOwnedVoucher: %v", err)
	}
	if err := svc.AddToCart(ctx, customer, voucherA); err != nil {
		t.Fatalf("AddToCart A: %v", err)
	}
	if err := svc.AddToCart(ctx, customer, voucherB); err != nil {
		t.Fatalf("AddToCart B: %v", err)
	}

	order, err := svc.PurchaseVouchers(ctx, customer)
	if err != nil {
		t.Fatalf("PurchaseVouchers: %v", err)
	}

	if got := ownedCount(t, db, customer); got != 2 {
		t.Fatalf("owned size=%d, want 2 (no duplicate row)", got)
	}
	if math.Abs(order.TotalPrice-5.00) > 1e-9 {
		t.Fatalf("total=%v, want 5.00 (already-owned voucher still billed)", order.TotalPrice)
	}
}

func TestPurchaseUnknownCustomer(t *testing.T) {
	svc, db := newPurchaseService(t)
	ctx := context.Background()

	customer := seedCustomer(t, db, "alice")
	if err := db.Delete(customer).Error; err != nil {
		t.Fatalf("delete customer: %v", err)
	}

	_, err := svc.PurchaseVouchers(ctx, customer)
	if !apierr.IsUserNotFound(err) {
		t.Fatalf("PurchaseVouchers err=%v, want UserNotFound", err)
	}
}

func TestListCartUnknownUser(t *testing.T) {
	svc, _ := newPurchaseService(t)

	_, err := svc.GetAllInCartVouchers(context.Background(), "nobody")
	if !apierr.IsUserNotFound(err) {
		t.Fatalf("GetAllInCartVouchers err=%v, want UserNotFound", err)
	}
}

func TestListCartEmptyIsNotAnError(t *testing.T) {
	svc, db := newPurchaseService(t)

	seedCustomer(t, db, "alice")
	vouchers, err := svc.GetAllInCartVouchers(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetAllInCartVouchers: %v", err)
	}
	if len(vouchers) != 0 {
		t.Fatalf("vouchers=%d, want 0", len(vouchers))
	}
}

// Concurrent AddToCart and Purchase on the same customer must settle in
// one of exactly two consistent states: the voucher purchased (owned,
// cart empty) or still staged (in cart, not owned). It must never be
// lost.
func TestConcurrentAddAndPurchase(t *testing.T) {
	svc, db := newPurchaseService(t)
	ctx := context.Background()

	customer := seedCustomer(t, db, "alice")
	merchant := seedMerchant(t, db, "shop")
	voucher := seedVoucher(t, db, merchant, "raced", 9.99)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := svc.AddToCart(ctx, customer, voucher); err != nil {
			t.Errorf("AddToCart: %v", err)
		}
	}()
	go func() {
		defer wg.Done()
		if _, err := svc.PurchaseVouchers(ctx, customer); err != nil {
			t.Errorf("PurchaseVouchers: %v", err)
		}
	}()
	wg.Wait()

	inCart := cartCount(t, db, customer)
	owned := ownedCount(t, db, customer)

	purchased := inCart == 0 && owned == 1
	staged := inCart == 1 && owned == 0
	if !purchased && !staged {
		t.Fatalf("inconsistent end state: cart=%d owned=%d", inCart, owned)
	}
}
