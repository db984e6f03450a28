package services

import (
	"context"
	"testing"

	"github.com/plantngo/backend/internal/apierr"
	"github.com/plantngo/backend/internal/locks"
	"github.com/plantngo/backend/internal/repos"
	"github.com/plantngo/backend/internal/types"
)

func TestGetCustomerByUsernameUnknown(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger()
	svc := NewCustomerService(db, log, repos.NewCustomerRepo(db, log), repos.NewCartRepo(db, log), repos.NewOwnedVoucherRepo(db, log))

	_, err := svc.GetCustomerByUsername(context.Background(), "ghost")
	if !apierr.IsUserNotFound(err) {
		t.Fatalf("err=%v, want UserNotFound", err)
	}
}

func TestDeleteCustomerCascadesCartAndLedger(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger()
	ctx := context.Background()

	customerSvc := NewCustomerService(db, log, repos.NewCustomerRepo(db, log), repos.NewCartRepo(db, log), repos.NewOwnedVoucherRepo(db, log))
	purchaseSvc := NewVoucherPurchaseService(
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

	customer := seedCustomer(t, db, "alice")
	merchant := seedMerchant(t, db, "shop")
	voucherA := seedVoucher(t, db, merchant, "A", 1.00)
	voucherB := seedVoucher(t, db, merchant, "B", 2.00)

	if err := purchaseSvc.AddToCart(ctx, customer, voucherA); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if err := purchaseSvc.AddOwnedVoucher(ctx, customer, voucherB); err != nil {
		t.Fatalf("AddOwnedVoucher: %v", err)
	}

	if err := customerSvc.DeleteCustomer(ctx, "alice"); err != nil {
		t.Fatalf("DeleteCustomer: %v", err)
	}

	var cartRows, ownedRows, customers int64
	if err := db.Model(&types.CartItem{}).Count(&cartRows).Error; err != nil {
		t.Fatalf("count cart rows: %v", err)
	}
	if err := db.Model(&types.OwnedVoucher{}).Count(&ownedRows).Error; err != nil {
		t.Fatalf("count owned rows: %v", err)
	}
	if err := db.Model(&types.Customer{}).Count(&customers).Error; err != nil {
		t.Fatalf("count customers: %v", err)
	}
	if cartRows != 0 || ownedRows != 0 || customers != 0 {
		t.Fatalf("leftover rows after delete: cart=%d owned=%d customers=%d", cartRows, ownedRows, customers)
	}
}
