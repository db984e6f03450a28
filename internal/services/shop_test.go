package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plantngo/backend/internal/apierr"
	"github.com/plantngo/backend/internal/repos"
)

func newShopService(t *testing.T) (ShopService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger()
	svc := NewShopService(
		db,
		log,
		repos.NewVoucherRepo(db, log),
		repos.NewProductRepo(db, log),
		repos.NewIngredientRepo(db, log),
		nil,
	)
	return svc, db
}

func TestGetVoucherScopedToMerchant(t *testing.T) {
	svc, db := newShopService(t)
	ctx := context.Background()

	merchantA := seedMerchant(t, db, "shop-a")
	merchantB := seedMerchant(t, db, "shop-b")
	voucher := seedVoucher(t, db, merchantA, "A only", 1.00)

	if _, err := svc.GetVoucher(ctx, merchantA, voucher.ID); err != nil {
		t.Fatalf("GetVoucher own merchant: %v", err)
	}

	// The same voucher id under another merchant must not resolve.
	_, err := svc.GetVoucher(ctx, merchantB, voucher.ID)
	if !apierr.IsNotFound(err) {
		t.Fatalf("cross-merchant GetVoucher err=%v, want NotFound", err)
	}
}

func TestGetVoucherUnknownID(t *testing.T) {
	svc, db := newShopService(t)

	merchant := seedMerchant(t, db, "shop")
	_, err := svc.GetVoucher(context.Background(), merchant, uuid.New())
	if !apierr.IsNotFound(err) {
		t.Fatalf("err=%v, want NotFound", err)
	}
}

func TestCreateIngredientDuplicateName(t *testing.T) {
	svc, _ := newShopService(t)
	ctx := context.Background()

	if _, err := svc.CreateIngredient(ctx, "oats", 0.2); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.CreateIngredient(ctx, "oats", 0.3)
	if !apierr.IsAlreadyExists(err) {
		t.Fatalf("duplicate create err=%v, want AlreadyExists", err)
	}
}
