package services

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plantngo/backend/internal/apierr"
	"github.com/plantngo/backend/internal/locks"
	"github.com/plantngo/backend/internal/repos"
	"github.com/plantngo/backend/internal/types"
)

func newProductService(t *testing.T) (ProductService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger()
	svc := NewProductService(
		db,
		log,
		locks.NewKeyedMutex(),
		repos.NewProductRepo(db, log),
		repos.NewIngredientRepo(db, log),
		repos.NewProductIngredientRepo(db, log),
	)
	return svc, db
}

func productEmission(t *testing.T, db *gorm.DB, productID uuid.UUID) float64 {
	t.Helper()
	var product types.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	return product.CarbonEmission
}

func wantEmission(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("carbon emission=%v, want %v", got, want)
	}
}

func TestEmissionRecomputedOnEveryChange(t *testing.T) {
	svc, db := newProductService(t)
	ctx := context.Background()

	merchant := seedMerchant(t, db, "shop")
	product := seedProduct(t, db, merchant, "oat latte")
	seedIngredient(t, db, "oats", 0.2)
	seedIngredient(t, db, "soy milk", 0.1)

	if _, err := svc.AddProductIngredient(ctx, product.ID, "oats", 50); err != nil {
		t.Fatalf("add oats: %v", err)
	}
	if _, err := svc.AddProductIngredient(ctx, product.ID, "soy milk", 100); err != nil {
		t.Fatalf("add soy milk: %v", err)
	}
	wantEmission(t, productEmission(t, db, product.ID), 20.0)

	if err := svc.DeleteProductIngredient(ctx, product.ID, "oats"); err != nil {
		t.Fatalf("remove oats: %v", err)
	}
	wantEmission(t, productEmission(t, db, product.ID), 10.0)

	if _, err := svc.UpdateProductIngredient(ctx, product.ID, "soy milk", 200); err != nil {
		t.Fatalf("update soy milk: %v", err)
	}
	wantEmission(t, productEmission(t, db, product.ID), 20.0)
}

func TestDuplicateIngredientRejected(t *testing.T) {
	svc, db := newProductService(t)
	ctx := context.Background()

	merchant := seedMerchant(t, db, "shop")
	product := seedProduct(t, db, merchant, "granola bar")
	seedIngredient(t, db, "oats", 0.2)

	if _, err := svc.AddProductIngredient(ctx, product.ID, "oats", 30); err != nil {
		t.Fatalf("first add: %v", err)
	}
	before := productEmission(t, db, product.ID)

	_, err := svc.AddProductIngredient(ctx, product.ID, "oats", 99)
	if !apierr.IsAlreadyExists(err) {
		t.Fatalf("second add err=%v, want AlreadyExists", err)
	}
	wantEmission(t, productEmission(t, db, product.ID), before)
}

func TestAddUnknownIngredient(t *testing.T) {
	svc, db := newProductService(t)
	ctx := context.Background()

	merchant := seedMerchant(t, db, "shop")
	product := seedProduct(t, db, merchant, "smoothie")

	_, err := svc.AddProductIngredient(ctx, product.ID, "stardust", 10)
	if !apierr.IsNotFound(err) {
		t.Fatalf("err=%v, want NotFound", err)
	}
}

func TestAddIngredientToUnknownProduct(t *testing.T) {
	svc, db := newProductService(t)
	ctx := context.Background()

	seedIngredient(t, db, "oats", 0.2)

	_, err := svc.AddProductIngredient(ctx, uuid.New(), "oats", 10)
	if !apierr.IsNotFound(err) {
		t.Fatalf("err=%v, want NotFound", err)
	}
}

func TestUpdateMissingAssociation(t *testing.T) {
	svc, db := newProductService(t)
	ctx := context.Background()

	merchant := seedMerchant(t, db, "shop")
	product := seedProduct(t, db, merchant, "smoothie")
	seedIngredient(t, db, "oats", 0.2)

	_, err := svc.UpdateProductIngredient(ctx, product.ID, "oats", 10)
	if !apierr.IsNotFound(err) {
		t.Fatalf("update err=%v, want NotFound", err)
	}
	if err := svc.DeleteProductIngredient(ctx, product.ID, "oats"); !apierr.IsNotFound(err) {
		t.Fatalf("delete err=%v, want NotFound", err)
	}
}

func TestEmissionZeroAfterLastIngredientRemoved(t *testing.T) {
	svc, db := newProductService(t)
	ctx := context.Background()

	merchant := seedMerchant(t, db, "shop")
	product := seedProduct(t, db, merchant, "water")
	seedIngredient(t, db, "lemon", 0.05)

	if _, err := svc.AddProductIngredient(ctx, product.ID, "lemon", 20); err != nil {
		t.Fatalf("add: %v", err)
	}
	wantEmission(t, productEmission(t, db, product.ID), 1.0)

	if err := svc.DeleteProductIngredient(ctx, product.ID, "lemon"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	wantEmission(t, productEmission(t, db, product.ID), 0.0)
}
