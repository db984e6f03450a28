package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/plantngo/backend/internal/logger"
	"github.com/plantngo/backend/internal/types"
)

var testDBCounter int64

// newTestDB opens a private in-memory sqlite database with the full
// schema. The pool is pinned to one connection so every session sees the
// same shared-cache database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&types.Customer{},
		&types.Merchant{},
		&types.Voucher{},
		&types.CartItem{},
		&types.OwnedVoucher{},
		&types.Product{},
		&types.Ingredient{},
		&types.ProductIngredient{},
		&types.Order{},
		&types.OrderItem{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

func newTestLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func seedCustomer(t *testing.T, db *gorm.DB, username string) *types.Customer {
	t.Helper()
	customer := &types.Customer{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
	}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return customer
}

func seedMerchant(t *testing.T, db *gorm.DB, username string) *types.Merchant {
	t.Helper()
	merchant := &types.Merchant{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		Company:  "GreenGrocer",
	}
	if err := db.Create(merchant).Error; err != nil {
		t.Fatalf("seed merchant: %v", err)
	}
	return merchant
}

func seedVoucher(t *testing.T, db *gorm.DB, merchant *types.Merchant, description string, price float64) *types.Voucher {
	t.Helper()
	voucher := &types.Voucher{
		MerchantID:  merchant.ID,
		Description: description,
		Price:       price,
	}
	if err := db.Create(voucher).Error; err != nil {
		t.Fatalf("seed voucher: %v", err)
	}
	return voucher
}

func seedProduct(t *testing.T, db *gorm.DB, merchant *types.Merchant, name string) *types.Product {
	t.Helper()
	product := &types.Product{
		MerchantID: merchant.ID,
		Name:       name,
		Price:      5.0,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func seedIngredient(t *testing.T, db *gorm.DB, name string, emissionPerGram float64) *types.Ingredient {
	t.Helper()
	ingredient := &types.Ingredient{
		Name:            name,
		EmissionPerGram: emissionPerGram,
	}
	if err := db.Create(ingredient).Error; err != nil {
		t.Fatalf("seed ingredient: %v", err)
	}
	return ingredient
}
