package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/plantngo/backend/internal/logger"
	"github.com/plantngo/backend/internal/types"
	"github.com/plantngo/backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	log.Info("Loading environment variables...")
	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "plantngo", log)
	log.Debug("Environment variables loaded")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	log.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("Failed to connect to Postgres: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		log.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("Failed to enable uuid-ossp extension: %w", err)
	}
	log.Info("uuid-ossp extension enabled")

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
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
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	s.log.Info("Configuring foreign key relationships for postgres tables...")
	constraints := []struct {
		table string
		name  string
		ddl   string
	}{
		{"cart_item", "fk_cart_item_customer_id", `ALTER TABLE "cart_item" ADD CONSTRAINT "fk_cart_item_customer_id" FOREIGN KEY ("customer_id") REFERENCES "customer"("id") ON DELETE CASCADE`},
		{"cart_item", "fk_cart_item_voucher_id", `ALTER TABLE "cart_item" ADD CONSTRAINT "fk_cart_item_voucher_id" FOREIGN KEY ("voucher_id") REFERENCES "voucher"("id") ON DELETE CASCADE`},
		{"owned_voucher", "fk_owned_voucher_customer_id", `ALTER TABLE "owned_voucher" ADD CONSTRAINT "fk_owned_voucher_customer_id" FOREIGN KEY ("customer_id") REFERENCES "customer"("id") ON DELETE CASCADE`},
		{"owned_voucher", "fk_owned_voucher_voucher_id", `ALTER TABLE "owned_voucher" ADD CONSTRAINT "fk_owned_voucher_voucher_id" FOREIGN KEY ("voucher_id") REFERENCES "voucher"("id") ON DELETE CASCADE`},
		{"voucher", "fk_voucher_merchant_id", `ALTER TABLE "voucher" ADD CONSTRAINT "fk_voucher_merchant_id" FOREIGN KEY ("merchant_id") REFERENCES "merchant"("id") ON DELETE CASCADE`},
		{"product", "fk_product_merchant_id", `ALTER TABLE "product" ADD CONSTRAINT "fk_product_merchant_id" FOREIGN KEY ("merchant_id") REFERENCES "merchant"("id") ON DELETE CASCADE`},
		{"product_ingredient", "fk_product_ingredient_product_id", `ALTER TABLE "product_ingredient" ADD CONSTRAINT "fk_product_ingredient_product_id" FOREIGN KEY ("product_id") REFERENCES "product"("id") ON DELETE CASCADE`},
		{"product_ingredient", "fk_product_ingredient_ingredient_id", `ALTER TABLE "product_ingredient" ADD CONSTRAINT "fk_product_ingredient_ingredient_id" FOREIGN KEY ("ingredient_id") REFERENCES "ingredient"("id") ON DELETE CASCADE`},
		{"orders", "fk_orders_customer_id", `ALTER TABLE "orders" ADD CONSTRAINT "fk_orders_customer_id" FOREIGN KEY ("customer_id") REFERENCES "customer"("id") ON DELETE CASCADE`},
		{"order_item", "fk_order_item_order_id", `ALTER TABLE "order_item" ADD CONSTRAINT "fk_order_item_order_id" FOREIGN KEY ("order_id") REFERENCES "orders"("id") ON DELETE CASCADE`},
	}
	for _, c := range constraints {
		drop := fmt.Sprintf(`ALTER TABLE %q DROP CONSTRAINT IF EXISTS %q`, c.table, c.name)
		if err := s.db.Exec(drop).Error; err != nil {
			return fmt.Errorf("Failed to drop %s: %w", c.name, err)
		}
		if err := s.db.Exec(c.ddl).Error; err != nil {
			return fmt.Errorf("Failed to add %s: %w", c.name, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
