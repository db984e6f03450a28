package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/plantngo/backend/internal/logger"
	"github.com/plantngo/backend/internal/types"
)

const voucherCatalogKey = "voucher:catalog"

// VoucherCache is a best-effort read-through cache for the full voucher
// catalog. Misses and redis failures fall back to the database; merchant
// voucher writes invalidate the key.
type VoucherCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewVoucherCache(log *logger.Logger) (*VoucherCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &VoucherCache{
		log: log.With("service", "VoucherCache"),
		rdb: rdb,
		ttl: 5 * time.Minute,
	}, nil
}

func (vc *VoucherCache) GetCatalog(ctx context.Context) ([]*types.Voucher, bool) {
	raw, err := vc.rdb.Get(ctx, voucherCatalogKey).Bytes()
	if err != nil {
		if err != goredis.Nil {
			vc.log.Warn("Catalog cache read failed", "error", err)
		}
		return nil, false
	}

	var vouchers []*types.Voucher
	if err := json.Unmarshal(raw, &vouchers); err != nil {
		vc.log.Warn("Catalog cache payload corrupt, dropping", "error", err)
		_ = vc.rdb.Del(ctx, voucherCatalogKey).Err()
		return nil, false
	}
	return vouchers, true
}

func (vc *VoucherCache) SetCatalog(ctx context.Context, vouchers []*types.Voucher) {
	raw, err := json.Marshal(vouchers)
	if err != nil {
		vc.log.Warn("Catalog cache marshal failed", "error", err)
		return
	}
	if err := vc.rdb.Set(ctx, voucherCatalogKey, raw, vc.ttl).Err(); err != nil {
		vc.log.Warn("Catalog cache write failed", "error", err)
	}
}

func (vc *VoucherCache) InvalidateCatalog(ctx context.Context) {
	if err := vc.rdb.Del(ctx, voucherCatalogKey).Err(); err != nil {
		vc.log.Warn("Catalog cache invalidation failed", "error", err)
	}
}

func (vc *VoucherCache) Close() error {
	return vc.rdb.Close()
}
