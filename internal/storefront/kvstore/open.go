package kvstore

import (
	"context"
	"os"
	"path/filepath"

	"zaylux-store/internal/pkg/config"
	"zaylux-store/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Open builds the backend named by STOREFRONT_STORE.
func Open(ctx context.Context, cfg config.StorefrontConfig) (Store, error) {
	switch cfg.Store {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile, "":
		return NewFileStore(cfg.StorePath)
	case BackendSQLite:
		if err := os.MkdirAll(cfg.StorePath, 0o700); err != nil {
			return nil, errs.Wrapf(err, "create store directory %s", cfg.StorePath)
		}
		return OpenSQLite(ctx, filepath.Join(cfg.StorePath, "storefront.db"))
	case BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, errs.Wrapf(err, "connect redis %s", cfg.RedisAddr)
		}
		return NewRedisStore(client, cfg.RedisPrefix), nil
	default:
		return nil, errs.Newf("unknown store backend %q", cfg.Store)
	}
}
