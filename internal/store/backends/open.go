// Package backends selects and opens the snapshot KV named by configuration.
package backends

import (
	"context"
	"fmt"
	"strings"

	"bikerepair/internal/config"
	"bikerepair/internal/store"
	"bikerepair/internal/store/bunkv"
	"bikerepair/internal/store/memory"
	"bikerepair/internal/store/postgres"
	"bikerepair/internal/store/redis"
	"bikerepair/internal/store/sqlite"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Open returns the KV for cfg.StorageDriver and a func releasing its
// resources. SQL backends have their table created on open.
func Open(ctx context.Context, cfg config.Config) (store.KV, func() error, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.StorageDriver)) {
	case DriverMemory:
		return memory.New(), func() error { return nil }, nil

	case DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		if err := bunkv.EnsureSchema(ctx, db); err != nil {
			_ = sqlite.Close(db)
			return nil, nil, fmt.Errorf("sqlite schema: %w", err)
		}
		return bunkv.New(db), func() error { return sqlite.Close(db) }, nil

	case DriverPostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseURL, postgres.PoolConfig{
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxLifetime: cfg.DBConnMaxLifetime,
			ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := bunkv.EnsureSchema(ctx, db); err != nil {
			_ = postgres.Close(db)
			return nil, nil, fmt.Errorf("postgres schema: %w", err)
		}
		return bunkv.New(db), func() error { return postgres.Close(db) }, nil

	case DriverRedis:
		kv := redis.New(redis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := kv.Ping(ctx); err != nil {
			_ = kv.Close()
			return nil, nil, fmt.Errorf("ping redis %s: %w", cfg.RedisAddr, err)
		}
		return kv, kv.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", store.ErrUnknownDriver, cfg.StorageDriver)
	}
}
