// Package bootstrap wires shared runtime dependencies for the cmd entrypoints.
package bootstrap

import (
	"fmt"

	"quotary/internal/cache"
	"quotary/internal/config"
	"quotary/internal/database"
	"quotary/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemoData populates the database with generated users, authors,
	// quotes and engagement. Development use only.
	SeedDemoData bool
}

// InitRuntime connects to DB and Redis and optionally runs demo seeding.
// The Redis client may be nil when the server is unreachable; callers are
// expected to degrade gracefully.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemoData {
		if err := seed.Seed(db, seed.Options{}); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}
