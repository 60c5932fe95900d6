package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hngpack/internal/config"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNotConfigured is returned by Open when DATABASE_URL or DATABASE_NAME is missing.
var ErrNotConfigured = errors.New("database is not configured")

// Open picks a backend from the URL scheme and connects to it.
//
//	mongodb://, mongodb+srv://   MongoDB
//	postgres://, postgresql://   PostgreSQL through GORM
//	sqlite://<path>, file:...    SQLite through GORM
//	redis://, rediss://          Redis lists
//	memory://                    process memory
//
// The returned repository is nil whenever err is non-nil.
func Open(ctx context.Context, cfg config.DatabaseConfig) (DocumentRepository, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	scheme, _, _ := strings.Cut(cfg.URL, ":")
	switch strings.ToLower(scheme) {
	case "mongodb", "mongodb+srv":
		repo, err := NewMongoDocumentRepository(ctx, cfg.URL, cfg.Name)
		if err != nil {
			return nil, err
		}
		return repo, nil

	case "postgres", "postgresql":
		return openGORM(ctx, postgres.Open(cfg.URL), cfg.Name)

	case "sqlite":
		return openGORM(ctx, sqlite.Open(strings.TrimPrefix(cfg.URL, "sqlite://")), cfg.Name)

	case "file":
		return openGORM(ctx, sqlite.Open(cfg.URL), cfg.Name)

	case "redis", "rediss":
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		rdb := redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		return NewRedisDocumentRepository(rdb, cfg.Name), nil

	case "memory":
		return NewMockDocumentRepository(cfg.Name), nil

	default:
		return nil, fmt.Errorf("unsupported database url scheme %q", scheme)
	}
}

// openGORM connects, pings and migrates within ctx.
func openGORM(ctx context.Context, dialector gorm.Dialector, name string) (DocumentRepository, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repo := NewGORMDocumentRepository(db, name)
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := repo.AutoMigrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return repo, nil
}
