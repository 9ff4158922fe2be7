package db

import (
	"context"
	"fmt"
	"time"

	"github.com/prehab-dev/prehab/internal/config"
	"github.com/prehab-dev/prehab/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDatabase opens the store described by cfg, retrying with a capped
// exponential backoff while the database comes up.
func ConnectDatabase(cfg config.Database, log zerolog.Logger) (*gorm.DB, error) {
	attempts := cfg.ConnectAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error

	for i := 1; i <= attempts; i++ {
		var db *gorm.DB

		db, err = open(cfg)
		if err == nil {
			log.Info().Str("driver", cfg.Driver).Int("attempt", i).Msg("database connected")
			return db, nil
		}

		log.Warn().Err(err).Int("attempt", i).Msg("database connection failed")

		if i < attempts {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			if wait > 10*time.Second {
				wait = 10 * time.Second
			}
			time.Sleep(wait)
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, err)
}

func open(cfg config.Database) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func MigrateDatabase(db *gorm.DB) error {
	for _, model := range models.All() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// Ping checks the store is reachable within timeout.
func Ping(ctx context.Context, db *gorm.DB, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}
