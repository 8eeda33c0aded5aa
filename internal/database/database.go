// Package database opens the gorm connection used by the product store.
package database

import (
	"context"
	"errors"
	"fmt"

	"productapi/internal/config"
	"productapi/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNoDialector is returned for drivers that are not backed by gorm.
var ErrNoDialector = errors.New("driver has no gorm dialector")

// Dialector returns the gorm dialector for the configured driver.
func Dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("%s: %w", cfg.Driver, ErrNoDialector)
	}
}

// Connect opens the database, checks it is reachable and migrates the
// schema. What happens on failure depends on cfg.StartupPolicy: fail-fast
// returns the error, degrade logs it and returns a handle whose pool keeps
// trying to connect on later queries.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Warn),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := prepare(ctx, db, cfg); err != nil {
		if cfg.StartupPolicy == config.StartupDegrade {
			log.Error().Err(err).Str("driver", cfg.Driver).
				Msg("database unavailable at startup, serving without guaranteed persistence")
			return db, nil
		}
		sqlDB.Close()
		return nil, err
	}

	log.Info().Str("driver", cfg.Driver).Msg("database connection established")
	return db, nil
}

func prepare(ctx context.Context, db *gorm.DB, cfg config.DatabaseConfig) error {
	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to reach database: %w", err)
	}

	if cfg.AutoMigrate {
		if err := db.WithContext(ctx).AutoMigrate(&models.Product{}); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}
	return nil
}

// Ping reports whether the database answers within ctx.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
