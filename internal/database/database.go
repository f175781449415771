package database

import (
	"context"
	"fmt"
	"time"

	rootdb "practice-quest/database"
	"practice-quest/internal/config"
	"practice-quest/internal/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // Oracle driver (pure Go)
	"go.uber.org/zap"
)

// Connect opens the Oracle connection pool with the configured driver.
func Connect(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)
	switch cfg.DB.Driver {
	case "godror":
		db, err = rootdb.OpenGodror(cfg.GetDSN())
	default:
		db, err = sqlx.Open("oracle", cfg.GetDSN())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open Oracle database: %w", err)
	}

	if cfg.DB.MaxOpen > 0 {
		db.SetMaxOpenConns(cfg.DB.MaxOpen)
	}
	if cfg.DB.MaxIdle > 0 {
		db.SetMaxIdleConns(cfg.DB.MaxIdle)
	}
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping Oracle database: %w", err)
	}

	logger.Get().Info("Successfully connected to Oracle database", zap.String("driver", cfg.DB.Driver))
	return db, nil
}
