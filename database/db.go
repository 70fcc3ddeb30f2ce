package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"aukra/config"
)

// Connect opens the PostgreSQL pool. Idle connections are not kept so a
// serverless database can suspend between requests.
func Connect(cfg config.DBConfig) (*sql.DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		zap.S().Warnw("database ping failed, proceeding", "error", err)
	}

	db.SetMaxIdleConns(0)
	db.SetMaxOpenConns(cfg.MaxOpenConns)

	zap.S().Infow("connected to PostgreSQL", "max_open_conns", cfg.MaxOpenConns)
	return db, nil
}
