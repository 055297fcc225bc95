// Package database opens the PostgreSQL pool that backs evaluation records
// and ties its health check and close to the service lifecycle.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/assessor/pkg/lifecycle"
)

// System is the evaluation database.
type System interface {
	// Connection returns the pool for repositories to query through.
	Connection() *sql.DB
	// Ping checks the database is reachable within the configured timeout.
	Ping(ctx context.Context) error
	// Start pings on startup and closes the pool on shutdown.
	Start(lc *lifecycle.Coordinator) error
}

type database struct {
	conn    *sql.DB
	logger  *slog.Logger
	timeout time.Duration
}

// New parses the connection string and sizes the pool. No connection is
// made until the first query or Ping.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	connCfg, err := pgx.ParseConfig(cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}
	connCfg.ConnectTimeout = cfg.ConnTimeoutDuration()

	db := stdlib.OpenDB(*connCfg)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &database{
		conn:    db,
		logger:  logger.With("system", "database", "host", connCfg.Host, "database", connCfg.Database),
		timeout: cfg.ConnTimeoutDuration(),
	}, nil
}

func (d *database) Connection() *sql.DB {
	return d.conn
}

func (d *database) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return d.conn.PingContext(ctx)
}

func (d *database) Start(lc *lifecycle.Coordinator) error {
	lc.OnStartup("database", func(ctx context.Context) error {
		if err := d.Ping(ctx); err != nil {
			d.logger.Error("database unreachable", "error", err)
			return err
		}
		d.logger.Info("database connected")
		return nil
	})

	lc.OnShutdown("database", func(context.Context) error {
		if err := d.conn.Close(); err != nil {
			return err
		}
		d.logger.Info("database closed")
		return nil
	})

	return nil
}
