package output

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/powsim/powsim/internal/chain"
)

//go:embed migrations/*
var migrationsFS embed.FS

type PostgresHandler struct {
	pool *pgxpool.Pool
}

func NewPostgresHandler(ctx context.Context, connString string) (*PostgresHandler, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PostgreSQL connection string: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	handler := &PostgresHandler{pool: pool}

	// Run migrations. This is idempotent.
	if err = handler.runMigrations(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return handler, nil
}

// DB returns a database/sql view of the pool, for collectors that speak
// the standard interface.
func (h *PostgresHandler) DB() *sql.DB {
	return stdlib.OpenDBFromPool(h.pool)
}

// LatestHeight returns the height of the highest archived block, or ok=false
// when the archive is empty.
func (h *PostgresHandler) LatestHeight(ctx context.Context) (uint64, bool, error) {
	var height uint64
	err := h.pool.QueryRow(ctx, `
		SELECT height
		FROM powsim.blocks
		ORDER BY height DESC
		LIMIT 1
	`).Scan(&height)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get the latest archived block: %w", err)
	}
	return height, true, nil
}

// WriteBlock upserts the block row and its transaction rows in a single
// database transaction.
func (h *PostgresHandler) WriteBlock(ctx context.Context, block *chain.Block) error {
	data, err := json.Marshal(block)
	if err != nil {
		return fmt.Errorf("failed to marshal block %d: %w", block.Header.Height, err)
	}

	tx, err := h.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // Ensure rollback if commit is not reached

	_, err = tx.Exec(ctx, `
		INSERT INTO powsim.blocks (height, hash, data) VALUES ($1, $2, $3)
		ON CONFLICT (height) DO UPDATE SET hash = EXCLUDED.hash, data = EXCLUDED.data;
	`, block.Header.Height, block.Header.Hash, data)
	if err != nil {
		return fmt.Errorf("failed to write block: %w", err)
	}

	for i := range block.Transactions {
		txRecord := block.Transactions[i]
		txData, err := json.Marshal(txRecord)
		if err != nil {
			return fmt.Errorf("failed to marshal transaction: %w", err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO powsim.transactions (hash, block_height, data) VALUES ($1, $2, $3)
			ON CONFLICT (hash) DO UPDATE SET block_height = EXCLUDED.block_height, data = EXCLUDED.data;
		`, chain.HashTransaction(txRecord), block.Header.Height, txData)
		if err != nil {
			return fmt.Errorf("failed to write transaction: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (h *PostgresHandler) runMigrations() error {
	slog.Info("Running PostgreSQL migrations...")

	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	driver, err := migratepgx.WithInstance(stdlib.OpenDBFromPool(h.pool), &migratepgx.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", d, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	defer m.Close()

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (h *PostgresHandler) Close() error {
	slog.Info("Closing PostgreSQL connection pool")
	h.pool.Close()
	return nil
}
