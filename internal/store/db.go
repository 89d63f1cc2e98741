package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// DB wraps the SQLite connection following the single writer principle:
// the pool is capped at one connection, so statements never interleave and a
// sql.Tx holds the writer for its whole duration.
type DB struct {
	db  *sql.DB
	log *zap.Logger
}

// Open opens (or creates) the SQLite database at path and initializes the
// schema. Use ":memory:" for tests.
func Open(path string, logger *zap.Logger) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=1&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	d := &DB{db: db, log: logger}
	if err := d.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return d, nil
}

// Ping checks the database connection
func (d *DB) Ping() error {
	return d.db.Ping()
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) initSchema() error {
	schema := `
	-- Branches: per-branch sellable stock
	CREATE TABLE IF NOT EXISTS branches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 0,
		price INTEGER NOT NULL DEFAULT 0,
		CHECK(quantity >= 0),
		CHECK(price >= 0)
	);

	-- Main warehouse: singleton row, id fixed at 1
	CREATE TABLE IF NOT EXISTS main_warehouse (
		id INTEGER PRIMARY KEY CHECK(id = 1),
		quantity INTEGER NOT NULL DEFAULT 0,
		price INTEGER NOT NULL DEFAULT 0,
		CHECK(quantity >= 0)
	);

	-- Transactions: one row per sale attempt, appended at start, updated
	-- exactly once at finalize, never deleted
	CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		buy_order TEXT UNIQUE NOT NULL,
		token TEXT UNIQUE NOT NULL,
		amount REAL NOT NULL,
		status TEXT NOT NULL DEFAULT 'INITIATED',
		location_ref TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		result TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		CHECK(status IN ('INITIATED', 'AUTHORIZED', 'REJECTED')),
		CHECK(quantity > 0)
	);

	-- Products: written only by the catalog ingestion service
	CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT UNIQUE NOT NULL,
		description TEXT,
		price REAL NOT NULL,
		stock INTEGER NOT NULL DEFAULT 0,
		photo BLOB,
		created_at TEXT NOT NULL,
		CHECK(price > 0),
		CHECK(stock >= 0)
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_token ON transactions(token);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_buy_order ON transactions(buy_order);
	CREATE INDEX IF NOT EXISTS idx_transactions_status ON transactions(status);
	`

	if _, err := d.db.Exec(schema); err != nil {
		return err
	}

	// The warehouse row must always exist so snapshot and debit queries
	// can rely on it.
	_, err := d.db.Exec(`INSERT OR IGNORE INTO main_warehouse (id, quantity, price) VALUES (1, 0, 0)`)
	return err
}

// SeedDemo loads the demo inventory used by the storefront dashboard. Safe to
// call more than once; it only inserts when the branches table is empty.
func (d *DB) SeedDemo(ctx context.Context) error {
	var count int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM branches`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	branches := []struct {
		name     string
		quantity int
		price    int
	}{
		{"Sucursal 1", 31, 333},
		{"Sucursal 2", 23, 222},
		{"Sucursal 3", 100, 1111},
	}
	for _, b := range branches {
		if _, err := d.db.ExecContext(ctx,
			`INSERT INTO branches (name, quantity, price) VALUES (?, ?, ?)`,
			b.name, b.quantity, b.price); err != nil {
			return err
		}
	}

	if _, err := d.db.ExecContext(ctx,
		`UPDATE main_warehouse SET quantity = ?, price = ? WHERE id = 1`, 101, 999); err != nil {
		return err
	}

	d.log.Info("Demo inventory seeded")
	return nil
}
