package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dani2c/integracion-plataformas/internal/domain"
	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// ErrProductExists is returned when ingesting a product whose name is taken.
var ErrProductExists = errors.New("product already exists")

// ProductStore writes catalog products. Only the ingestion service holds one;
// the confirmation pipeline never touches this table.
type ProductStore struct {
	db  *DB
	log *zap.Logger
}

// NewProductStore creates a new product store
func NewProductStore(database *DB, logger *zap.Logger) *ProductStore {
	return &ProductStore{db: database, log: logger}
}

// Create inserts a new product row.
func (s *ProductStore) Create(ctx context.Context, p *domain.Product) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	result, err := s.db.db.ExecContext(ctx, `
		INSERT INTO products (name, description, price, stock, photo, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.Name, p.Description, p.Price, p.Stock, p.Photo, p.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return ErrProductExists
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	p.ID, err = result.LastInsertId()
	if err != nil {
		return err
	}

	s.log.Info("Product ingested",
		zap.String("name", p.Name),
		zap.Float64("price", p.Price),
		zap.Int("stock", p.Stock),
	)
	return nil
}

// CountProducts returns the number of ingested products.
func (s *ProductStore) CountProducts(ctx context.Context) (int, error) {
	var count int
	err := s.db.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}
