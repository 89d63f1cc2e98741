package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dani2c/integracion-plataformas/internal/domain"
	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// TransactionStore is the durable record of every sale attempt. Rows are
// appended at sale start, updated exactly once at finalize time and never
// deleted, so the table doubles as an audit trail.
type TransactionStore struct {
	db  *DB
	log *zap.Logger
}

// NewTransactionStore creates a new transaction store
func NewTransactionStore(database *DB, logger *zap.Logger) *TransactionStore {
	return &TransactionStore{db: database, log: logger}
}

// Create persists a new INITIATED transaction. Returns
// domain.ErrDuplicateBuyOrder when the buy order (or its derived token)
// already exists.
func (s *TransactionStore) Create(ctx context.Context, txn *domain.Transaction) error {
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now().UTC()
	}
	txn.Status = domain.StatusInitiated

	result, err := s.db.db.ExecContext(ctx, `
		INSERT INTO transactions (buy_order, token, amount, status, location_ref, quantity, result, created_at)
		VALUES (?, ?, ?, ?, ?, ?, '', ?)`,
		txn.BuyOrder, txn.Token, txn.Amount, txn.Status, txn.Location.Key(), txn.Quantity,
		txn.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return domain.ErrDuplicateBuyOrder
		}
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	txn.ID, err = result.LastInsertId()
	if err != nil {
		return err
	}

	s.log.Info("Transaction created",
		zap.String("buy_order", txn.BuyOrder),
		zap.String("token", txn.Token),
		zap.String("location", txn.Location.Key()),
		zap.Int("quantity", txn.Quantity),
	)
	return nil
}

// GetByToken looks a transaction up by its confirmation token. Returns
// domain.ErrTokenNotFound when the token is unknown.
func (s *TransactionStore) GetByToken(ctx context.Context, token string) (*domain.Transaction, error) {
	row := s.db.db.QueryRowContext(ctx, `
		SELECT id, buy_order, token, amount, status, location_ref, quantity, result, created_at
		FROM transactions WHERE token = ?`, token)
	return scanTransaction(row)
}

func scanTransaction(row *sql.Row) (*domain.Transaction, error) {
	var (
		txn         domain.Transaction
		locationRef string
		createdAt   string
	)
	err := row.Scan(&txn.ID, &txn.BuyOrder, &txn.Token, &txn.Amount, &txn.Status,
		&locationRef, &txn.Quantity, &txn.Result, &createdAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	txn.Location, err = domain.ParseLocationRef(locationRef)
	if err != nil {
		return nil, fmt.Errorf("corrupt location_ref on transaction %d: %w", txn.ID, err)
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		txn.CreatedAt = t
	}
	return &txn, nil
}

// Finalize moves the transaction to a terminal status and records the result
// payload. The conditional WHERE status = 'INITIATED' makes the transition
// one-way: a second finalize observes domain.ErrAlreadyFinalized, which is how
// duplicate gateway callbacks are absorbed.
func (s *TransactionStore) Finalize(ctx context.Context, id int64, status domain.Status, result string) error {
	if !status.Terminal() {
		return fmt.Errorf("finalize requires a terminal status, got %s", status)
	}
	return finalize(ctx, s.db.db, id, status, result)
}

func finalize(ctx context.Context, q querier, id int64, status domain.Status, result string) error {
	res, err := q.ExecContext(ctx,
		`UPDATE transactions SET status = ?, result = ? WHERE id = ? AND status = 'INITIATED'`,
		status, result, id)
	if err != nil {
		return fmt.Errorf("failed to finalize transaction %d: %w", id, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrAlreadyFinalized
	}
	return nil
}

// SettleOutcome is the terminal state a settlement reached, plus the debit
// details needed for the result payload and low-stock events.
type SettleOutcome struct {
	Status       domain.Status
	Remaining    int
	LocationName string
	DebitErr     error // set when Status is REJECTED
}

// Settle claims the transaction, applies the stock debit and writes the
// terminal status, all inside one database transaction. The claim is a
// conditional write on status, so of two concurrent settlements for the same
// transaction exactly one debits stock; the other gets
// domain.ErrAlreadyFinalized without touching the ledger.
//
// resultPayload renders the serialized outcome stored on the row; it is
// supplied by the confirmation pipeline, which owns the payload shape.
func (s *TransactionStore) Settle(ctx context.Context, txn *domain.Transaction,
	resultPayload func(SettleOutcome) string) (*SettleOutcome, error) {

	tx, err := s.db.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin settlement: %w", err)
	}
	defer tx.Rollback()

	// Claim: provisional terminal write, flipped below if the debit fails.
	// Losing the claim means another settlement already ran.
	res, err := tx.ExecContext(ctx,
		`UPDATE transactions SET status = ? WHERE id = ? AND status = 'INITIATED'`,
		domain.StatusAuthorized, txn.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to claim transaction %d: %w", txn.ID, err)
	}
	if rows, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if rows == 0 {
		return nil, domain.ErrAlreadyFinalized
	}

	outcome := SettleOutcome{Status: domain.StatusAuthorized}

	debit, debitErr := reserve(ctx, tx, txn.Location, txn.Quantity)
	if debitErr != nil {
		var insufficient *domain.InsufficientStockError
		if !errors.As(debitErr, &insufficient) && !errors.Is(debitErr, domain.ErrLocationNotFound) {
			// Unexpected storage fault: abort, the caller finalizes
			// REJECTED through the standalone path.
			return nil, debitErr
		}
		outcome = SettleOutcome{Status: domain.StatusRejected, DebitErr: debitErr}
	} else {
		outcome.Remaining = debit.Remaining
		outcome.LocationName = debit.LocationName
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE transactions SET status = ?, result = ? WHERE id = ?`,
		outcome.Status, resultPayload(outcome), txn.ID); err != nil {
		return nil, fmt.Errorf("failed to record outcome for transaction %d: %w", txn.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit settlement: %w", err)
	}

	s.log.Info("Transaction settled",
		zap.String("buy_order", txn.BuyOrder),
		zap.String("status", string(outcome.Status)),
		zap.Int("remaining", outcome.Remaining),
	)
	return &outcome, nil
}
