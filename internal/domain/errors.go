package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrLocationNotFound is returned when a location reference does not
	// resolve to an existing branch or warehouse row.
	ErrLocationNotFound = errors.New("location not found")

	// ErrTokenNotFound is returned when a confirmation token does not
	// resolve to any transaction.
	ErrTokenNotFound = errors.New("transaction not found for token")

	// ErrDuplicateBuyOrder is returned when a generated buy order collides
	// with an existing one.
	ErrDuplicateBuyOrder = errors.New("duplicate buy order")

	// ErrNotFinalized is returned by read-only outcome lookups when the
	// transaction is still waiting for its gateway callback.
	ErrNotFinalized = errors.New("transaction not finalized yet")

	// ErrAlreadyFinalized is returned when finalize runs against a
	// transaction that already reached a terminal status. Callers treat it
	// as an idempotent replay, not a failure.
	ErrAlreadyFinalized = errors.New("transaction already finalized")

	// ErrGatewayUnavailable is returned when the remote payment gateway
	// cannot be reached within the configured budget. Retryable.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)

// InsufficientStockError reports a debit that would overdraw a location.
type InsufficientStockError struct {
	Location  LocationRef
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock at %s: available=%d, requested=%d",
		e.Location.Key(), e.Available, e.Requested)
}
