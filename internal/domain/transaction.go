package domain

import "time"

// Status is the lifecycle state of a sale attempt. INITIATED is the only
// non-terminal state; a transaction moves to AUTHORIZED or REJECTED exactly
// once and never back.
type Status string

const (
	StatusInitiated  Status = "INITIATED"
	StatusAuthorized Status = "AUTHORIZED"
	StatusRejected   Status = "REJECTED"
)

// Terminal reports whether no further status transition is permitted.
func (s Status) Terminal() bool {
	return s == StatusAuthorized || s == StatusRejected
}

// Transaction is one sale attempt. The buy order and confirmation token are
// both unique and immutable after creation; Result holds the serialized
// outcome payload written at finalize time.
type Transaction struct {
	ID        int64
	BuyOrder  string
	Token     string
	Amount    float64
	Status    Status
	Location  LocationRef
	Quantity  int
	Result    string
	CreatedAt time.Time
}

// LowStockEvent is the ephemeral message pushed to notification subscribers
// when a debit leaves a location below the configured threshold.
type LowStockEvent struct {
	LocationID        string `json:"locationId"`
	Name              string `json:"name"`
	RemainingQuantity int    `json:"remainingQuantity"`
}
