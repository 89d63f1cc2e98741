// Package gateway adapts the checkout pipeline to an external payment
// authorizer. Two implementations exist: a deterministic local simulator and
// a client for the remote Webpay-style REST authorizer.
package gateway

import (
	"context"

	"github.com/dani2c/integracion-plataformas/internal/domain"
)

// CreateRequest is everything the authorizer needs to open a payment session.
type CreateRequest struct {
	BuyOrder  string
	SessionID string
	Amount    float64
	ReturnURL string
	Location  domain.LocationRef
	Quantity  int
}

// CreateResponse is the redirect handle for the hosted payment page.
type CreateResponse struct {
	Token string
	URL   string
}

// Authorization is the authorizer's verdict when a payment is committed.
type Authorization struct {
	Approved          bool
	AuthorizationCode string
	ResponseCode      int
}

// Recorder persists the INITIATED transaction as a side effect of create,
// binding session creation to durable bookkeeping. The transaction store
// implements it.
type Recorder interface {
	Create(ctx context.Context, txn *domain.Transaction) error
}

// Gateway is the capability set both adapter variants satisfy. Create never
// mutates stock, and Commit carries no side effects either: the confirmation
// pipeline alone decides what an authorization does to the ledger.
type Gateway interface {
	Create(ctx context.Context, req CreateRequest) (*CreateResponse, error)
	Commit(ctx context.Context, token string) (*Authorization, error)
}
