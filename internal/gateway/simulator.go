package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/dani2c/integracion-plataformas/internal/domain"
	"go.uber.org/zap"
)

// Simulator is the deterministic local authorizer used when no real gateway
// is configured. Tokens are derived from the buy order, so replaying a create
// for the same buy order yields the same token, and the hosted payment page
// is a local route that bounces straight back to the confirmation callback.
type Simulator struct {
	recorder Recorder
	baseURL  string
	authCode string
	log      *zap.Logger
}

// NewSimulator creates a simulator gateway
func NewSimulator(recorder Recorder, baseURL, authCode string, logger *zap.Logger) *Simulator {
	return &Simulator{
		recorder: recorder,
		baseURL:  baseURL,
		authCode: authCode,
		log:      logger,
	}
}

// Create mints the token and persists the INITIATED transaction. No stock is
// touched here; that only happens at confirmation time.
func (s *Simulator) Create(ctx context.Context, req CreateRequest) (*CreateResponse, error) {
	token := "tok-" + req.BuyOrder

	txn := &domain.Transaction{
		BuyOrder:  req.BuyOrder,
		Token:     token,
		Amount:    req.Amount,
		Location:  req.Location,
		Quantity:  req.Quantity,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.recorder.Create(ctx, txn); err != nil {
		return nil, err
	}

	s.log.Info("Simulated payment session created",
		zap.String("buy_order", req.BuyOrder),
		zap.String("token", token),
	)
	return &CreateResponse{
		Token: token,
		URL:   fmt.Sprintf("%s/simulator/pay?token=%s", s.baseURL, token),
	}, nil
}

// Commit always approves with the configured authorization code. The verdict
// is computed, never stored, so calling it any number of times is harmless.
func (s *Simulator) Commit(ctx context.Context, token string) (*Authorization, error) {
	s.log.Info("Simulated payment committed", zap.String("token", token))
	return &Authorization{
		Approved:          true,
		AuthorizationCode: s.authCode,
	}, nil
}
