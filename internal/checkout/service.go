// Package checkout implements the payment-confirmation / stock-reservation
// pipeline: create a pending sale, hand control to the authorizer, and on the
// out-of-band callback settle the sale against the inventory ledger.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dani2c/integracion-plataformas/internal/domain"
	"github.com/dani2c/integracion-plataformas/internal/gateway"
	"github.com/dani2c/integracion-plataformas/internal/store"
	"go.uber.org/zap"
)

// Notifier receives low-stock events produced by successful debits.
type Notifier interface {
	Publish(event domain.LowStockEvent)
}

// Config tunes the pipeline.
type Config struct {
	// LowStockThreshold is the quantity below which a debit emits a
	// low-stock event.
	LowStockThreshold int
	// PublicBaseURL prefixes the return and landing URLs handed to the
	// gateway and to callers.
	PublicBaseURL string
	// MaxGatewayAttempts bounds retries against an unavailable gateway.
	MaxGatewayAttempts int
}

// StartResult is the redirect handle returned by StartSale.
type StartResult struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

// Details is the recorded outcome payload of a settled transaction. It is
// stored serialized on the transaction row and echoed on the landing pages.
type Details struct {
	Status            string  `json:"status"`
	BuyOrder          string  `json:"buy_order"`
	Token             string  `json:"token"`
	Amount            float64 `json:"amount"`
	AuthorizationCode string  `json:"authorization_code,omitempty"`
	Location          string  `json:"location"`
	Quantity          int     `json:"quantity"`
	Remaining         int     `json:"remaining,omitempty"`
	Error             string  `json:"error,omitempty"`
}

// Outcome is the tagged result of a confirmation: terminal status, where to
// send the buyer, and the recorded details.
type Outcome struct {
	Status      domain.Status
	RedirectURL string
	Details     Details
}

// Service is the confirmation pipeline. It exclusively owns transitions of
// transaction status and location quantity; handlers and adapters only ever
// go through it.
type Service struct {
	txns     *store.TransactionStore
	gw       gateway.Gateway
	notifier Notifier
	cfg      Config
	log      *zap.Logger
}

// NewService creates the confirmation pipeline service
func NewService(txns *store.TransactionStore, gw gateway.Gateway, notifier Notifier, cfg Config, logger *zap.Logger) *Service {
	if cfg.MaxGatewayAttempts < 1 {
		cfg.MaxGatewayAttempts = 1
	}
	return &Service{
		txns:     txns,
		gw:       gw,
		notifier: notifier,
		cfg:      cfg,
		log:      logger,
	}
}

// StartSale records an INITIATED transaction and returns the redirect handle
// for the hosted payment page. Stock is not touched here. A buy order
// collision is regenerated once; a second collision is surfaced as an error.
func (s *Service) StartSale(ctx context.Context, ref domain.LocationRef, quantity int, amount float64) (*StartResult, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		buyOrder := newBuyOrder()
		resp, err := s.createWithRetry(ctx, gateway.CreateRequest{
			BuyOrder:  buyOrder,
			SessionID: "session-" + buyOrder,
			Amount:    amount,
			ReturnURL: s.cfg.PublicBaseURL + "/webpay/confirm",
			Location:  ref,
			Quantity:  quantity,
		})
		if errors.Is(err, domain.ErrDuplicateBuyOrder) {
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}

		s.log.Info("Sale started",
			zap.String("buy_order", buyOrder),
			zap.String("location", ref.Key()),
			zap.Int("quantity", quantity),
			zap.Float64("amount", amount),
		)
		return &StartResult{Token: resp.Token, URL: resp.URL}, nil
	}
	return nil, fmt.Errorf("buy order generation kept colliding: %w", lastErr)
}

// ConfirmSale resolves the callback token and settles the sale. It is
// idempotent: a transaction that already reached a terminal status replays
// its stored outcome without touching the ledger again, and of two
// concurrent confirmations exactly one applies the debit.
//
// Whenever the gateway delivers a definitive verdict, the transaction leaves
// this method in a terminal status.
func (s *Service) ConfirmSale(ctx context.Context, token string) (*Outcome, error) {
	txn, err := s.txns.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if txn.Status.Terminal() {
		s.log.Info("Confirmation replayed",
			zap.String("token", token),
			zap.String("status", string(txn.Status)),
		)
		return s.storedOutcome(txn), nil
	}

	auth, err := s.commitWithRetry(ctx, token)
	if err != nil {
		// Reject so the transaction cannot linger in INITIATED; a later
		// redelivery replays this outcome. Preserve the real reason: an
		// exhausted retry budget and a definitive gateway refusal are
		// different failures on the audit row.
		reason := "payment gateway unavailable"
		if !errors.Is(err, domain.ErrGatewayUnavailable) {
			reason = err.Error()
		}
		return s.reject(ctx, txn, reason), nil
	}
	if !auth.Approved {
		msg := fmt.Sprintf("payment declined by authorizer (code %d)", auth.ResponseCode)
		return s.reject(ctx, txn, msg), nil
	}

	outcome, err := s.txns.Settle(ctx, txn, func(o store.SettleOutcome) string {
		return s.renderResult(txn, auth, o)
	})
	if errors.Is(err, domain.ErrAlreadyFinalized) {
		// Lost the race against a concurrent confirmation; hand back
		// whatever it recorded.
		settled, rerr := s.txns.GetByToken(ctx, token)
		if rerr != nil {
			return nil, rerr
		}
		return s.storedOutcome(settled), nil
	}
	if err != nil {
		s.log.Error("Settlement failed", zap.String("token", token), zap.Error(err))
		return s.reject(ctx, txn, "internal error during settlement"), nil
	}

	if outcome.Status == domain.StatusAuthorized {
		s.emitLowStock(txn, outcome)
		return &Outcome{
			Status:      domain.StatusAuthorized,
			RedirectURL: s.successURL(token),
			Details: Details{
				Status:            string(domain.StatusAuthorized),
				BuyOrder:          txn.BuyOrder,
				Token:             token,
				Amount:            txn.Amount,
				AuthorizationCode: auth.AuthorizationCode,
				Location:          txn.Location.Key(),
				Quantity:          txn.Quantity,
				Remaining:         outcome.Remaining,
			},
		}, nil
	}

	return &Outcome{
		Status:      domain.StatusRejected,
		RedirectURL: s.failureURL(outcome.DebitErr.Error()),
		Details: Details{
			Status:   string(domain.StatusRejected),
			BuyOrder: txn.BuyOrder,
			Token:    token,
			Amount:   txn.Amount,
			Location: txn.Location.Key(),
			Quantity: txn.Quantity,
			Error:    outcome.DebitErr.Error(),
		},
	}, nil
}

// LookupSale returns the recorded outcome of a settled sale. It never
// confirms: only the gateway callback drives settlement, so a transaction
// still INITIATED surfaces domain.ErrNotFinalized and stays untouched.
func (s *Service) LookupSale(ctx context.Context, token string) (*Outcome, error) {
	txn, err := s.txns.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !txn.Status.Terminal() {
		return nil, domain.ErrNotFinalized
	}
	return s.storedOutcome(txn), nil
}

// reject finalizes the transaction as REJECTED with the given reason. When a
// concurrent confirmation already finalized it, the stored outcome wins.
func (s *Service) reject(ctx context.Context, txn *domain.Transaction, reason string) *Outcome {
	details := Details{
		Status:   string(domain.StatusRejected),
		BuyOrder: txn.BuyOrder,
		Token:    txn.Token,
		Amount:   txn.Amount,
		Location: txn.Location.Key(),
		Quantity: txn.Quantity,
		Error:    reason,
	}
	payload, _ := json.Marshal(details)

	err := s.txns.Finalize(ctx, txn.ID, domain.StatusRejected, string(payload))
	if errors.Is(err, domain.ErrAlreadyFinalized) {
		if settled, rerr := s.txns.GetByToken(ctx, txn.Token); rerr == nil {
			return s.storedOutcome(settled)
		}
	} else if err != nil {
		s.log.Error("Failed to finalize rejection",
			zap.String("buy_order", txn.BuyOrder),
			zap.Error(err),
		)
	}

	return &Outcome{
		Status:      domain.StatusRejected,
		RedirectURL: s.failureURL(reason),
		Details:     details,
	}
}

func (s *Service) renderResult(txn *domain.Transaction, auth *gateway.Authorization, o store.SettleOutcome) string {
	details := Details{
		Status:   string(o.Status),
		BuyOrder: txn.BuyOrder,
		Token:    txn.Token,
		Amount:   txn.Amount,
		Location: txn.Location.Key(),
		Quantity: txn.Quantity,
	}
	if o.Status == domain.StatusAuthorized {
		details.AuthorizationCode = auth.AuthorizationCode
		details.Remaining = o.Remaining
	} else if o.DebitErr != nil {
		details.Error = o.DebitErr.Error()
	}
	payload, _ := json.Marshal(details)
	return string(payload)
}

// storedOutcome rebuilds the Outcome of an already-settled transaction from
// its recorded result payload.
func (s *Service) storedOutcome(txn *domain.Transaction) *Outcome {
	var details Details
	if txn.Result != "" {
		_ = json.Unmarshal([]byte(txn.Result), &details)
	}
	if details.BuyOrder == "" {
		details.BuyOrder = txn.BuyOrder
		details.Token = txn.Token
		details.Amount = txn.Amount
		details.Location = txn.Location.Key()
		details.Quantity = txn.Quantity
		details.Status = string(txn.Status)
	}

	redirect := s.successURL(txn.Token)
	if txn.Status == domain.StatusRejected {
		reason := details.Error
		if reason == "" {
			reason = "sale rejected"
		}
		redirect = s.failureURL(reason)
	}
	return &Outcome{Status: txn.Status, RedirectURL: redirect, Details: details}
}

func (s *Service) emitLowStock(txn *domain.Transaction, outcome *store.SettleOutcome) {
	if s.notifier == nil {
		return
	}
	// Fire only on the crossing so repeated sales below the threshold do
	// not spam subscribers.
	before := outcome.Remaining + txn.Quantity
	if outcome.Remaining < s.cfg.LowStockThreshold && before >= s.cfg.LowStockThreshold {
		s.notifier.Publish(domain.LowStockEvent{
			LocationID:        txn.Location.Key(),
			Name:              outcome.LocationName,
			RemainingQuantity: outcome.Remaining,
		})
		s.log.Info("Low stock event emitted",
			zap.String("location", txn.Location.Key()),
			zap.Int("remaining", outcome.Remaining),
		)
	}
}

func (s *Service) createWithRetry(ctx context.Context, req gateway.CreateRequest) (*gateway.CreateResponse, error) {
	var lastErr error
	for attempt := 0; attempt < s.cfg.MaxGatewayAttempts; attempt++ {
		if err := backoff(ctx, attempt); err != nil {
			return nil, err
		}
		resp, err := s.gw.Create(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !errors.Is(err, domain.ErrGatewayUnavailable) {
			return nil, err
		}
		lastErr = err
		s.log.Warn("Gateway create failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}
	return nil, lastErr
}

func (s *Service) commitWithRetry(ctx context.Context, token string) (*gateway.Authorization, error) {
	var lastErr error
	for attempt := 0; attempt < s.cfg.MaxGatewayAttempts; attempt++ {
		if err := backoff(ctx, attempt); err != nil {
			return nil, err
		}
		auth, err := s.gw.Commit(ctx, token)
		if err == nil {
			return auth, nil
		}
		if !errors.Is(err, domain.ErrGatewayUnavailable) {
			return nil, err
		}
		lastErr = err
		s.log.Warn("Gateway commit failed, retrying",
			zap.String("token", token),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}
	return nil, lastErr
}

// backoff sleeps 100ms, 200ms, 400ms... before retry attempts.
func backoff(ctx context.Context, attempt int) error {
	if attempt == 0 {
		return nil
	}
	delay := 100 * time.Millisecond * time.Duration(1<<uint(attempt-1))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

func (s *Service) successURL(token string) string {
	return fmt.Sprintf("%s/checkout/success?token=%s", s.cfg.PublicBaseURL, token)
}

func (s *Service) failureURL(reason string) string {
	return fmt.Sprintf("%s/checkout/failure?error=%s", s.cfg.PublicBaseURL, url.QueryEscape(reason))
}

func newBuyOrder() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}
