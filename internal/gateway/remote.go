package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dani2c/integracion-plataformas/internal/domain"
	"go.uber.org/zap"
)

const transactionsPath = "/rswebpaytransaction/api/webpay/v1.2/transactions"

// Remote speaks the hosted-payment REST contract of the real authorizer.
// Every call runs under the client timeout; transport faults and 5xx answers
// surface as domain.ErrGatewayUnavailable so the pipeline can retry, while a
// definitive decline comes back as an unapproved Authorization.
type Remote struct {
	recorder     Recorder
	baseURL      string
	commerceCode string
	apiKey       string
	client       *http.Client
	log          *zap.Logger
}

// NewRemote creates a client for the remote authorizer.
func NewRemote(recorder Recorder, baseURL, commerceCode, apiKey string, timeout time.Duration, logger *zap.Logger) *Remote {
	return &Remote{
		recorder:     recorder,
		baseURL:      baseURL,
		commerceCode: commerceCode,
		apiKey:       apiKey,
		client:       &http.Client{Timeout: timeout},
		log:          logger,
	}
}

type remoteCreateRequest struct {
	BuyOrder  string  `json:"buy_order"`
	SessionID string  `json:"session_id"`
	Amount    float64 `json:"amount"`
	ReturnURL string  `json:"return_url"`
}

type remoteCreateResponse struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

type remoteCommitResponse struct {
	BuyOrder          string  `json:"buy_order"`
	Status            string  `json:"status"`
	Amount            float64 `json:"amount"`
	AuthorizationCode string  `json:"authorization_code"`
	ResponseCode      int     `json:"response_code"`
	PaymentTypeCode   string  `json:"payment_type_code"`
}

// Create opens a payment session with the remote authorizer and records the
// INITIATED transaction under the token it returned.
func (r *Remote) Create(ctx context.Context, req CreateRequest) (*CreateResponse, error) {
	body, err := json.Marshal(remoteCreateRequest{
		BuyOrder:  req.BuyOrder,
		SessionID: req.SessionID,
		Amount:    req.Amount,
		ReturnURL: req.ReturnURL,
	})
	if err != nil {
		return nil, err
	}

	var created remoteCreateResponse
	if err := r.do(ctx, http.MethodPost, r.baseURL+transactionsPath, body, &created); err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		BuyOrder:  req.BuyOrder,
		Token:     created.Token,
		Amount:    req.Amount,
		Location:  req.Location,
		Quantity:  req.Quantity,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.recorder.Create(ctx, txn); err != nil {
		return nil, err
	}

	r.log.Info("Remote payment session created",
		zap.String("buy_order", req.BuyOrder),
		zap.String("token", created.Token),
	)
	return &CreateResponse{
		Token: created.Token,
		URL:   fmt.Sprintf("%s?token_ws=%s", created.URL, created.Token),
	}, nil
}

// Commit asks the authorizer for the final verdict on the token.
func (r *Remote) Commit(ctx context.Context, token string) (*Authorization, error) {
	var committed remoteCommitResponse
	url := fmt.Sprintf("%s%s/%s", r.baseURL, transactionsPath, token)
	if err := r.do(ctx, http.MethodPut, url, nil, &committed); err != nil {
		return nil, err
	}

	approved := committed.Status == "AUTHORIZED" && committed.ResponseCode == 0
	r.log.Info("Remote payment committed",
		zap.String("token", token),
		zap.String("status", committed.Status),
		zap.Bool("approved", approved),
	)
	return &Authorization{
		Approved:          approved,
		AuthorizationCode: committed.AuthorizationCode,
		ResponseCode:      committed.ResponseCode,
	}, nil
}

func (r *Remote) do(ctx context.Context, method, url string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Tbk-Api-Key-Id", r.commerceCode)
	req.Header.Set("Tbk-Api-Key-Secret", r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: authorizer returned %d", domain.ErrGatewayUnavailable, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("authorizer rejected request: %d %s", resp.StatusCode, string(payload))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode authorizer response: %w", err)
	}
	return nil
}
