package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dani2c/integracion-plataformas/internal/checkout"
	"github.com/dani2c/integracion-plataformas/internal/domain"
	"github.com/dani2c/integracion-plataformas/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockPipeline is a mock implementation of Pipeline
type MockPipeline struct {
	mock.Mock
}

func (m *MockPipeline) StartSale(ctx context.Context, ref domain.LocationRef, quantity int, amount float64) (*checkout.StartResult, error) {
	args := m.Called(ctx, ref, quantity, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.StartResult), args.Error(1)
}

func (m *MockPipeline) ConfirmSale(ctx context.Context, token string) (*checkout.Outcome, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Outcome), args.Error(1)
}

func (m *MockPipeline) LookupSale(ctx context.Context, token string) (*checkout.Outcome, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Outcome), args.Error(1)
}

func newCheckoutRouter(pipeline Pipeline) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewCheckoutHandler(zap.NewNop(), pipeline)

	router := gin.New()
	router.Use(middleware.ErrorHandler(zap.NewNop()))
	router.POST("/api/checkout/start", handler.StartCheckout)
	router.GET("/webpay/confirm", handler.ConfirmPayment)
	router.GET("/checkout/success", handler.CheckoutSuccess)
	router.GET("/checkout/failure", handler.CheckoutFailure)
	router.GET("/simulator/pay", handler.SimulatorPay)
	return router
}

func TestStartCheckout_Success(t *testing.T) {
	pipeline := new(MockPipeline)
	pipeline.On("StartSale", mock.Anything, domain.Branch(1), 2, 25980.0).
		Return(&checkout.StartResult{Token: "tok-1", URL: "http://localhost:8080/simulator/pay?token=tok-1"}, nil)

	router := newCheckoutRouter(pipeline)

	body, _ := json.Marshal(StartCheckoutRequest{Location: "branch:1", Quantity: 2, Amount: 25980})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout/start", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp StartCheckoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "tok-1", resp.Token)
	pipeline.AssertExpectations(t)
}

func TestStartCheckout_InvalidBody(t *testing.T) {
	router := newCheckoutRouter(new(MockPipeline))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout/start", bytes.NewReader([]byte(`{"quantity":0}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStartCheckout_InvalidLocation(t *testing.T) {
	router := newCheckoutRouter(new(MockPipeline))

	body, _ := json.Marshal(StartCheckoutRequest{Location: "bodega", Quantity: 1, Amount: 100})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout/start", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ValidationFailed")
}

func TestStartCheckout_GatewayUnavailable(t *testing.T) {
	pipeline := new(MockPipeline)
	pipeline.On("StartSale", mock.Anything, domain.Branch(1), 1, 100.0).
		Return(nil, domain.ErrGatewayUnavailable)

	router := newCheckoutRouter(pipeline)

	body, _ := json.Marshal(StartCheckoutRequest{Location: "branch:1", Quantity: 1, Amount: 100})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout/start", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "GatewayUnavailable")
}

func TestConfirmPayment_RedirectsToOutcome(t *testing.T) {
	pipeline := new(MockPipeline)
	pipeline.On("ConfirmSale", mock.Anything, "tok-1").
		Return(&checkout.Outcome{
			Status:      domain.StatusAuthorized,
			RedirectURL: "http://localhost:8080/checkout/success?token=tok-1",
		}, nil)

	router := newCheckoutRouter(pipeline)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/webpay/confirm?token_ws=tok-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://localhost:8080/checkout/success?token=tok-1", w.Header().Get("Location"))
}

func TestConfirmPayment_MissingToken(t *testing.T) {
	router := newCheckoutRouter(new(MockPipeline))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/webpay/confirm", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/checkout/failure")
}

func TestConfirmPayment_UnknownToken(t *testing.T) {
	pipeline := new(MockPipeline)
	pipeline.On("ConfirmSale", mock.Anything, "tok-nope").
		Return(nil, domain.ErrTokenNotFound)

	router := newCheckoutRouter(pipeline)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/webpay/confirm?token_ws=tok-nope", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "error=unknown+token")
}

func TestCheckoutSuccess_ShowsDetails(t *testing.T) {
	pipeline := new(MockPipeline)
	pipeline.On("LookupSale", mock.Anything, "tok-1").
		Return(&checkout.Outcome{
			Status: domain.StatusAuthorized,
			Details: checkout.Details{
				Status:            "AUTHORIZED",
				BuyOrder:          "order-1",
				Token:             "tok-1",
				Amount:            25980,
				AuthorizationCode: "123456",
				Location:          "branch:1",
				Quantity:          2,
				Remaining:         29,
			},
		}, nil)

	router := newCheckoutRouter(pipeline)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/checkout/success?token=tok-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var details checkout.Details
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &details))
	assert.Equal(t, "AUTHORIZED", details.Status)
	assert.Equal(t, 29, details.Remaining)
	pipeline.AssertNotCalled(t, "ConfirmSale", mock.Anything, mock.Anything)
}

func TestCheckoutSuccess_UnknownToken(t *testing.T) {
	pipeline := new(MockPipeline)
	pipeline.On("LookupSale", mock.Anything, "tok-nope").
		Return(nil, domain.ErrTokenNotFound)

	router := newCheckoutRouter(pipeline)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/checkout/success?token=tok-nope", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "error=unknown+token")
}

func TestCheckoutSuccess_PendingSaleNeverConfirms(t *testing.T) {
	pipeline := new(MockPipeline)
	pipeline.On("LookupSale", mock.Anything, "tok-pending").
		Return(nil, domain.ErrNotFinalized)

	router := newCheckoutRouter(pipeline)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/checkout/success?token=tok-pending", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "error=sale+not+confirmed")
	pipeline.AssertNotCalled(t, "ConfirmSale", mock.Anything, mock.Anything)
}

func TestCheckoutSuccess_RejectedSaleRedirectsToFailure(t *testing.T) {
	pipeline := new(MockPipeline)
	pipeline.On("LookupSale", mock.Anything, "tok-rej").
		Return(&checkout.Outcome{
			Status:      domain.StatusRejected,
			RedirectURL: "http://localhost:8080/checkout/failure?error=insufficient+stock",
		}, nil)

	router := newCheckoutRouter(pipeline)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/checkout/success?token=tok-rej", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/checkout/failure")
}

func TestCheckoutFailure(t *testing.T) {
	router := newCheckoutRouter(new(MockPipeline))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/checkout/failure?error=insufficient+stock", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "REJECTED")
	assert.Contains(t, w.Body.String(), "insufficient stock")
}

func TestSimulatorPay_RendersPaymentPage(t *testing.T) {
	router := newCheckoutRouter(new(MockPipeline))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/simulator/pay?token=tok-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "/webpay/confirm?token_ws=tok-1")
}
