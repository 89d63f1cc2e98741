package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dani2c/integracion-plataformas/internal/checkout"
	"github.com/dani2c/integracion-plataformas/internal/domain"
	apperrors "github.com/dani2c/integracion-plataformas/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pipeline is the slice of the confirmation pipeline the handlers need.
type Pipeline interface {
	StartSale(ctx context.Context, ref domain.LocationRef, quantity int, amount float64) (*checkout.StartResult, error)
	ConfirmSale(ctx context.Context, token string) (*checkout.Outcome, error)
	LookupSale(ctx context.Context, token string) (*checkout.Outcome, error)
}

type CheckoutHandler struct {
	logger   *zap.Logger
	pipeline Pipeline
}

func NewCheckoutHandler(logger *zap.Logger, pipeline Pipeline) *CheckoutHandler {
	return &CheckoutHandler{
		logger:   logger,
		pipeline: pipeline,
	}
}

// StartCheckout handles POST /api/checkout/start
// @Summary      Iniciar una venta
// @Description  Crea una transacción pendiente y retorna la URL de pago. El stock no se descuenta hasta la confirmación.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request  body      StartCheckoutRequest  true  "Sale to start"
// @Success      200      {object}  StartCheckoutResponse
// @Failure      400      {object}  ErrorResponse  "Request inválido"
// @Failure      503      {object}  ErrorResponse  "Pasarela de pago no disponible"
// @Router       /checkout/start [post]
func (h *CheckoutHandler) StartCheckout(c *gin.Context) {
	var req StartCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperrors.NewInvalidRequest("invalid request body", err.Error()))
		return
	}

	ref, err := domain.ParseLocationRef(req.Location)
	if err != nil {
		h.fail(c, apperrors.NewValidationFailed("invalid location reference", "location"))
		return
	}

	result, err := h.pipeline.StartSale(c.Request.Context(), ref, req.Quantity, req.Amount)
	if err != nil {
		if errors.Is(err, domain.ErrGatewayUnavailable) {
			h.fail(c, apperrors.NewGatewayUnavailable(err))
			return
		}
		h.logger.Error("Failed to start sale", zap.Error(err))
		h.fail(c, apperrors.NewInternalError("failed to start sale", err))
		return
	}

	c.JSON(http.StatusOK, StartCheckoutResponse{Token: result.Token, URL: result.URL})
}

// ConfirmPayment handles GET /webpay/confirm
// @Summary      Callback de confirmación de pago
// @Description  Recibe el token de la pasarela, confirma la autorización y descuenta stock. Redirige a la página de éxito o fracaso.
// @Tags         checkout
// @Produce      json
// @Param        token_ws  query  string  false  "Transaction token"
// @Success      302
// @Router       /webpay/confirm [get]
func (h *CheckoutHandler) ConfirmPayment(c *gin.Context) {
	token := c.Query("token_ws")
	if token == "" {
		// Aborted or tampered flow from the payment page.
		c.Redirect(http.StatusFound, "/checkout/failure?error=missing+token")
		return
	}

	outcome, err := h.pipeline.ConfirmSale(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			c.Redirect(http.StatusFound, "/checkout/failure?error=unknown+token")
			return
		}
		h.logger.Error("Confirmation failed", zap.String("token", token), zap.Error(err))
		c.Redirect(http.StatusFound, "/checkout/failure?error=internal+error")
		return
	}

	c.Redirect(http.StatusFound, outcome.RedirectURL)
}

// CheckoutSuccess handles GET /checkout/success
// @Summary      Página de éxito
// @Description  Muestra el detalle de una venta finalizada. Solo lectura: la confirmación ocurre únicamente en el callback de la pasarela, cargar esta página nunca descuenta stock.
// @Tags         checkout
// @Produce      json
// @Param        token  query     string  true  "Transaction token"
// @Success      200    {object}  checkout.Details
// @Success      302    "Token desconocido o venta aún pendiente"
// @Router       /checkout/success [get]
func (h *CheckoutHandler) CheckoutSuccess(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.Redirect(http.StatusFound, "/checkout/failure?error=missing+token")
		return
	}

	outcome, err := h.pipeline.LookupSale(c.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenNotFound):
			c.Redirect(http.StatusFound, "/checkout/failure?error=unknown+token")
		case errors.Is(err, domain.ErrNotFinalized):
			// Loaded before the gateway callback ran, nothing to show yet.
			c.Redirect(http.StatusFound, "/checkout/failure?error=sale+not+confirmed")
		default:
			h.fail(c, apperrors.NewInternalError("failed to load sale", err))
		}
		return
	}
	if outcome.Status != domain.StatusAuthorized {
		c.Redirect(http.StatusFound, outcome.RedirectURL)
		return
	}

	c.JSON(http.StatusOK, outcome.Details)
}

// CheckoutFailure handles GET /checkout/failure
// @Summary      Página de fracaso
// @Tags         checkout
// @Produce      json
// @Param        error  query     string  false  "Rejection reason"
// @Success      200    {object}  map[string]string
// @Router       /checkout/failure [get]
func (h *CheckoutHandler) CheckoutFailure(c *gin.Context) {
	reason := c.Query("error")
	if reason == "" {
		reason = "sale rejected"
	}
	c.JSON(http.StatusOK, gin.H{
		"status": string(domain.StatusRejected),
		"error":  reason,
	})
}

// SimulatorPay handles GET /simulator/pay
// @Summary      Página de pago simulada
// @Description  Página mínima que imita la pasarela: un botón que redirige al callback de confirmación con el token.
// @Tags         checkout
// @Produce      html
// @Param        token  query  string  true  "Transaction token"
// @Success      200
// @Router       /simulator/pay [get]
func (h *CheckoutHandler) SimulatorPay(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		h.fail(c, apperrors.NewInvalidRequest("missing token", "query parameter token is required"))
		return
	}

	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>Pago simulado</title></head>
<body>
  <h1>Pasarela de pago (simulador)</h1>
  <p>Orden: %s</p>
  <a href="/webpay/confirm?token_ws=%s">Pagar</a>
</body>
</html>`, token, token)

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

func (h *CheckoutHandler) fail(c *gin.Context, err *apperrors.StandardError) {
	_ = c.Error(err)
	c.Abort()
}
