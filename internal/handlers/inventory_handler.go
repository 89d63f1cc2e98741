package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/dani2c/integracion-plataformas/internal/cache"
	"github.com/dani2c/integracion-plataformas/internal/domain"
	"github.com/dani2c/integracion-plataformas/internal/store"
	apperrors "github.com/dani2c/integracion-plataformas/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	inventoryCacheKey = "inventory:snapshot"
	inventoryCacheTTL = 5 * time.Second
)

// Ledger is the slice of the inventory ledger the handlers need.
type Ledger interface {
	Reserve(ctx context.Context, ref domain.LocationRef, quantity int) (*store.DebitResult, error)
	Snapshot(ctx context.Context) (*domain.InventorySnapshot, error)
	AddBranch(ctx context.Context, name string, quantity, price int) (int64, error)
	Restock(ctx context.Context, branchQuantity, warehouseQuantity int) error
}

type InventoryHandler struct {
	logger  *zap.Logger
	ledger  Ledger
	cache   cache.Cache
	usdRate float64
}

func NewInventoryHandler(logger *zap.Logger, ledger Ledger, c cache.Cache, usdRate float64) *InventoryHandler {
	return &InventoryHandler{
		logger:  logger,
		ledger:  ledger,
		cache:   c,
		usdRate: usdRate,
	}
}

// GetInventory handles GET /api/inventory
// @Summary      Stock por ubicación
// @Description  Retorna el stock actual de todas las sucursales y de la casa matriz. Respuesta cacheada por algunos segundos.
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  domain.InventorySnapshot
// @Failure      500  {object}  ErrorResponse
// @Router       /inventory [get]
func (h *InventoryHandler) GetInventory(c *gin.Context) {
	ctx := c.Request.Context()

	var snapshot domain.InventorySnapshot
	if err := cache.GetJSON(ctx, h.cache, inventoryCacheKey, &snapshot); err == nil {
		c.JSON(http.StatusOK, snapshot)
		return
	}

	fresh, err := h.ledger.Snapshot(ctx)
	if err != nil {
		h.logger.Error("Failed to read inventory", zap.Error(err))
		h.fail(c, apperrors.NewDatabaseError("read inventory", err))
		return
	}

	if err := cache.SetJSON(ctx, h.cache, inventoryCacheKey, fresh, inventoryCacheTTL); err != nil {
		h.logger.Warn("Failed to cache inventory", zap.Error(err))
	}

	c.JSON(http.StatusOK, fresh)
}

// DirectSale handles POST /api/sale
// @Summary      Venta directa
// @Description  Descuenta stock de una ubicación sin pasar por la pasarela de pago.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request  body      SaleRequest  true  "Sale to apply"
// @Success      200      {object}  SaleResponse
// @Failure      400      {object}  ErrorResponse  "Stock insuficiente o request inválido"
// @Failure      404      {object}  ErrorResponse  "Ubicación desconocida"
// @Router       /sale [post]
func (h *InventoryHandler) DirectSale(c *gin.Context) {
	var req SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperrors.NewInvalidRequest("invalid request body", err.Error()))
		return
	}

	ref, err := domain.ParseLocationRef(req.Location)
	if err != nil {
		h.fail(c, apperrors.NewValidationFailed("invalid location reference", "location"))
		return
	}

	result, err := h.ledger.Reserve(c.Request.Context(), ref, req.Quantity)
	if err != nil {
		var insufficient *domain.InsufficientStockError
		switch {
		case errors.Is(err, domain.ErrLocationNotFound):
			h.fail(c, apperrors.NewLocationNotFound(ref.Key()))
		case errors.As(err, &insufficient):
			h.fail(c, apperrors.NewInsufficientStock(insufficient.Available, insufficient.Requested))
		default:
			h.logger.Error("Sale failed", zap.Error(err))
			h.fail(c, apperrors.NewDatabaseError("debit stock", err))
		}
		return
	}

	h.invalidate(c.Request.Context())
	c.JSON(http.StatusOK, SaleResponse{
		Location:     ref.Key(),
		LocationName: result.LocationName,
		Quantity:     req.Quantity,
		Remaining:    result.Remaining,
	})
}

// AddBranch handles POST /api/branches
// @Summary      Registrar sucursal
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request  body      AddBranchRequest  true  "Branch to create"
// @Success      201      {object}  AddBranchResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /branches [post]
func (h *InventoryHandler) AddBranch(c *gin.Context) {
	var req AddBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperrors.NewInvalidRequest("invalid request body", err.Error()))
		return
	}

	id, err := h.ledger.AddBranch(c.Request.Context(), req.Name, req.Quantity, req.Price)
	if err != nil {
		h.logger.Error("Failed to add branch", zap.Error(err))
		h.fail(c, apperrors.NewDatabaseError("add branch", err))
		return
	}

	h.invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, AddBranchResponse{
		ID:       id,
		Name:     req.Name,
		Quantity: req.Quantity,
		Price:    req.Price,
	})
}

// Restock handles POST /api/admin/restock
// @Summary      Reponer stock
// @Description  Restablece el stock de todas las sucursales y de la casa matriz a cantidades fijas.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request  body      RestockRequest  true  "Quantities to set"
// @Success      200      {object}  domain.InventorySnapshot
// @Failure      400      {object}  ErrorResponse
// @Router       /admin/restock [post]
func (h *InventoryHandler) Restock(c *gin.Context) {
	var req RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperrors.NewInvalidRequest("invalid request body", err.Error()))
		return
	}

	if err := h.ledger.Restock(c.Request.Context(), req.BranchQuantity, req.WarehouseQuantity); err != nil {
		h.logger.Error("Restock failed", zap.Error(err))
		h.fail(c, apperrors.NewDatabaseError("restock", err))
		return
	}

	h.invalidate(c.Request.Context())

	snapshot, err := h.ledger.Snapshot(c.Request.Context())
	if err != nil {
		h.fail(c, apperrors.NewDatabaseError("read inventory", err))
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// ConvertUSD handles POST /api/convert/usd
// @Summary      Convertir CLP a USD
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request  body      ConvertRequest  true  "Amount in CLP"
// @Success      200      {object}  ConvertResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /convert/usd [post]
func (h *InventoryHandler) ConvertUSD(c *gin.Context) {
	var req ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperrors.NewInvalidRequest("invalid request body", err.Error()))
		return
	}

	usd := math.Round(req.AmountCLP/h.usdRate*100) / 100
	c.JSON(http.StatusOK, ConvertResponse{
		AmountCLP: req.AmountCLP,
		AmountUSD: usd,
		Rate:      h.usdRate,
	})
}

func (h *InventoryHandler) invalidate(ctx context.Context) {
	if err := h.cache.Delete(ctx, inventoryCacheKey); err != nil {
		h.logger.Warn("Failed to invalidate inventory cache", zap.Error(err))
	}
}

func (h *InventoryHandler) fail(c *gin.Context, err *apperrors.StandardError) {
	_ = c.Error(err)
	c.Abort()
}
