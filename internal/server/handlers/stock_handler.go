package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockledger/internal/domain/ledger"
	"github.com/mamadbah2/stockledger/internal/domain/models"
)

// StockService is the inventory surface exposed over HTTP.
type StockService interface {
	AddStock(ctx context.Context, amount int64) (models.StockSnapshot, error)
	Reserve(ctx context.Context, amount int64) (models.StockSnapshot, error)
	ReleaseReservation(ctx context.Context, amount int64) (models.StockSnapshot, error)
	ShipReserved(ctx context.Context, amount int64) (models.StockSnapshot, error)
	RemoveDamaged(ctx context.Context, amount int64) (models.StockSnapshot, error)
	UpdateReorderThreshold(ctx context.Context, value int64) (models.StockSnapshot, error)
	UpdateMaxCapacity(ctx context.Context, value int64) (models.StockSnapshot, error)
	Snapshot(ctx context.Context) models.StockSnapshot
	IsReorderNeeded(ctx context.Context) bool
}

// StockHandler exposes the ledger operations as JSON endpoints.
type StockHandler struct {
	svc    StockService
	logger *zap.Logger
}

// NewStockHandler constructs the HTTP handler adapter.
func NewStockHandler(svc StockService, logger *zap.Logger) *StockHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockHandler{svc: svc, logger: logger}
}

type stockOp func(context.Context, int64) (models.StockSnapshot, error)

// Get returns the current stock snapshot.
func (h *StockHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Snapshot(c.Request.Context()))
}

// ReorderNeeded reports the reorder signal.
func (h *StockHandler) ReorderNeeded(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"reorder_needed": h.svc.IsReorderNeeded(c.Request.Context())})
}

// AddStock handles POST /stock/add.
func (h *StockHandler) AddStock(c *gin.Context) { h.amount(c, h.svc.AddStock) }

// Reserve handles POST /stock/reserve.
func (h *StockHandler) Reserve(c *gin.Context) { h.amount(c, h.svc.Reserve) }

// Release handles POST /stock/release.
func (h *StockHandler) Release(c *gin.Context) { h.amount(c, h.svc.ReleaseReservation) }

// Ship handles POST /stock/ship.
func (h *StockHandler) Ship(c *gin.Context) { h.amount(c, h.svc.ShipReserved) }

// RemoveDamaged handles POST /stock/damaged.
func (h *StockHandler) RemoveDamaged(c *gin.Context) { h.amount(c, h.svc.RemoveDamaged) }

// UpdateThreshold handles PUT /stock/threshold.
func (h *StockHandler) UpdateThreshold(c *gin.Context) { h.value(c, h.svc.UpdateReorderThreshold) }

// UpdateCapacity handles PUT /stock/capacity.
func (h *StockHandler) UpdateCapacity(c *gin.Context) { h.value(c, h.svc.UpdateMaxCapacity) }

func (h *StockHandler) amount(c *gin.Context, op stockOp) {
	var req models.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("invalid amount payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount is required", "kind": ledger.KindInvalidArgument})
		return
	}
	h.apply(c, op, *req.Amount)
}

func (h *StockHandler) value(c *gin.Context, op stockOp) {
	var req models.ValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("invalid value payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "value is required", "kind": ledger.KindInvalidArgument})
		return
	}
	h.apply(c, op, *req.Value)
}

func (h *StockHandler) apply(c *gin.Context, op stockOp, n int64) {
	snapshot, err := op(c.Request.Context(), n)
	if err != nil {
		status, body := errorResponse(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("stock operation failed", zap.Error(err))
		}
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func errorResponse(err error) (int, gin.H) {
	var lerr *ledger.Error
	if !errors.As(err, &lerr) {
		return http.StatusInternalServerError, gin.H{"error": "internal error"}
	}

	status := http.StatusConflict
	if lerr.Kind == ledger.KindInvalidArgument {
		status = http.StatusBadRequest
	}
	return status, gin.H{"error": lerr.Message, "kind": lerr.Kind}
}
