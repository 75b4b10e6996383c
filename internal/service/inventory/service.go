package inventory

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockledger/internal/domain/ledger"
	"github.com/mamadbah2/stockledger/internal/domain/models"
)

// ReorderAlerter is notified when stock drops to or below the reorder threshold.
type ReorderAlerter interface {
	NotifyReorder(ctx context.Context, snapshot models.StockSnapshot) error
}

// Service serializes access to the single product ledger.
type Service struct {
	mu      sync.Mutex
	ledger  *ledger.StockLedger
	sku     string
	alerter ReorderAlerter
	logger  *zap.Logger
}

// NewService wraps an existing ledger. A nil alerter disables reorder alerts.
func NewService(l *ledger.StockLedger, sku string, alerter ReorderAlerter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		ledger:  l,
		sku:     sku,
		alerter: alerter,
		logger:  logger,
	}
}

// SetAlerter replaces the reorder alerter. Used when the alerter itself
// depends on the service.
func (s *Service) SetAlerter(alerter ReorderAlerter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerter = alerter
}

// SKU returns the tracked product identifier.
func (s *Service) SKU() string {
	return s.sku
}

// AddStock receives new inventory.
func (s *Service) AddStock(ctx context.Context, amount int64) (models.StockSnapshot, error) {
	return s.mutate(ctx, "add_stock", amount, (*ledger.StockLedger).AddStock)
}

// Reserve commits units to an order.
func (s *Service) Reserve(ctx context.Context, amount int64) (models.StockSnapshot, error) {
	return s.mutate(ctx, "reserve", amount, (*ledger.StockLedger).Reserve)
}

// ReleaseReservation returns reserved units to stock.
func (s *Service) ReleaseReservation(ctx context.Context, amount int64) (models.StockSnapshot, error) {
	return s.mutate(ctx, "release_reservation", amount, (*ledger.StockLedger).ReleaseReservation)
}

// ShipReserved fulfils reserved units.
func (s *Service) ShipReserved(ctx context.Context, amount int64) (models.StockSnapshot, error) {
	return s.mutate(ctx, "ship_reserved", amount, (*ledger.StockLedger).ShipReserved)
}

// RemoveDamaged writes off on-hand units.
func (s *Service) RemoveDamaged(ctx context.Context, amount int64) (models.StockSnapshot, error) {
	return s.mutate(ctx, "remove_damaged", amount, (*ledger.StockLedger).RemoveDamaged)
}

// UpdateReorderThreshold changes the reorder trigger level.
func (s *Service) UpdateReorderThreshold(ctx context.Context, value int64) (models.StockSnapshot, error) {
	return s.mutate(ctx, "update_reorder_threshold", value, (*ledger.StockLedger).UpdateReorderThreshold)
}

// UpdateMaxCapacity changes the storage capacity.
func (s *Service) UpdateMaxCapacity(ctx context.Context, value int64) (models.StockSnapshot, error) {
	return s.mutate(ctx, "update_max_capacity", value, (*ledger.StockLedger).UpdateMaxCapacity)
}

// Snapshot returns the current stock position.
func (s *Service) Snapshot(_ context.Context) models.StockSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// IsReorderNeeded reports whether on-hand stock is at or below the threshold.
func (s *Service) IsReorderNeeded(_ context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.IsReorderNeeded()
}

func (s *Service) mutate(ctx context.Context, op string, amount int64, fn func(*ledger.StockLedger, int64) error) (models.StockSnapshot, error) {
	s.mu.Lock()
	wasNeeded := s.ledger.IsReorderNeeded()
	err := fn(s.ledger, amount)
	snapshot := s.snapshotLocked()
	alerter := s.alerter
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("stock operation rejected",
			zap.String("op", op),
			zap.Int64("amount", amount),
			zap.String("kind", string(ledger.KindOf(err))),
			zap.Error(err))
		return snapshot, err
	}

	s.logger.Debug("stock operation applied",
		zap.String("op", op),
		zap.Int64("amount", amount),
		zap.Int64("stock", snapshot.Stock),
		zap.Int64("reserved", snapshot.Reserved))

	if !wasNeeded && snapshot.ReorderNeeded && alerter != nil {
		if err := alerter.NotifyReorder(ctx, snapshot); err != nil {
			s.logger.Error("failed to send reorder alert", zap.Error(err))
		}
	}

	return snapshot, nil
}

func (s *Service) snapshotLocked() models.StockSnapshot {
	snap := s.ledger.Snapshot()
	return models.StockSnapshot{
		SKU:              s.sku,
		Stock:            snap.Stock,
		Reserved:         snap.Reserved,
		ReorderThreshold: snap.ReorderThreshold,
		MaxCapacity:      snap.MaxCapacity,
		ReorderNeeded:    s.ledger.IsReorderNeeded(),
	}
}
