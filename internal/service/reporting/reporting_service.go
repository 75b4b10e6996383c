package reporting

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockledger/internal/domain/models"
)

const dateLayout = "2006-01-02"

// SnapshotSource provides the current stock position.
type SnapshotSource interface {
	Snapshot(ctx context.Context) models.StockSnapshot
}

// ReportRepository archives daily reports.
type ReportRepository interface {
	SaveStockReport(ctx context.Context, report models.StockReport) error
}

// RowWriter appends one row to a spreadsheet range.
type RowWriter interface {
	WriteRow(ctx context.Context, sheetRange string, values []interface{}) error
}

// Service builds stock reports and fans them out to the configured sinks.
type Service struct {
	source      SnapshotSource
	archive     ReportRepository
	sheet       RowWriter
	reportRange string
	logger      *zap.Logger
	now         func() time.Time
}

// NewService wires a new reporting service instance. archive and sheet may be nil.
func NewService(source SnapshotSource, archive ReportRepository, sheet RowWriter, reportRange string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source:      source,
		archive:     archive,
		sheet:       sheet,
		reportRange: reportRange,
		logger:      logger,
		now:         time.Now,
	}
}

// BuildReport derives a report from a snapshot.
func BuildReport(s models.StockSnapshot, now time.Time) models.StockReport {
	available := s.MaxCapacity - s.Stock
	if available < 0 {
		available = 0
	}

	return models.StockReport{
		Date:              time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		SKU:               s.SKU,
		Stock:             s.Stock,
		Reserved:          s.Reserved,
		Total:             s.Stock + s.Reserved,
		ReorderThreshold:  s.ReorderThreshold,
		MaxCapacity:       s.MaxCapacity,
		AvailableCapacity: available,
		ReorderNeeded:     s.ReorderNeeded,
		CreatedAt:         now,
	}
}

// FormatSummary renders a report as a chat message.
func FormatSummary(r models.StockReport) string {
	msg := fmt.Sprintf("Stock report %s (%s): %d on hand, %d reserved, %d total. Capacity %d, %d free.",
		r.SKU, r.Date.Format(dateLayout), r.Stock, r.Reserved, r.Total, r.MaxCapacity, r.AvailableCapacity)

	if r.ReorderNeeded {
		msg += fmt.Sprintf(" Reorder needed: stock at or below threshold %d.", r.ReorderThreshold)
	} else {
		msg += fmt.Sprintf(" Reorder threshold %d not reached.", r.ReorderThreshold)
	}
	return msg
}

// GenerateDailyReport snapshots the inventory, archives the report and
// returns its summary. Sink failures are logged; only a failed archive write
// is returned as an error.
func (s *Service) GenerateDailyReport(ctx context.Context) (string, error) {
	report := BuildReport(s.source.Snapshot(ctx), s.now())

	if s.archive != nil {
		if err := s.archive.SaveStockReport(ctx, report); err != nil {
			return "", fmt.Errorf("archive stock report: %w", err)
		}
	}

	if s.sheet != nil {
		if err := s.sheet.WriteRow(ctx, s.reportRange, reportRow(report)); err != nil {
			s.logger.Warn("failed to append report row", zap.Error(err))
		}
	}

	s.logger.Info("daily stock report generated",
		zap.String("sku", report.SKU),
		zap.Int64("stock", report.Stock),
		zap.Bool("reorder_needed", report.ReorderNeeded))

	return FormatSummary(report), nil
}

func reportRow(r models.StockReport) []interface{} {
	return []interface{}{
		r.Date.Format(dateLayout),
		r.SKU,
		r.Stock,
		r.Reserved,
		r.Total,
		r.ReorderThreshold,
		r.MaxCapacity,
		r.ReorderNeeded,
	}
}
