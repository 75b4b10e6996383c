package inventory

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mamadbah2/stockledger/internal/config"
	"github.com/mamadbah2/stockledger/internal/domain/ledger"
)

// RangeReader reads a rectangular range of cells.
type RangeReader interface {
	ReadRange(ctx context.Context, sheetRange string) ([][]interface{}, error)
}

// NewLedgerFromConfig builds the ledger from the LEDGER_* settings.
func NewLedgerFromConfig(cfg config.LedgerConfig) (*ledger.StockLedger, error) {
	l, err := ledger.New(cfg.InitialStock, cfg.InitialReserved, cfg.ReorderThreshold, cfg.MaxCapacity)
	if err != nil {
		return nil, fmt.Errorf("seed ledger from config: %w", err)
	}
	return l, nil
}

// NewLedgerFromSheet builds the ledger from the first row of sheetRange,
// laid out as stock, reserved, reorder threshold, max capacity.
func NewLedgerFromSheet(ctx context.Context, reader RangeReader, sheetRange string) (*ledger.StockLedger, error) {
	rows, err := reader.ReadRange(ctx, sheetRange)
	if err != nil {
		return nil, fmt.Errorf("load seed range: %w", err)
	}
	if len(rows) == 0 || len(rows[0]) < 4 {
		return nil, fmt.Errorf("seed range %s must hold 4 values", sheetRange)
	}

	var values [4]int64
	for i := range values {
		v, err := parseCell(rows[0][i])
		if err != nil {
			return nil, fmt.Errorf("seed range %s column %d: %w", sheetRange, i+1, err)
		}
		values[i] = v
	}

	l, err := ledger.New(values[0], values[1], values[2], values[3])
	if err != nil {
		return nil, fmt.Errorf("seed ledger from sheet: %w", err)
	}
	return l, nil
}

func parseCell(value interface{}) (int64, error) {
	if f, ok := value.(float64); ok {
		if f != math.Trunc(f) {
			return 0, fmt.Errorf("%v is not a whole number", f)
		}
		// float64(math.MaxInt64) rounds up to 2^63, which does not fit.
		if f >= math.MaxInt64 || f < math.MinInt64 {
			return 0, fmt.Errorf("%v is out of range", f)
		}
		return int64(f), nil
	}

	str := strings.TrimSpace(fmt.Sprint(value))
	if str == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	return strconv.ParseInt(str, 10, 64)
}
