// Package ledger tracks the on-hand, reserved, reorder and capacity
// quantities of a single stocked product.
//
// A StockLedger is a plain value object: it does no locking, logging or
// I/O. Callers sharing one across goroutines must serialize access.
package ledger

import "math"

// Snapshot is a copy of the four ledger quantities at a point in time.
type Snapshot struct {
	Stock            int64
	Reserved         int64
	ReorderThreshold int64
	MaxCapacity      int64
}

// StockLedger holds the quantity state of one product. Every mutator
// validates before it mutates, so a rejected call leaves the state untouched.
type StockLedger struct {
	stock            int64
	reserved         int64
	reorderThreshold int64
	maxCapacity      int64
}

// New validates all four values before building the ledger. Stock is not
// checked against maxCapacity here; mutators enforce the bound afterwards.
func New(stock, reserved, reorderThreshold, maxCapacity int64) (*StockLedger, error) {
	const op = "new"
	switch {
	case stock < 0:
		return nil, newError(op, KindInvalidArgument, stock, "stock cannot be negative (got %d)", stock)
	case reserved < 0:
		return nil, newError(op, KindInvalidArgument, reserved, "reserved cannot be negative (got %d)", reserved)
	case reorderThreshold < 0:
		return nil, newError(op, KindInvalidArgument, reorderThreshold, "reorder threshold cannot be negative (got %d)", reorderThreshold)
	case maxCapacity <= 0:
		return nil, newError(op, KindInvalidArgument, maxCapacity, "max capacity must be positive (got %d)", maxCapacity)
	}

	return &StockLedger{
		stock:            stock,
		reserved:         reserved,
		reorderThreshold: reorderThreshold,
		maxCapacity:      maxCapacity,
	}, nil
}

// AddStock receives new units into on-hand stock.
func (l *StockLedger) AddStock(amount int64) error {
	const op = "add_stock"
	if err := requirePositive(op, amount); err != nil {
		return err
	}
	if amount > l.maxCapacity-l.stock {
		return newError(op, KindCapacityExceeded, amount,
			"adding %d to stock %d exceeds capacity %d", amount, l.stock, l.maxCapacity)
	}

	l.stock += amount
	return nil
}

// Reserve moves units from on-hand stock to reserved.
func (l *StockLedger) Reserve(amount int64) error {
	const op = "reserve"
	if err := requirePositive(op, amount); err != nil {
		return err
	}
	if amount > l.stock {
		return newError(op, KindInsufficientStock, amount,
			"cannot reserve %d, only %d in stock", amount, l.stock)
	}
	if amount > math.MaxInt64-l.reserved {
		return newError(op, KindInvalidArgument, amount,
			"reserving %d on top of %d reserved overflows", amount, l.reserved)
	}

	l.stock -= amount
	l.reserved += amount
	return nil
}

// ReleaseReservation returns reserved units to on-hand stock.
func (l *StockLedger) ReleaseReservation(amount int64) error {
	const op = "release_reservation"
	if err := requirePositive(op, amount); err != nil {
		return err
	}
	if amount > l.reserved {
		return newError(op, KindInvalidRelease, amount,
			"cannot release %d, only %d reserved", amount, l.reserved)
	}
	if amount > math.MaxInt64-l.stock {
		return newError(op, KindInvalidArgument, amount,
			"releasing %d into stock %d overflows", amount, l.stock)
	}

	l.reserved -= amount
	l.stock += amount
	return nil
}

// ShipReserved removes reserved units from the ledger entirely.
func (l *StockLedger) ShipReserved(amount int64) error {
	const op = "ship_reserved"
	if err := requirePositive(op, amount); err != nil {
		return err
	}
	if amount > l.reserved {
		return newError(op, KindShippingError, amount,
			"cannot ship %d, only %d reserved", amount, l.reserved)
	}

	l.reserved -= amount
	return nil
}

// RemoveDamaged writes off on-hand units. Reserved units are never touched.
func (l *StockLedger) RemoveDamaged(amount int64) error {
	const op = "remove_damaged"
	if err := requirePositive(op, amount); err != nil {
		return err
	}
	if amount > l.stock {
		return newError(op, KindRemovalError, amount,
			"cannot remove %d damaged, only %d in stock", amount, l.stock)
	}

	l.stock -= amount
	return nil
}

// IsReorderNeeded reports whether on-hand stock is at or below the reorder
// threshold. Reserved units are not considered.
func (l *StockLedger) IsReorderNeeded() bool {
	return l.stock <= l.reorderThreshold
}

// UpdateReorderThreshold replaces the reorder threshold.
func (l *StockLedger) UpdateReorderThreshold(value int64) error {
	if value < 0 {
		return newError("update_reorder_threshold", KindInvalidArgument, value,
			"reorder threshold cannot be negative (got %d)", value)
	}

	l.reorderThreshold = value
	return nil
}

// UpdateMaxCapacity replaces the capacity. Current stock is not re-checked,
// so the ledger may sit above the new capacity until stock drops.
func (l *StockLedger) UpdateMaxCapacity(value int64) error {
	if value <= 0 {
		return newError("update_max_capacity", KindInvalidArgument, value,
			"max capacity must be positive (got %d)", value)
	}

	l.maxCapacity = value
	return nil
}

// Stock, Reserved, ReorderThreshold and MaxCapacity return the current
// quantities.
func (l *StockLedger) Stock() int64            { return l.stock }
func (l *StockLedger) Reserved() int64         { return l.reserved }
func (l *StockLedger) ReorderThreshold() int64 { return l.reorderThreshold }
func (l *StockLedger) MaxCapacity() int64      { return l.maxCapacity }

// Snapshot copies the current quantities.
func (l *StockLedger) Snapshot() Snapshot {
	return Snapshot{
		Stock:            l.stock,
		Reserved:         l.reserved,
		ReorderThreshold: l.reorderThreshold,
		MaxCapacity:      l.maxCapacity,
	}
}

func requirePositive(op string, amount int64) error {
	if amount <= 0 {
		return newError(op, KindInvalidArgument, amount, "amount must be positive (got %d)", amount)
	}
	return nil
}
