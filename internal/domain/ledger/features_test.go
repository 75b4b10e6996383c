package ledger_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cucumber/godog"

	"github.com/mamadbah2/stockledger/internal/domain/ledger"
)

type ledgerTestContext struct {
	ledger *ledger.StockLedger
	err    error
}

func (c *ledgerTestContext) reset() {
	c.ledger = nil
	c.err = nil
}

func (c *ledgerTestContext) aLedgerWith(stock, reserved, threshold, capacity int64) error {
	c.ledger, c.err = ledger.New(stock, reserved, threshold, capacity)
	return nil
}

func (c *ledgerTestContext) apply(fn func(*ledger.StockLedger) error) error {
	if c.ledger == nil {
		return errors.New("ledger was not constructed")
	}
	c.err = fn(c.ledger)
	return nil
}

func (c *ledgerTestContext) iAddUnitsOfStock(n int64) error {
	return c.apply(func(l *ledger.StockLedger) error { return l.AddStock(n) })
}

func (c *ledgerTestContext) iReserveUnits(n int64) error {
	return c.apply(func(l *ledger.StockLedger) error { return l.Reserve(n) })
}

func (c *ledgerTestContext) iReleaseUnits(n int64) error {
	return c.apply(func(l *ledger.StockLedger) error { return l.ReleaseReservation(n) })
}

func (c *ledgerTestContext) iShipUnits(n int64) error {
	return c.apply(func(l *ledger.StockLedger) error { return l.ShipReserved(n) })
}

func (c *ledgerTestContext) iRemoveDamagedUnits(n int64) error {
	return c.apply(func(l *ledger.StockLedger) error { return l.RemoveDamaged(n) })
}

func (c *ledgerTestContext) iUpdateTheReorderThresholdTo(v int64) error {
	return c.apply(func(l *ledger.StockLedger) error { return l.UpdateReorderThreshold(v) })
}

func (c *ledgerTestContext) iUpdateTheMaxCapacityTo(v int64) error {
	return c.apply(func(l *ledger.StockLedger) error { return l.UpdateMaxCapacity(v) })
}

func (c *ledgerTestContext) theLedgerHasStockAndReserved(stock, reserved int64) error {
	if c.ledger == nil {
		return errors.New("ledger was not constructed")
	}
	if c.ledger.Stock() != stock {
		return fmt.Errorf("expected stock %d, got %d", stock, c.ledger.Stock())
	}
	if c.ledger.Reserved() != reserved {
		return fmt.Errorf("expected reserved %d, got %d", reserved, c.ledger.Reserved())
	}
	return nil
}

func (c *ledgerTestContext) theOperationFailsWith(kind string) error {
	if c.err == nil {
		return fmt.Errorf("expected %s failure, got success", kind)
	}
	if got := ledger.KindOf(c.err); string(got) != kind {
		return fmt.Errorf("expected kind %s, got %s (%v)", kind, got, c.err)
	}
	return nil
}

func (c *ledgerTestContext) aReorderIsNeeded() error {
	if !c.ledger.IsReorderNeeded() {
		return fmt.Errorf("expected reorder needed at stock %d", c.ledger.Stock())
	}
	return nil
}

func (c *ledgerTestContext) noReorderIsNeeded() error {
	if c.ledger.IsReorderNeeded() {
		return fmt.Errorf("expected no reorder at stock %d", c.ledger.Stock())
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &ledgerTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a ledger with stock (-?\d+), reserved (-?\d+), reorder threshold (-?\d+) and max capacity (-?\d+)$`, tc.aLedgerWith)

	// When steps
	ctx.Step(`^I add (-?\d+) units of stock$`, tc.iAddUnitsOfStock)
	ctx.Step(`^I reserve (-?\d+) units$`, tc.iReserveUnits)
	ctx.Step(`^I release (-?\d+) (?:reserved )?units$`, tc.iReleaseUnits)
	ctx.Step(`^I ship (-?\d+) (?:reserved )?units$`, tc.iShipUnits)
	ctx.Step(`^I remove (-?\d+) damaged units$`, tc.iRemoveDamagedUnits)
	ctx.Step(`^I remove damaged (-?\d+) units$`, tc.iRemoveDamagedUnits)
	ctx.Step(`^I update the reorder threshold to (-?\d+)$`, tc.iUpdateTheReorderThresholdTo)
	ctx.Step(`^I update the max capacity to (-?\d+)$`, tc.iUpdateTheMaxCapacityTo)

	// Then steps
	ctx.Step(`^the ledger has stock (-?\d+) and reserved (-?\d+)$`, tc.theLedgerHasStockAndReserved)
	ctx.Step(`^the operation fails with "([^"]*)"$`, tc.theOperationFailsWith)
	ctx.Step(`^a reorder is needed$`, tc.aReorderIsNeeded)
	ctx.Step(`^no reorder is needed$`, tc.noReorderIsNeeded)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../../../features/stock_ledger.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
