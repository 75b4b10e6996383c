package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockledger/internal/domain/ledger"
	"github.com/mamadbah2/stockledger/internal/domain/models"
)

// ErrInvalidArguments indicates the command payload could not be parsed.
var ErrInvalidArguments = errors.New("invalid command arguments")

// ErrUnsupportedCommand indicates we do not yet support the requested command.
var ErrUnsupportedCommand = errors.New("unsupported command")

// HelpText lists the accepted commands.
const HelpText = "Commands: /add n, /reserve n, /release n, /ship n, /damaged n, /threshold n, /capacity n, /status."

// Inventory is the subset of the inventory service the dispatcher drives.
type Inventory interface {
	AddStock(ctx context.Context, amount int64) (models.StockSnapshot, error)
	Reserve(ctx context.Context, amount int64) (models.StockSnapshot, error)
	ReleaseReservation(ctx context.Context, amount int64) (models.StockSnapshot, error)
	ShipReserved(ctx context.Context, amount int64) (models.StockSnapshot, error)
	RemoveDamaged(ctx context.Context, amount int64) (models.StockSnapshot, error)
	UpdateReorderThreshold(ctx context.Context, value int64) (models.StockSnapshot, error)
	UpdateMaxCapacity(ctx context.Context, value int64) (models.StockSnapshot, error)
	Snapshot(ctx context.Context) models.StockSnapshot
}

// Dispatcher executes parsed commands against the inventory.
type Dispatcher interface {
	HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error)
}

// Service implements the Dispatcher interface.
type Service struct {
	inventory Inventory
	logger    *zap.Logger
}

// NewService constructs a command dispatcher.
func NewService(inventory Inventory, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{inventory: inventory, logger: logger}
}

type amountOp func(context.Context, int64) (models.StockSnapshot, error)

// HandleCommand runs cmd and returns the reply text. Ledger rejections are
// reported in the reply; only malformed or unknown commands return an error.
func (s *Service) HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error) {
	s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.String("sender", sender), zap.Strings("args", cmd.Args))

	var (
		op    amountOp
		label string
	)

	switch cmd.Type {
	case models.CommandStatus:
		return FormatSnapshot(s.inventory.Snapshot(ctx)), nil
	case models.CommandHelp:
		return HelpText, nil
	case models.CommandAdd:
		op, label = s.inventory.AddStock, "Received %d units."
	case models.CommandReserve:
		op, label = s.inventory.Reserve, "Reserved %d units."
	case models.CommandRelease:
		op, label = s.inventory.ReleaseReservation, "Released %d reserved units."
	case models.CommandShip:
		op, label = s.inventory.ShipReserved, "Shipped %d reserved units."
	case models.CommandDamaged:
		op, label = s.inventory.RemoveDamaged, "Wrote off %d damaged units."
	case models.CommandThreshold:
		op, label = s.inventory.UpdateReorderThreshold, "Reorder threshold set to %d."
	case models.CommandCapacity:
		op, label = s.inventory.UpdateMaxCapacity, "Max capacity set to %d."
	default:
		return "", ErrUnsupportedCommand
	}

	amount, err := parseAmount(cmd)
	if err != nil {
		return "", err
	}

	snapshot, err := op(ctx, amount)
	if err != nil {
		if ledger.KindOf(err) == "" {
			return "", err
		}
		return fmt.Sprintf("Rejected: %s.\n%s", rejectionMessage(err), FormatSnapshot(snapshot)), nil
	}

	return fmt.Sprintf(label, amount) + "\n" + FormatSnapshot(snapshot), nil
}

// FormatSnapshot renders the stock position for chat replies.
func FormatSnapshot(s models.StockSnapshot) string {
	msg := fmt.Sprintf("%s: stock %d, reserved %d, threshold %d, capacity %d.",
		s.SKU, s.Stock, s.Reserved, s.ReorderThreshold, s.MaxCapacity)
	if s.ReorderNeeded {
		msg += " Reorder needed."
	}
	return msg
}

func parseAmount(cmd models.Command) (int64, error) {
	if len(cmd.Args) == 0 {
		return 0, ErrInvalidArguments
	}
	amount, err := strconv.ParseInt(cmd.Args[0], 10, 64)
	if err != nil {
		return 0, ErrInvalidArguments
	}
	return amount, nil
}

func rejectionMessage(err error) string {
	var lerr *ledger.Error
	if errors.As(err, &lerr) {
		return lerr.Message
	}
	return err.Error()
}
