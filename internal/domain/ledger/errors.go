package ledger

import (
	"errors"
	"fmt"
)

// Kind identifies which rule a rejected ledger operation violated.
type Kind string

const (
	KindInvalidArgument   Kind = "invalid_argument"
	KindCapacityExceeded  Kind = "capacity_exceeded"
	KindInsufficientStock Kind = "insufficient_stock"
	KindInvalidRelease    Kind = "invalid_release"
	KindShippingError     Kind = "shipping_error"
	KindRemovalError      Kind = "removal_error"
)

// Sentinel errors, one per Kind. Match them with errors.Is.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrCapacityExceeded  = errors.New("capacity exceeded")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidRelease    = errors.New("invalid release")
	ErrShippingError     = errors.New("shipping error")
	ErrRemovalError      = errors.New("removal error")
)

var sentinels = map[Kind]error{
	KindInvalidArgument:   ErrInvalidArgument,
	KindCapacityExceeded:  ErrCapacityExceeded,
	KindInsufficientStock: ErrInsufficientStock,
	KindInvalidRelease:    ErrInvalidRelease,
	KindShippingError:     ErrShippingError,
	KindRemovalError:      ErrRemovalError,
}

// Error is returned by every rejected ledger operation.
type Error struct {
	Op      string
	Kind    Kind
	Amount  int64
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap exposes the sentinel for the error kind.
func (e *Error) Unwrap() error {
	return sentinels[e.Kind]
}

// KindOf reports the Kind carried by err, or "" when err is not a ledger error.
func KindOf(err error) Kind {
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr.Kind
	}
	return ""
}

func newError(op string, kind Kind, amount int64, format string, args ...any) *Error {
	return &Error{
		Op:      op,
		Kind:    kind,
		Amount:  amount,
		Message: fmt.Sprintf(format, args...),
	}
}
