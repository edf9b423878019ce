package fund

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrLedgerUnavailable: the contribution ledger could not be read. The pool
// keeps its previous total_available.
var ErrLedgerUnavailable = errors.New("contribution ledger unavailable")

// InsufficientFundsError aborts a reservation that would allocate more than
// the pool holds.
type InsufficientFundsError struct {
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: required %s, available %s",
		e.Required.StringFixed(2), e.Available.StringFixed(2))
}
