package repayment

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("repayment not found")

// ExceedsLoanAmountError rejects a payment that would push the paid total past
// the loan principal. Max is the largest amount still acceptable.
type ExceedsLoanAmountError struct {
	Max decimal.Decimal
}

func (e *ExceedsLoanAmountError) Error() string {
	return fmt.Sprintf("repayment exceeds loan amount, maximum payment allowed: %s", e.Max.StringFixed(2))
}
