package repayment

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, rp *Repayment) error
	GetByRepaymentID(ctx context.Context, repaymentID string) (*Repayment, error)
	GetByRepaymentIDForUpdate(ctx context.Context, repaymentID string) (*Repayment, error)
	// ListByLoanID returns records in insertion order.
	ListByLoanID(ctx context.Context, loanID string) ([]Repayment, error)
	SumByLoanID(ctx context.Context, loanID string) (decimal.Decimal, error)
	// SumByLoanIDExcluding totals every repayment for the loan except the row
	// being edited, for the bound check on updates.
	SumByLoanIDExcluding(ctx context.Context, loanID string, excludeID uint64) (decimal.Decimal, error)
	Save(ctx context.Context, rp *Repayment) error
	Delete(ctx context.Context, rp *Repayment) error
}
