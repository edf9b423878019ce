package loan

import (
	"context"

	"github.com/shopspring/decimal"
)

// Summary backs the dashboard panel: counts and committed totals per status.
type Summary struct {
	TotalLoans     int64           `json:"total_loans"`
	ApprovedLoans  int64           `json:"approved_loans"`
	PendingLoans   int64           `json:"pending_loans"`
	RejectedLoans  int64           `json:"rejected_loans"`
	ApprovedAmount decimal.Decimal `json:"approved_amount"`
	PendingAmount  decimal.Decimal `json:"pending_amount"`
}

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row for the rest of the transaction.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	List(ctx context.Context) ([]Loan, error)
	Save(ctx context.Context, l *Loan) error
	Delete(ctx context.Context, l *Loan) error
	Summary(ctx context.Context) (*Summary, error)
}
