package uow

import (
	"context"

	"communityfund-ledger/internal/domain/fund"
	"communityfund-ledger/internal/domain/loan"
	"communityfund-ledger/internal/domain/repayment"
)

type Repos struct {
	Loans         loan.Repository
	Repayments    repayment.Repository
	Pool          fund.PoolRepository
	Contributions fund.ContributionLedger
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan row first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
