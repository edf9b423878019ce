package repaymentmock

import (
	"context"

	domain "communityfund-ledger/internal/domain/repayment"

	"github.com/shopspring/decimal"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                    func(ctx context.Context, rp *domain.Repayment) error
	GetByRepaymentIDFn          func(ctx context.Context, repaymentID string) (*domain.Repayment, error)
	GetByRepaymentIDForUpdateFn func(ctx context.Context, repaymentID string) (*domain.Repayment, error)
	ListByLoanIDFn              func(ctx context.Context, loanID string) ([]domain.Repayment, error)
	SumByLoanIDFn               func(ctx context.Context, loanID string) (decimal.Decimal, error)
	SumByLoanIDExcludingFn      func(ctx context.Context, loanID string, excludeID uint64) (decimal.Decimal, error)
	SaveFn                      func(ctx context.Context, rp *domain.Repayment) error
	DeleteFn                    func(ctx context.Context, rp *domain.Repayment) error
}

func (m *Repo) Create(ctx context.Context, rp *domain.Repayment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, rp)
	}
	return nil
}

func (m *Repo) GetByRepaymentID(ctx context.Context, repaymentID string) (*domain.Repayment, error) {
	if m.GetByRepaymentIDFn != nil {
		return m.GetByRepaymentIDFn(ctx, repaymentID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByRepaymentIDForUpdate(ctx context.Context, repaymentID string) (*domain.Repayment, error) {
	if m.GetByRepaymentIDForUpdateFn != nil {
		return m.GetByRepaymentIDForUpdateFn(ctx, repaymentID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID string) ([]domain.Repayment, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, nil
}

func (m *Repo) SumByLoanID(ctx context.Context, loanID string) (decimal.Decimal, error) {
	if m.SumByLoanIDFn != nil {
		return m.SumByLoanIDFn(ctx, loanID)
	}
	return decimal.Zero, nil
}

func (m *Repo) SumByLoanIDExcluding(ctx context.Context, loanID string, excludeID uint64) (decimal.Decimal, error) {
	if m.SumByLoanIDExcludingFn != nil {
		return m.SumByLoanIDExcludingFn(ctx, loanID, excludeID)
	}
	return decimal.Zero, nil
}

func (m *Repo) Save(ctx context.Context, rp *domain.Repayment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, rp)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, rp *domain.Repayment) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, rp)
	}
	return nil
}
