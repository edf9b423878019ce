package repayment

import (
	"context"
	"strings"
	"time"

	domainLoan "communityfund-ledger/internal/domain/loan"
	"communityfund-ledger/internal/domain/repayment"
	"communityfund-ledger/internal/domain/uow"
	"communityfund-ledger/pkg/id"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type Usecase struct {
	loans domainLoan.Repository
	repo  repayment.Repository
	uow   uow.UnitOfWork
}

func NewUsecase(loans domainLoan.Repository, repayments repayment.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loans: loans, repo: repayments, uow: tx}
}

func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, &domainLoan.ValidationError{Field: "repay_amount", Reason: "must be a number"}
	}
	if !amount.IsPositive() {
		return decimal.Zero, &domainLoan.ValidationError{Field: "repay_amount", Reason: "must be positive"}
	}
	return amount, nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &domainLoan.ValidationError{Field: "repay_date", Reason: "must be YYYY-MM-DD"}
	}
	return d, nil
}

func toDTO(rp *repayment.Repayment) *RepaymentDTO {
	return &RepaymentDTO{
		RepaymentID:      rp.RepaymentID,
		LoanID:           rp.LoanID,
		RepayAmount:      rp.RepayAmount.StringFixed(2),
		RepayDate:        rp.RepayDate.Format(dateLayout),
		RemainingBalance: rp.Remaining.StringFixed(2),
		CreatedAt:        rp.CreatedAt,
	}
}

// Add records a payment. The loan row is locked for the duration of the bound
// check and insert, so two concurrent payments can never jointly overshoot
// the principal.
func (u *Usecase) Add(ctx context.Context, in AddRepaymentInput) (*RepaymentDTO, error) {
	amount, err := parseAmount(in.RepayAmount)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(in.RepayDate)
	if err != nil {
		return nil, err
	}

	var dto *RepaymentDTO
	err = u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domainLoan.Loan) error {
		paid, err := r.Repayments.SumByLoanID(ctx, l.LoanID)
		if err != nil {
			return err
		}
		newPaid := paid.Add(amount)
		if newPaid.GreaterThan(l.LoanAmount) {
			return &repayment.ExceedsLoanAmountError{Max: l.LoanAmount.Sub(paid)}
		}
		rp := &repayment.Repayment{
			RepaymentID: id.NewID32(),
			LoanID:      l.LoanID,
			RepayAmount: amount,
			RepayDate:   date,
			Remaining:   l.LoanAmount.Sub(newPaid),
		}
		if err := r.Repayments.Create(ctx, rp); err != nil {
			return err
		}
		dto = toDTO(rp)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Update corrects a record's amount or date. The bound check runs over every
// other repayment of the same loan; only this record's snapshot is rewritten.
func (u *Usecase) Update(ctx context.Context, repaymentID string, in UpdateRepaymentInput) (*RepaymentDTO, error) {
	amount, err := parseAmount(in.RepayAmount)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(in.RepayDate)
	if err != nil {
		return nil, err
	}

	var dto *RepaymentDTO
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		rp, err := r.Repayments.GetByRepaymentIDForUpdate(ctx, repaymentID)
		if err != nil {
			return err
		}
		// Lock the loan too, serializing against concurrent adds.
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, rp.LoanID)
		if err != nil {
			return err
		}
		otherPaid, err := r.Repayments.SumByLoanIDExcluding(ctx, l.LoanID, rp.ID)
		if err != nil {
			return err
		}
		if otherPaid.Add(amount).GreaterThan(l.LoanAmount) {
			return &repayment.ExceedsLoanAmountError{Max: l.LoanAmount.Sub(otherPaid)}
		}
		rp.RepayAmount = amount
		rp.RepayDate = date
		rp.Remaining = l.LoanAmount.Sub(otherPaid.Add(amount))
		if err := r.Repayments.Save(ctx, rp); err != nil {
			return err
		}
		dto = toDTO(rp)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Delete removes the record. Snapshots on the loan's other rows are left as
// written; outstanding figures are recomputed on read.
func (u *Usecase) Delete(ctx context.Context, repaymentID string) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		rp, err := r.Repayments.GetByRepaymentIDForUpdate(ctx, repaymentID)
		if err != nil {
			return err
		}
		return r.Repayments.Delete(ctx, rp)
	})
}

// Statement lists a loan's repayments in insertion order with the recomputed
// outstanding balance.
func (u *Usecase) Statement(ctx context.Context, loanID string) (*LoanStatement, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	rps, err := u.repo.ListByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	paid := decimal.Zero
	out := make([]RepaymentDTO, 0, len(rps))
	for i := range rps {
		paid = paid.Add(rps[i].RepayAmount)
		out = append(out, *toDTO(&rps[i]))
	}
	return &LoanStatement{
		LoanID:      l.LoanID,
		LoanAmount:  l.LoanAmount.StringFixed(2),
		TotalPaid:   paid.StringFixed(2),
		Outstanding: l.LoanAmount.Sub(paid).StringFixed(2),
		Repayments:  out,
	}, nil
}

// Outstanding is loan_amount − Σ repay_amount, regardless of stored snapshots.
func (u *Usecase) Outstanding(ctx context.Context, loanID string) (decimal.Decimal, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return decimal.Zero, err
	}
	paid, err := u.repo.SumByLoanID(ctx, loanID)
	if err != nil {
		return decimal.Zero, err
	}
	return l.LoanAmount.Sub(paid), nil
}
