package loan

import (
	"context"
	"strconv"
	"strings"
	"time"

	"communityfund-ledger/internal/domain/loan"
	"communityfund-ledger/internal/domain/uow"
	"communityfund-ledger/internal/usecase/fund"
	"communityfund-ledger/pkg/id"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type Usecase struct {
	repo loan.Repository
	uow  uow.UnitOfWork
}

// NewUsecase: repo serves plain reads, the UoW wraps every mutation that may
// touch the fund pool.
func NewUsecase(loans loan.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: loans, uow: tx}
}

type numerics struct {
	amount   decimal.Decimal
	duration int
	rate     decimal.Decimal
}

func parseNumerics(amountS, durationS, rateS string) (numerics, error) {
	var n numerics
	amount, err := decimal.NewFromString(strings.TrimSpace(amountS))
	if err != nil {
		return n, &loan.ValidationError{Field: "loan_amount", Reason: "must be a number"}
	}
	if !amount.IsPositive() {
		return n, &loan.ValidationError{Field: "loan_amount", Reason: "must be positive"}
	}
	duration, err := strconv.Atoi(strings.TrimSpace(durationS))
	if err != nil {
		return n, &loan.ValidationError{Field: "duration_months", Reason: "must be an integer"}
	}
	if duration <= 0 {
		return n, &loan.ValidationError{Field: "duration_months", Reason: "must be positive"}
	}
	rate, err := decimal.NewFromString(strings.TrimSpace(rateS))
	if err != nil {
		return n, &loan.ValidationError{Field: "interest_rate", Reason: "must be a number"}
	}
	if rate.IsNegative() {
		return n, &loan.ValidationError{Field: "interest_rate", Reason: "must not be negative"}
	}
	n.amount, n.duration, n.rate = amount, duration, rate
	return n, nil
}

func requireText(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return &loan.ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}

// applyStatus is the single place funds_allocated, approved_date and
// rejection_reason are written, so they can never drift from status.
func applyStatus(l *loan.Loan, st loan.Status, reason string, now time.Time) {
	l.Status = st
	l.FundsAllocated = st == loan.StatusApproved
	if st == loan.StatusApproved {
		if l.ApprovedDate == nil {
			d := now.Truncate(24 * time.Hour)
			l.ApprovedDate = &d
		}
		l.RejectionReason = ""
		return
	}
	l.ApprovedDate = nil
	l.RejectionReason = reason
}

func toDTO(l *loan.Loan) *LoanDTO {
	dto := &LoanDTO{
		LoanID:          l.LoanID,
		ApplicantName:   l.ApplicantName,
		GroupName:       l.GroupName,
		Purpose:         l.Purpose,
		LoanAmount:      l.LoanAmount.StringFixed(2),
		DurationMonths:  l.DurationMonths,
		InterestRate:    l.InterestRate.StringFixed(2),
		Status:          string(l.Status),
		RejectionReason: l.RejectionReason,
		FundsAllocated:  l.FundsAllocated,
		CreatedAt:       l.CreatedAt,
	}
	if l.ApprovedDate != nil {
		dto.ApprovedDate = l.ApprovedDate.Format(dateLayout)
	}
	return dto
}

// Create inserts a new application. Default status is Pending with no
// reservation; creating directly as Approved reserves funds in the same
// transaction and aborts entirely on a shortfall.
func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	for _, f := range []struct{ name, v string }{
		{"applicant_name", in.ApplicantName},
		{"group_name", in.GroupName},
		{"purpose", in.Purpose},
	} {
		if err := requireText(f.name, f.v); err != nil {
			return nil, err
		}
	}
	nums, err := parseNumerics(in.LoanAmount, in.DurationMonths, in.InterestRate)
	if err != nil {
		return nil, err
	}
	st := loan.StatusPending
	if in.Status != "" {
		st = loan.Status(in.Status)
		if !st.Valid() {
			return nil, &loan.ValidationError{Field: "status", Reason: "must be Pending, Approved or Rejected"}
		}
	}
	var approvedDate *time.Time
	if in.ApprovedDate != "" {
		d, err := time.Parse(dateLayout, in.ApprovedDate)
		if err != nil {
			return nil, &loan.ValidationError{Field: "approved_date", Reason: "must be YYYY-MM-DD"}
		}
		approvedDate = &d
	}

	l := &loan.Loan{
		LoanID:         id.NewLoanID(),
		ApplicantName:  strings.TrimSpace(in.ApplicantName),
		GroupName:      strings.TrimSpace(in.GroupName),
		Purpose:        strings.TrimSpace(in.Purpose),
		LoanAmount:     nums.amount,
		DurationMonths: nums.duration,
		InterestRate:   nums.rate,
		ApprovedDate:   approvedDate,
	}
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if st == loan.StatusApproved {
			if err := fund.Reserve(ctx, r, nums.amount); err != nil {
				return err
			}
		}
		applyStatus(l, st, in.RejectionReason, time.Now().UTC())
		return r.Loans.Create(ctx, l)
	})
	if err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

// Transition moves the loan to newStatus, reserving or releasing its principal
// whenever the Approved boundary is crossed. All edges are permitted, a
// Rejected loan may be re-opened straight to Approved.
func (u *Usecase) Transition(ctx context.Context, loanID, newStatus, reason string) (*LoanDTO, error) {
	st := loan.Status(newStatus)
	if !st.Valid() {
		return nil, &loan.ValidationError{Field: "status", Reason: "must be Pending, Approved or Rejected"}
	}
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		switch {
		case l.Status != loan.StatusApproved && st == loan.StatusApproved:
			if err := fund.Reserve(ctx, r, l.LoanAmount); err != nil {
				return err
			}
		case l.Status == loan.StatusApproved && st != loan.StatusApproved:
			if err := fund.Release(ctx, r, l.LoanAmount); err != nil {
				return err
			}
		}
		applyStatus(l, st, reason, time.Now().UTC())
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Update edits the whole record. Fund bookkeeping follows the status/amount
// delta: entering Approved reserves the new amount, leaving it releases the
// old one, and an amount change while Approved adjusts by the difference.
func (u *Usecase) Update(ctx context.Context, loanID string, in UpdateLoanInput) (*LoanDTO, error) {
	for _, f := range []struct{ name, v string }{
		{"applicant_name", in.ApplicantName},
		{"group_name", in.GroupName},
		{"purpose", in.Purpose},
	} {
		if err := requireText(f.name, f.v); err != nil {
			return nil, err
		}
	}
	nums, err := parseNumerics(in.LoanAmount, in.DurationMonths, in.InterestRate)
	if err != nil {
		return nil, err
	}

	var dto *LoanDTO
	err = u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		oldStatus, oldAmount := l.Status, l.LoanAmount
		newStatus := oldStatus
		if in.Status != "" {
			newStatus = loan.Status(in.Status)
			if !newStatus.Valid() {
				return &loan.ValidationError{Field: "status", Reason: "must be Pending, Approved or Rejected"}
			}
		}

		switch {
		case newStatus == loan.StatusApproved && oldStatus != loan.StatusApproved:
			if err := fund.Reserve(ctx, r, nums.amount); err != nil {
				return err
			}
		case oldStatus == loan.StatusApproved && newStatus != loan.StatusApproved:
			if err := fund.Release(ctx, r, oldAmount); err != nil {
				return err
			}
		case newStatus == loan.StatusApproved && !nums.amount.Equal(oldAmount):
			if err := fund.Adjust(ctx, r, nums.amount.Sub(oldAmount)); err != nil {
				return err
			}
		}

		l.ApplicantName = strings.TrimSpace(in.ApplicantName)
		l.GroupName = strings.TrimSpace(in.GroupName)
		l.Purpose = strings.TrimSpace(in.Purpose)
		l.LoanAmount = nums.amount
		l.DurationMonths = nums.duration
		l.InterestRate = nums.rate
		applyStatus(l, newStatus, in.RejectionReason, time.Now().UTC())
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Delete removes the record, releasing its allocation first when Approved so
// the pool never counts a loan that no longer exists.
func (u *Usecase) Delete(ctx context.Context, loanID string) error {
	return u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if l.Status == loan.StatusApproved {
			if err := fund.Release(ctx, r, l.LoanAmount); err != nil {
				return err
			}
		}
		return r.Loans.Delete(ctx, l)
	})
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

func (u *Usecase) List(ctx context.Context) ([]LoanDTO, error) {
	ls, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, *toDTO(&ls[i]))
	}
	return out, nil
}

func (u *Usecase) Summary(ctx context.Context) (*loan.Summary, error) {
	return u.repo.Summary(ctx)
}
