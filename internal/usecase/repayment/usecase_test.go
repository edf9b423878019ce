package repayment

import (
	"context"
	"errors"
	"sync"
	"testing"

	domainLoan "communityfund-ledger/internal/domain/loan"
	domainRepay "communityfund-ledger/internal/domain/repayment"
	"communityfund-ledger/internal/domain/uow"
	"communityfund-ledger/internal/testutil/loanmock"
	"communityfund-ledger/internal/testutil/repaymentmock"
	"communityfund-ledger/internal/testutil/uowmock"

	"github.com/shopspring/decimal"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

type env struct {
	uc    *Usecase
	loans map[string]domainLoan.Loan
	rows  []domainRepay.Repayment
	nexID uint64
}

// newEnv wires the ledger to in-memory stores behind a serialized unit of
// work, the same exclusion the gorm transactions provide.
func newEnv() *env {
	e := &env{loans: map[string]domainLoan.Loan{}}

	loans := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, loanID string) (*domainLoan.Loan, error) {
			l, ok := e.loans[loanID]
			if !ok {
				return nil, domainLoan.ErrNotFound
			}
			cp := l
			return &cp, nil
		},
	}
	loans.GetByLoanIDForUpdateFn = loans.GetByLoanIDFn

	repayments := &repaymentmock.Repo{
		CreateFn: func(ctx context.Context, rp *domainRepay.Repayment) error {
			e.nexID++
			rp.ID = e.nexID
			e.rows = append(e.rows, *rp)
			return nil
		},
		GetByRepaymentIDForUpdateFn: func(ctx context.Context, repaymentID string) (*domainRepay.Repayment, error) {
			for i := range e.rows {
				if e.rows[i].RepaymentID == repaymentID {
					cp := e.rows[i]
					return &cp, nil
				}
			}
			return nil, domainRepay.ErrNotFound
		},
		ListByLoanIDFn: func(ctx context.Context, loanID string) ([]domainRepay.Repayment, error) {
			var out []domainRepay.Repayment
			for _, rp := range e.rows {
				if rp.LoanID == loanID {
					out = append(out, rp)
				}
			}
			return out, nil
		},
		SumByLoanIDFn: func(ctx context.Context, loanID string) (decimal.Decimal, error) {
			total := decimal.Zero
			for _, rp := range e.rows {
				if rp.LoanID == loanID {
					total = total.Add(rp.RepayAmount)
				}
			}
			return total, nil
		},
		SumByLoanIDExcludingFn: func(ctx context.Context, loanID string, excludeID uint64) (decimal.Decimal, error) {
			total := decimal.Zero
			for _, rp := range e.rows {
				if rp.LoanID == loanID && rp.ID != excludeID {
					total = total.Add(rp.RepayAmount)
				}
			}
			return total, nil
		},
		SaveFn: func(ctx context.Context, rp *domainRepay.Repayment) error {
			for i := range e.rows {
				if e.rows[i].ID == rp.ID {
					e.rows[i] = *rp
					return nil
				}
			}
			return domainRepay.ErrNotFound
		},
		DeleteFn: func(ctx context.Context, rp *domainRepay.Repayment) error {
			for i := range e.rows {
				if e.rows[i].ID == rp.ID {
					e.rows = append(e.rows[:i], e.rows[i+1:]...)
					return nil
				}
			}
			return domainRepay.ErrNotFound
		},
	}

	tx := uowmock.NewSerialized(uow.Repos{Loans: loans, Repayments: repayments})
	e.uc = NewUsecase(loans, repayments, tx)
	return e
}

func (e *env) seedLoan(loanID string, amount int64) {
	e.loans[loanID] = domainLoan.Loan{
		LoanID:     loanID,
		LoanAmount: d(amount),
		Status:     domainLoan.StatusApproved,
	}
}

func add(t *testing.T, e *env, loanID, amount string) *RepaymentDTO {
	t.Helper()
	dto, err := e.uc.Add(context.Background(), AddRepaymentInput{
		LoanID:      loanID,
		RepayAmount: amount,
		RepayDate:   "2026-08-01",
	})
	if err != nil {
		t.Fatalf("add %s: %v", amount, err)
	}
	return dto
}

func TestAdd_TracksRemainingBalance(t *testing.T) {
	e := newEnv()
	e.seedLoan("LOAN-C", 500)

	dto := add(t, e, "LOAN-C", "200")
	if dto.RemainingBalance != "300.00" {
		t.Fatalf("remaining = %s, want 300.00", dto.RemainingBalance)
	}

	dto = add(t, e, "LOAN-C", "150")
	if dto.RemainingBalance != "150.00" {
		t.Fatalf("remaining = %s, want 150.00", dto.RemainingBalance)
	}
}

func TestAdd_OvershootFailsWithMax(t *testing.T) {
	e := newEnv()
	e.seedLoan("LOAN-C", 500)
	add(t, e, "LOAN-C", "200")

	_, err := e.uc.Add(context.Background(), AddRepaymentInput{
		LoanID: "LOAN-C", RepayAmount: "400", RepayDate: "2026-08-02",
	})
	var ele *domainRepay.ExceedsLoanAmountError
	if !errors.As(err, &ele) {
		t.Fatalf("want ExceedsLoanAmountError, got %v", err)
	}
	if !ele.Max.Equal(d(300)) {
		t.Fatalf("max = %s, want 300", ele.Max)
	}
	if len(e.rows) != 1 {
		t.Fatalf("record inserted despite overshoot: %d rows", len(e.rows))
	}
}

func TestAdd_ExactPayoffAllowed(t *testing.T) {
	e := newEnv()
	e.seedLoan("LOAN-C", 500)
	add(t, e, "LOAN-C", "200")

	dto := add(t, e, "LOAN-C", "300")
	if dto.RemainingBalance != "0.00" {
		t.Fatalf("remaining = %s, want 0.00", dto.RemainingBalance)
	}
}

func TestAdd_UnknownLoan(t *testing.T) {
	e := newEnv()
	_, err := e.uc.Add(context.Background(), AddRepaymentInput{
		LoanID: "LOAN-missing", RepayAmount: "100", RepayDate: "2026-08-01",
	})
	if !errors.Is(err, domainLoan.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestAdd_ValidationErrors(t *testing.T) {
	e := newEnv()
	e.seedLoan("LOAN-C", 500)
	tests := []struct {
		name   string
		amount string
		date   string
	}{
		{"amount not a number", "ten", "2026-08-01"},
		{"amount zero", "0", "2026-08-01"},
		{"amount negative", "-50", "2026-08-01"},
		{"bad date", "100", "01/08/2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.uc.Add(context.Background(), AddRepaymentInput{
				LoanID: "LOAN-C", RepayAmount: tt.amount, RepayDate: tt.date,
			})
			var ve *domainLoan.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("want ValidationError, got %v", err)
			}
		})
	}
}

func TestUpdate_BoundCheckExcludesEditedRow(t *testing.T) {
	e := newEnv()
	e.seedLoan("LOAN-C", 500)
	first := add(t, e, "LOAN-C", "200")
	add(t, e, "LOAN-C", "100")

	// other rows total 100, so the first row may grow to 400
	dto, err := e.uc.Update(context.Background(), first.RepaymentID, UpdateRepaymentInput{
		RepayAmount: "400", RepayDate: "2026-08-05",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.RemainingBalance != "0.00" {
		t.Fatalf("remaining = %s, want 0.00", dto.RemainingBalance)
	}

	// 401 would overshoot
	_, err = e.uc.Update(context.Background(), first.RepaymentID, UpdateRepaymentInput{
		RepayAmount: "401", RepayDate: "2026-08-05",
	})
	var ele *domainRepay.ExceedsLoanAmountError
	if !errors.As(err, &ele) {
		t.Fatalf("want ExceedsLoanAmountError, got %v", err)
	}
	if !ele.Max.Equal(d(400)) {
		t.Fatalf("max = %s, want 400", ele.Max)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	e := newEnv()
	_, err := e.uc.Update(context.Background(), "nope", UpdateRepaymentInput{
		RepayAmount: "10", RepayDate: "2026-08-01",
	})
	if !errors.Is(err, domainRepay.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDelete_KeepsOtherSnapshots(t *testing.T) {
	e := newEnv()
	e.seedLoan("LOAN-C", 500)
	first := add(t, e, "LOAN-C", "200")
	add(t, e, "LOAN-C", "100")

	if err := e.uc.Delete(context.Background(), first.RepaymentID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(e.rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(e.rows))
	}
	// snapshot on the surviving row is untouched (200 at write time)...
	if !e.rows[0].Remaining.Equal(d(200)) {
		t.Fatalf("surviving snapshot rewritten: %s", e.rows[0].Remaining)
	}
	// ...while the computed outstanding reflects the deletion
	out, err := e.uc.Outstanding(context.Background(), "LOAN-C")
	if err != nil {
		t.Fatalf("outstanding: %v", err)
	}
	if !out.Equal(d(400)) {
		t.Fatalf("outstanding = %s, want 400", out)
	}
}

func TestStatement_InsertionOrderAndOutstanding(t *testing.T) {
	e := newEnv()
	e.seedLoan("LOAN-C", 500)
	// dates deliberately out of order: balances follow insertion order
	if _, err := e.uc.Add(context.Background(), AddRepaymentInput{
		LoanID: "LOAN-C", RepayAmount: "200", RepayDate: "2026-08-20",
	}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := e.uc.Add(context.Background(), AddRepaymentInput{
		LoanID: "LOAN-C", RepayAmount: "100", RepayDate: "2026-08-01",
	}); err != nil {
		t.Fatalf("add: %v", err)
	}

	st, err := e.uc.Statement(context.Background(), "LOAN-C")
	if err != nil {
		t.Fatalf("statement: %v", err)
	}
	if st.TotalPaid != "300.00" || st.Outstanding != "200.00" {
		t.Fatalf("paid %s outstanding %s, want 300.00/200.00", st.TotalPaid, st.Outstanding)
	}
	if len(st.Repayments) != 2 {
		t.Fatalf("repayments = %d, want 2", len(st.Repayments))
	}
	if st.Repayments[0].RemainingBalance != "300.00" || st.Repayments[1].RemainingBalance != "200.00" {
		t.Fatalf("balance series = %s, %s; want 300.00, 200.00",
			st.Repayments[0].RemainingBalance, st.Repayments[1].RemainingBalance)
	}
}

// Two concurrent 300s against a 500 loan: exactly one commits.
func TestAdd_ConcurrentBoundCheck(t *testing.T) {
	e := newEnv()
	e.seedLoan("LOAN-C", 500)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.uc.Add(context.Background(), AddRepaymentInput{
				LoanID: "LOAN-C", RepayAmount: "300", RepayDate: "2026-08-01",
			})
		}(i)
	}
	wg.Wait()

	var failures int
	for _, err := range errs {
		if err != nil {
			var ele *domainRepay.ExceedsLoanAmountError
			if !errors.As(err, &ele) {
				t.Fatalf("unexpected error kind: %v", err)
			}
			if !ele.Max.Equal(d(200)) {
				t.Fatalf("max = %s, want 200", ele.Max)
			}
			failures++
		}
	}
	if failures != 1 {
		t.Fatalf("failures = %d, want exactly 1", failures)
	}
	if len(e.rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(e.rows))
	}
	out, err := e.uc.Outstanding(context.Background(), "LOAN-C")
	if err != nil {
		t.Fatalf("outstanding: %v", err)
	}
	if !out.Equal(d(200)) {
		t.Fatalf("outstanding = %s, want 200", out)
	}
}
