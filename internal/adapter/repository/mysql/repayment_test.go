package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	repayDomain "communityfund-ledger/internal/domain/repayment"
	"communityfund-ledger/pkg/id"

	"github.com/shopspring/decimal"
)

func makeRepayment(loanID string, amount, remaining int64, date time.Time) *repayDomain.Repayment {
	return &repayDomain.Repayment{
		RepaymentID: id.NewID32(),
		LoanID:      loanID,
		RepayAmount: decimal.NewFromInt(amount),
		RepayDate:   date,
		Remaining:   decimal.NewFromInt(remaining),
	}
}

func TestRepaymentRepository_SumByLoanID(t *testing.T) {
	repo := NewRepaymentRepository(openTestDB(t))
	ctx := context.Background()
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	for _, rp := range []*repayDomain.Repayment{
		makeRepayment("LOAN-C", 200, 300, day),
		makeRepayment("LOAN-C", 100, 200, day.AddDate(0, 0, 3)),
		makeRepayment("LOAN-other", 50, 450, day),
	} {
		if err := repo.Create(ctx, rp); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	total, err := repo.SumByLoanID(ctx, "LOAN-C")
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if !total.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("sum = %s, want 300", total)
	}

	// empty loan sums to zero, not an error
	total, err = repo.SumByLoanID(ctx, "LOAN-empty")
	if err != nil {
		t.Fatalf("sum empty: %v", err)
	}
	if !total.IsZero() {
		t.Fatalf("sum = %s, want 0", total)
	}
}

func TestRepaymentRepository_SumExcluding(t *testing.T) {
	repo := NewRepaymentRepository(openTestDB(t))
	ctx := context.Background()
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	first := makeRepayment("LOAN-C", 200, 300, day)
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, makeRepayment("LOAN-C", 100, 200, day)); err != nil {
		t.Fatalf("create: %v", err)
	}

	total, err := repo.SumByLoanIDExcluding(ctx, "LOAN-C", first.ID)
	if err != nil {
		t.Fatalf("sum excluding: %v", err)
	}
	if !total.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("sum = %s, want 100", total)
	}
}

func TestRepaymentRepository_ListInsertionOrder(t *testing.T) {
	repo := NewRepaymentRepository(openTestDB(t))
	ctx := context.Background()

	// later date first: list order must still follow insertion
	late := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	early := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	a := makeRepayment("LOAN-C", 200, 300, late)
	b := makeRepayment("LOAN-C", 100, 200, early)
	for _, rp := range []*repayDomain.Repayment{a, b} {
		if err := repo.Create(ctx, rp); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	rows, err := repo.ListByLoanID(ctx, "LOAN-C")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].RepaymentID != a.RepaymentID || rows[1].RepaymentID != b.RepaymentID {
		t.Fatalf("order not by insertion: %s, %s", rows[0].RepaymentID, rows[1].RepaymentID)
	}
}

func TestRepaymentRepository_GetSaveDelete(t *testing.T) {
	repo := NewRepaymentRepository(openTestDB(t))
	ctx := context.Background()
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	rp := makeRepayment("LOAN-C", 200, 300, day)
	if err := repo.Create(ctx, rp); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByRepaymentID(ctx, rp.RepaymentID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.RepayAmount = decimal.NewFromInt(250)
	got.Remaining = decimal.NewFromInt(250)
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err = repo.GetByRepaymentID(ctx, rp.RepaymentID)
	if err != nil {
		t.Fatalf("get after save: %v", err)
	}
	if !got.RepayAmount.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("amount = %s, want 250", got.RepayAmount)
	}

	if err := repo.Delete(ctx, got); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByRepaymentID(ctx, rp.RepaymentID); !errors.Is(err, repayDomain.ErrNotFound) {
		t.Fatalf("want ErrNotFound after delete, got %v", err)
	}
}
