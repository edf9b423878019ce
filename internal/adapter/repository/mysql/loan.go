package mysql

import (
	"context"
	"errors"

	loanDomain "communityfund-ledger/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	err := r.db.WithContext(ctx).Create(l).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return loanDomain.ErrDuplicateID
	}
	return err
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) Delete(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Delete(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_id = ?", loanID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *LoanRepository) List(ctx context.Context) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).Order("id ASC").Find(&out)
	return out, res.Error
}

func (r *LoanRepository) Summary(ctx context.Context) (*loanDomain.Summary, error) {
	var s loanDomain.Summary
	row := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Select(`COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'Approved' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'Pending'  THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'Rejected' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'Approved' THEN loan_amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'Pending'  THEN loan_amount ELSE 0 END), 0)`).
		Row()
	if err := row.Scan(&s.TotalLoans, &s.ApprovedLoans, &s.PendingLoans, &s.RejectedLoans,
		&s.ApprovedAmount, &s.PendingAmount); err != nil {
		return nil, err
	}
	return &s, nil
}
