package mysql

import (
	"context"
	"errors"

	repayDomain "communityfund-ledger/internal/domain/repayment"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RepaymentRepository struct{ db *gorm.DB }

func NewRepaymentRepository(db *gorm.DB) *RepaymentRepository {
	return &RepaymentRepository{db: db}
}

func (r *RepaymentRepository) Create(ctx context.Context, rp *repayDomain.Repayment) error {
	return r.db.WithContext(ctx).Create(rp).Error
}

func (r *RepaymentRepository) Save(ctx context.Context, rp *repayDomain.Repayment) error {
	return r.db.WithContext(ctx).Save(rp).Error
}

func (r *RepaymentRepository) Delete(ctx context.Context, rp *repayDomain.Repayment) error {
	return r.db.WithContext(ctx).Delete(rp).Error
}

func (r *RepaymentRepository) GetByRepaymentID(ctx context.Context, repaymentID string) (*repayDomain.Repayment, error) {
	var out repayDomain.Repayment
	res := r.db.WithContext(ctx).Where("repayment_id = ?", repaymentID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, repayDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *RepaymentRepository) GetByRepaymentIDForUpdate(ctx context.Context, repaymentID string) (*repayDomain.Repayment, error) {
	var out repayDomain.Repayment
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("repayment_id = ?", repaymentID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, repayDomain.ErrNotFound
	}
	return &out, res.Error
}

// ListByLoanID orders by numeric pk: cumulative sums follow insertion order,
// not repay_date.
func (r *RepaymentRepository) ListByLoanID(ctx context.Context, loanID string) ([]repayDomain.Repayment, error) {
	var out []repayDomain.Repayment
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).Order("id ASC").Find(&out)
	return out, res.Error
}

func (r *RepaymentRepository) SumByLoanID(ctx context.Context, loanID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.db.WithContext(ctx).Model(&repayDomain.Repayment{}).
		Where("loan_id = ?", loanID).
		Select("COALESCE(SUM(repay_amount), 0)").
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *RepaymentRepository) SumByLoanIDExcluding(ctx context.Context, loanID string, excludeID uint64) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.db.WithContext(ctx).Model(&repayDomain.Repayment{}).
		Where("loan_id = ? AND id <> ?", loanID, excludeID).
		Select("COALESCE(SUM(repay_amount), 0)").
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
