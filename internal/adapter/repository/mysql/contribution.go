package mysql

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ContributionLedger reads the contribution store owned by the record-keeping
// side of the system. Net verified total = verified contributions − credits.
type ContributionLedger struct{ db *gorm.DB }

func NewContributionLedger(db *gorm.DB) *ContributionLedger {
	return &ContributionLedger{db: db}
}

func (l *ContributionLedger) NetVerifiedTotal(ctx context.Context) (decimal.Decimal, error) {
	var contributed decimal.Decimal
	row := l.db.WithContext(ctx).
		Raw("SELECT COALESCE(SUM(amount), 0) FROM contributions WHERE status = ?", "Verified").
		Row()
	if err := row.Scan(&contributed); err != nil {
		return decimal.Zero, err
	}

	var credited decimal.Decimal
	row = l.db.WithContext(ctx).
		Raw("SELECT COALESCE(SUM(credit_amount), 0) FROM credits").
		Row()
	if err := row.Scan(&credited); err != nil {
		return decimal.Zero, err
	}

	return contributed.Sub(credited), nil
}
