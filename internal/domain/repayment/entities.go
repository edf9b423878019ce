package repayment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Repayment is one payment against a loan's principal. The numeric PK is the
// insertion order; cumulative sums run over it, never over RepayDate.
type Repayment struct {
	ID          uint64          `gorm:"primaryKey;column:id" json:"-"`
	RepaymentID string          `gorm:"size:32;uniqueIndex:ux_repayments_repayment_id" json:"repayment_id"`
	LoanID      string          `gorm:"size:36;index:idx_repayments_loan_id" json:"loan_id"`
	RepayAmount decimal.Decimal `gorm:"type:decimal(18,2)" json:"repay_amount"`
	RepayDate   time.Time       `gorm:"type:date" json:"repay_date"`
	// Remaining is the balance snapshot taken when this row was written.
	// It is an audit value; the authoritative figure is always recomputed
	// from loan_amount minus the sum of repayments.
	Remaining decimal.Decimal `gorm:"type:decimal(18,2);column:remaining" json:"remaining_balance"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Repayment) TableName() string { return "repayments" }
