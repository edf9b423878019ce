package repayment

import "time"

type AddRepaymentInput struct {
	LoanID      string `json:"loan_id"`
	RepayAmount string `json:"repay_amount"`
	RepayDate   string `json:"repay_date"`
}

type UpdateRepaymentInput struct {
	RepayAmount string `json:"repay_amount"`
	RepayDate   string `json:"repay_date"`
}

type RepaymentDTO struct {
	RepaymentID string    `json:"repayment_id"`
	LoanID      string    `json:"loan_id"`
	RepayAmount string    `json:"repay_amount"`
	RepayDate   string    `json:"repay_date"`
	// Snapshot written when the row was inserted or last edited.
	RemainingBalance string    `json:"remaining_balance"`
	CreatedAt        time.Time `json:"created_at"`
}

// LoanStatement is the per-loan view: every repayment in insertion order plus
// the authoritative outstanding figure recomputed from the principal.
type LoanStatement struct {
	LoanID      string         `json:"loan_id"`
	LoanAmount  string         `json:"loan_amount"`
	TotalPaid   string         `json:"total_paid"`
	Outstanding string         `json:"outstanding"`
	Repayments  []RepaymentDTO `json:"repayments"`
}
