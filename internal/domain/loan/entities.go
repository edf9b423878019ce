package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Loan struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID          string          `gorm:"size:36;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	ApplicantName   string          `gorm:"size:120" json:"applicant_name"`
	GroupName       string          `gorm:"size:120" json:"group_name"`
	Purpose         string          `gorm:"type:text" json:"purpose"`
	LoanAmount      decimal.Decimal `gorm:"type:decimal(18,2)" json:"loan_amount"`
	DurationMonths  int             `gorm:"column:duration_months" json:"duration_months"`
	InterestRate    decimal.Decimal `gorm:"type:decimal(6,2)" json:"interest_rate"`
	Status          Status          `gorm:"size:16;index:idx_loans_status" json:"status"`
	RejectionReason string          `gorm:"type:text" json:"rejection_reason,omitempty"`
	ApprovedDate    *time.Time      `gorm:"type:date" json:"approved_date,omitempty"`
	// FundsAllocated mirrors Status == Approved. Only the workflow writes it;
	// nothing else may set it independently.
	FundsAllocated bool      `json:"funds_allocated"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }
