package loan

import "time"

// Numeric fields arrive as strings (the data-entry layer submits text) and are
// parsed here before any transition logic runs.
type CreateLoanInput struct {
	ApplicantName   string `json:"applicant_name"`
	GroupName       string `json:"group_name"`
	Purpose         string `json:"purpose"`
	LoanAmount      string `json:"loan_amount"`
	DurationMonths  string `json:"duration_months"`
	InterestRate    string `json:"interest_rate"`
	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason"`
	ApprovedDate    string `json:"approved_date"`
}

type UpdateLoanInput struct {
	ApplicantName   string `json:"applicant_name"`
	GroupName       string `json:"group_name"`
	Purpose         string `json:"purpose"`
	LoanAmount      string `json:"loan_amount"`
	DurationMonths  string `json:"duration_months"`
	InterestRate    string `json:"interest_rate"`
	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason"`
}

type LoanDTO struct {
	LoanID          string    `json:"loan_id"`
	ApplicantName   string    `json:"applicant_name"`
	GroupName       string    `json:"group_name"`
	Purpose         string    `json:"purpose"`
	LoanAmount      string    `json:"loan_amount"`
	DurationMonths  int       `json:"duration_months"`
	InterestRate    string    `json:"interest_rate"`
	Status          string    `json:"status"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	ApprovedDate    string    `json:"approved_date,omitempty"`
	FundsAllocated  bool      `json:"funds_allocated"`
	CreatedAt       time.Time `json:"created_at"`
}
