package fund

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pool is the singleton fund-allocation row: the last refreshed net verified
// total and the sum of principals committed to approved loans.
type Pool struct {
	ID             uint64          `gorm:"primaryKey;column:id" json:"-"`
	TotalAvailable decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_available"`
	TotalAllocated decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_allocated"`
	LastUpdated    time.Time       `json:"last_updated"`
}

func (Pool) TableName() string { return "fund_allocation" }

// Available is what approvals may still draw on.
func (p *Pool) Available() decimal.Decimal {
	return p.TotalAvailable.Sub(p.TotalAllocated)
}
