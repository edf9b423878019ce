package fund

import (
	"context"

	"github.com/shopspring/decimal"
)

type PoolRepository interface {
	Get(ctx context.Context) (*Pool, error)
	// GetForUpdate locks the pool row so the check-then-mutate of a
	// reservation cannot interleave with another caller's.
	GetForUpdate(ctx context.Context) (*Pool, error)
	Save(ctx context.Context, p *Pool) error
}

// ContributionLedger supplies the net verified total: verified contributions
// minus recorded credits. This service only reads it.
type ContributionLedger interface {
	NetVerifiedTotal(ctx context.Context) (decimal.Decimal, error)
}
