package fundmock

import (
	"context"
	"errors"
	"sync"
	"time"

	domain "communityfund-ledger/internal/domain/fund"

	"github.com/shopspring/decimal"
)

var _ domain.PoolRepository = (*PoolRepo)(nil)

// PoolRepo is a function-backed mock that satisfies domain.PoolRepository.
type PoolRepo struct {
	GetFn          func(ctx context.Context) (*domain.Pool, error)
	GetForUpdateFn func(ctx context.Context) (*domain.Pool, error)
	SaveFn         func(ctx context.Context, p *domain.Pool) error
}

func (m *PoolRepo) Get(ctx context.Context) (*domain.Pool, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx)
	}
	return nil, errors.New("fundmock: Get not implemented")
}

func (m *PoolRepo) GetForUpdate(ctx context.Context) (*domain.Pool, error) {
	if m.GetForUpdateFn != nil {
		return m.GetForUpdateFn(ctx)
	}
	return nil, errors.New("fundmock: GetForUpdate not implemented")
}

func (m *PoolRepo) Save(ctx context.Context, p *domain.Pool) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

// InMemoryPool keeps a real pool row behind a mutex: reserve/release tests can
// assert totals without a database.
type InMemoryPool struct {
	mu   sync.Mutex
	pool domain.Pool
}

func NewInMemoryPool(available, allocated decimal.Decimal) *InMemoryPool {
	return &InMemoryPool{pool: domain.Pool{
		ID:             1,
		TotalAvailable: available,
		TotalAllocated: allocated,
		LastUpdated:    time.Now().UTC(),
	}}
}

func (m *InMemoryPool) Get(ctx context.Context) (*domain.Pool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := m.pool
	return &cp, nil
}

func (m *InMemoryPool) GetForUpdate(ctx context.Context) (*domain.Pool, error) {
	return m.Get(ctx)
}

func (m *InMemoryPool) Save(ctx context.Context, p *domain.Pool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pool = *p
	return nil
}

func (m *InMemoryPool) Snapshot() domain.Pool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pool
}

// Ledger is a function-backed ContributionLedger.
type Ledger struct {
	NetVerifiedTotalFn func(ctx context.Context) (decimal.Decimal, error)
}

func (m *Ledger) NetVerifiedTotal(ctx context.Context) (decimal.Decimal, error) {
	if m.NetVerifiedTotalFn != nil {
		return m.NetVerifiedTotalFn(ctx)
	}
	return decimal.Zero, nil
}
