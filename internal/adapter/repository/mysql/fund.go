package mysql

import (
	"context"
	"errors"
	"time"

	fundDomain "communityfund-ledger/internal/domain/fund"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PoolRepository struct{ db *gorm.DB }

func NewPoolRepository(db *gorm.DB) *PoolRepository { return &PoolRepository{db: db} }

func (r *PoolRepository) Get(ctx context.Context) (*fundDomain.Pool, error) {
	var out fundDomain.Pool
	res := r.db.WithContext(ctx).First(&out)
	return &out, res.Error
}

func (r *PoolRepository) GetForUpdate(ctx context.Context) (*fundDomain.Pool, error) {
	var out fundDomain.Pool
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&out)
	return &out, res.Error
}

func (r *PoolRepository) Save(ctx context.Context, p *fundDomain.Pool) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Seed inserts the singleton row when the table is empty, zeroed like the
// original bootstrap.
func (r *PoolRepository) Seed(ctx context.Context) error {
	var existing fundDomain.Pool
	err := r.db.WithContext(ctx).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Create(&fundDomain.Pool{
		TotalAvailable: decimal.Zero,
		TotalAllocated: decimal.Zero,
		LastUpdated:    time.Now().UTC(),
	}).Error
}
