package fund

import (
	"context"
	"fmt"
	"time"

	"communityfund-ledger/internal/domain/fund"
	"communityfund-ledger/internal/domain/uow"

	"github.com/shopspring/decimal"
)

type Usecase struct{ uow uow.UnitOfWork }

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

// Refresh pulls the net verified total from the contribution ledger into the
// pool. On ledger failure the previous total_available stays untouched.
func (u *Usecase) Refresh(ctx context.Context) (*fund.Pool, error) {
	var out *fund.Pool
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		net, err := r.Contributions.NetVerifiedTotal(ctx)
		if err != nil {
			return fmt.Errorf("%w: %v", fund.ErrLedgerUnavailable, err)
		}
		p, err := r.Pool.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		p.TotalAvailable = net
		p.LastUpdated = time.Now().UTC()
		if err := r.Pool.Save(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Status returns the pool row without mutating it.
func (u *Usecase) Status(ctx context.Context) (*fund.Pool, error) {
	var out *fund.Pool
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Pool.Get(ctx)
		if err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Available is total_available − total_allocated.
func (u *Usecase) Available(ctx context.Context) (decimal.Decimal, error) {
	p, err := u.Status(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return p.Available(), nil
}

func (u *Usecase) Reserve(ctx context.Context, amount decimal.Decimal) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return Reserve(ctx, r, amount)
	})
}

func (u *Usecase) Release(ctx context.Context, amount decimal.Decimal) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return Release(ctx, r, amount)
	})
}

func (u *Usecase) Adjust(ctx context.Context, delta decimal.Decimal) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return Adjust(ctx, r, delta)
	})
}

// Reserve commits amount against the pool, failing when it exceeds what is
// available. Callers must already hold a transaction; the pool row is locked
// here so the check and the write cannot interleave with another caller.
func Reserve(ctx context.Context, r uow.Repos, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("reserve amount must be positive, got %s", amount)
	}
	p, err := r.Pool.GetForUpdate(ctx)
	if err != nil {
		return err
	}
	if amount.GreaterThan(p.Available()) {
		return &fund.InsufficientFundsError{Required: amount, Available: p.Available()}
	}
	p.TotalAllocated = p.TotalAllocated.Add(amount)
	p.LastUpdated = time.Now().UTC()
	return r.Pool.Save(ctx, p)
}

// Release returns a previously reserved amount to the pool. The tracker does
// not verify the pairing; callers keep reserve/release balanced.
func Release(ctx context.Context, r uow.Repos, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("release amount must be positive, got %s", amount)
	}
	p, err := r.Pool.GetForUpdate(ctx)
	if err != nil {
		return err
	}
	p.TotalAllocated = p.TotalAllocated.Sub(amount)
	p.LastUpdated = time.Now().UTC()
	return r.Pool.Save(ctx, p)
}

// Adjust reserves a positive delta, releases a negative one, and ignores zero.
func Adjust(ctx context.Context, r uow.Repos, delta decimal.Decimal) error {
	switch {
	case delta.IsPositive():
		return Reserve(ctx, r, delta)
	case delta.IsNegative():
		return Release(ctx, r, delta.Neg())
	}
	return nil
}
