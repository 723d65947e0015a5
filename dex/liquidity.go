// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dex

import (
	"context"
	"errors"
	"time"

	"github.com/ava-labs/tokendex/codec"
	"github.com/ava-labs/tokendex/pricing"
	"github.com/ava-labs/tokendex/state"
	"github.com/ava-labs/tokendex/storage"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// CalculateShares quotes the shares a deposit would mint. See
// [pricing.CalculateShares] for how imbalanced deposits are treated.
func CalculateShares(
	amountX uint64,
	amountY uint64,
	reserveX uint64,
	reserveY uint64,
	totalShares uint64,
) (uint64, error) {
	shares, err := pricing.CalculateShares(amountX, amountY, reserveX, reserveY, totalShares)
	if err != nil {
		return 0, fromPricing(err)
	}
	return shares, nil
}

func liquidityKeys(pool codec.Address, actor codec.Address) state.Keys {
	return state.Keys{
		string(storage.PoolKey(pool)):          state.Write,
		string(storage.SharesKey(pool, actor)): state.All,
	}
}

// AddLiquidity deposits [amountX] and [amountY] and credits the minted shares
// to [actor].
//
// Shares are the floor of the smaller proportional amount, so the part of an
// imbalanced deposit beyond the pool ratio stays in the reserves and earns
// nothing. The deposit fails with [ErrSlippageTooHigh] if fewer than
// [minShares] would be minted.
func (e *Engine) AddLiquidity(
	ctx context.Context,
	actor codec.Address,
	assetX codec.Address,
	assetY codec.Address,
	amountX uint64,
	amountY uint64,
	minShares uint64,
) (shares uint64, err error) {
	ctx, span := e.tracer.Start(ctx, "Engine.AddLiquidity")
	defer span.End()
	start := time.Now()
	defer func() { e.done("addLiquidity", start, err) }()

	if amountX == 0 || amountY == 0 {
		return 0, ErrZeroAmount
	}
	pr, err := resolve(assetX, assetY)
	if errors.Is(err, storage.ErrIdenticalAssets) {
		return 0, ErrPoolNotFound
	}
	if err != nil {
		return 0, err
	}

	err = e.execute(ctx, liquidityKeys(pr.pool, actor), func(mu state.Mutable) error {
		p, ok, err := storage.GetPool(ctx, mu, pr.pool)
		if err != nil {
			return err
		}
		if !ok {
			return ErrPoolNotFound
		}
		reserveX, reserveY := pr.reserves(p)

		quoted, err := pricing.CalculateShares(amountX, amountY, reserveX, reserveY, p.TotalShares)
		if err != nil {
			return fromPricing(err)
		}
		if quoted == 0 {
			return ErrInsufficientLiquidity.withDetail("deposit mints no shares")
		}
		if quoted < minShares {
			return ErrSlippageTooHigh.withDetail("minted %d < min %d", quoted, minShares)
		}

		model := pricing.NewConstantProduct(reserveX, reserveY, p.TotalShares)
		shares, err = model.AddLiquidity(amountX, amountY)
		if err != nil {
			return fromPricing(err)
		}
		reserveX, reserveY, p.TotalShares = model.GetState()
		pr.setReserves(p, reserveX, reserveY)

		balance, err := storage.GetShares(ctx, mu, pr.pool, actor)
		if err != nil {
			return err
		}
		// Never fails while the balance is part of TotalShares.
		balance, err = smath.Add64(balance, shares)
		if err != nil {
			return ErrOverflow
		}
		if err := storage.SetShares(ctx, mu, pr.pool, actor, balance); err != nil {
			return err
		}
		return storage.SetPool(ctx, mu, pr.pool, p)
	})
	if err != nil {
		return 0, err
	}
	return shares, nil
}

// RemoveLiquidity burns [shares] of [actor] and returns the redeemed amounts
// in caller order. Redeeming every outstanding share empties the pool.
func (e *Engine) RemoveLiquidity(
	ctx context.Context,
	actor codec.Address,
	assetX codec.Address,
	assetY codec.Address,
	shares uint64,
	minX uint64,
	minY uint64,
) (amountX uint64, amountY uint64, err error) {
	ctx, span := e.tracer.Start(ctx, "Engine.RemoveLiquidity")
	defer span.End()
	start := time.Now()
	defer func() { e.done("removeLiquidity", start, err) }()

	if shares == 0 {
		return 0, 0, ErrZeroAmount
	}
	pr, err := resolve(assetX, assetY)
	if errors.Is(err, storage.ErrIdenticalAssets) {
		return 0, 0, ErrPoolNotFound
	}
	if err != nil {
		return 0, 0, err
	}

	err = e.execute(ctx, liquidityKeys(pr.pool, actor), func(mu state.Mutable) error {
		p, ok, err := storage.GetPool(ctx, mu, pr.pool)
		if err != nil {
			return err
		}
		if !ok {
			return ErrPoolNotFound
		}
		balance, err := storage.GetShares(ctx, mu, pr.pool, actor)
		if err != nil {
			return err
		}
		if balance < shares {
			return ErrInsufficientBalance.withDetail("balance %d < %d", balance, shares)
		}

		reserveX, reserveY := pr.reserves(p)
		model := pricing.NewConstantProduct(reserveX, reserveY, p.TotalShares)
		amountX, amountY, err = model.RemoveLiquidity(shares)
		if err != nil {
			return fromPricing(err)
		}
		if amountX < minX || amountY < minY {
			return ErrSlippageTooHigh.withDetail("redeemed (%d, %d) < min (%d, %d)", amountX, amountY, minX, minY)
		}
		reserveX, reserveY, p.TotalShares = model.GetState()
		pr.setReserves(p, reserveX, reserveY)

		if err := storage.SetShares(ctx, mu, pr.pool, actor, balance-shares); err != nil {
			return err
		}
		return storage.SetPool(ctx, mu, pr.pool, p)
	})
	if err != nil {
		return 0, 0, err
	}
	return amountX, amountY, nil
}

// UserShares returns the shares [depositor] holds in the pair's pool. A
// missing pool or record reads as zero.
func (e *Engine) UserShares(
	ctx context.Context,
	depositor codec.Address,
	assetX codec.Address,
	assetY codec.Address,
) (uint64, error) {
	ctx, span := e.tracer.Start(ctx, "Engine.UserShares")
	defer span.End()

	pool, err := storage.PoolAddress(assetX, assetY)
	if errors.Is(err, storage.ErrIdenticalAssets) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var shares uint64
	keys := state.Keys{
		string(storage.PoolKey(pool)):              state.Read,
		string(storage.SharesKey(pool, depositor)): state.Read,
	}
	err = e.read(keys, func(im state.Immutable) error {
		shares, err = storage.GetShares(ctx, im, pool, depositor)
		return err
	})
	return shares, err
}
