// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dex

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/ava-labs/tokendex/codec"
	"github.com/ava-labs/tokendex/pricing"
	"github.com/ava-labs/tokendex/state"
	"github.com/ava-labs/tokendex/storage"
)

// GetSwapOutput quotes a swap of [amountIn] against the given reserves with
// the 30 bps fee taken from the input.
func GetSwapOutput(amountIn uint64, reserveIn uint64, reserveOut uint64) (uint64, error) {
	out, err := pricing.GetSwapOutput(amountIn, reserveIn, reserveOut)
	if err != nil {
		return 0, fromPricing(err)
	}
	return out, nil
}

// SwapXForY sells [amountIn] of assetX for at least [minAmountOut] of assetY.
func (e *Engine) SwapXForY(
	ctx context.Context,
	actor codec.Address,
	assetX codec.Address,
	assetY codec.Address,
	amountIn uint64,
	minAmountOut uint64,
) (uint64, error) {
	ctx, span := e.tracer.Start(ctx, "Engine.SwapXForY")
	defer span.End()

	return e.swap(ctx, "swapXForY", actor, assetX, assetY, amountIn, minAmountOut, true)
}

// SwapYForX sells [amountIn] of assetY for at least [minAmountOut] of assetX.
func (e *Engine) SwapYForX(
	ctx context.Context,
	actor codec.Address,
	assetX codec.Address,
	assetY codec.Address,
	amountIn uint64,
	minAmountOut uint64,
) (uint64, error) {
	ctx, span := e.tracer.Start(ctx, "Engine.SwapYForX")
	defer span.End()

	return e.swap(ctx, "swapYForX", actor, assetX, assetY, amountIn, minAmountOut, false)
}

func (e *Engine) swap(
	ctx context.Context,
	operation string,
	actor codec.Address,
	assetX codec.Address,
	assetY codec.Address,
	amountIn uint64,
	minAmountOut uint64,
	xForY bool,
) (amountOut uint64, err error) {
	start := time.Now()
	defer func() { e.done(operation, start, err) }()

	pr, err := resolve(assetX, assetY)
	if errors.Is(err, storage.ErrIdenticalAssets) {
		return 0, ErrPoolNotFound
	}
	if err != nil {
		return 0, err
	}

	keys := state.Keys{string(storage.PoolKey(pr.pool)): state.Write}
	err = e.execute(ctx, keys, func(mu state.Mutable) error {
		p, ok, err := storage.GetPool(ctx, mu, pr.pool)
		if err != nil {
			return err
		}
		if !ok {
			return ErrPoolNotFound
		}
		if amountIn == 0 {
			return ErrZeroAmount
		}

		reserveX, reserveY := pr.reserves(p)
		model := pricing.NewConstantProduct(reserveX, reserveY, p.TotalShares)
		amountOut, err = model.Swap(amountIn, xForY)
		if err != nil {
			return fromPricing(err)
		}
		if amountOut < minAmountOut {
			return ErrSlippageTooHigh.withDetail("output %d < min %d", amountOut, minAmountOut)
		}
		reserveX, reserveY, _ = model.GetState()
		pr.setReserves(p, reserveX, reserveY)
		return storage.SetPool(ctx, mu, pr.pool, p)
	})
	if err != nil {
		return 0, err
	}
	e.metrics.swaps.Inc()
	e.log.Debug("swapped",
		zap.Stringer("actor", actor),
		zap.Stringer("pool", pr.pool),
		zap.Bool("xForY", xForY),
		zap.Uint64("amountIn", amountIn),
		zap.Uint64("amountOut", amountOut),
	)
	return amountOut, nil
}
