// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dex

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/ava-labs/tokendex/codec"
	"github.com/ava-labs/tokendex/state"
	"github.com/ava-labs/tokendex/storage"
)

// CreatePool creates an empty pool for the unordered pair. Both assets must
// be registered and distinct; a rejected pair reports [ErrUnauthorized].
func (e *Engine) CreatePool(ctx context.Context, assetX codec.Address, assetY codec.Address) (err error) {
	ctx, span := e.tracer.Start(ctx, "Engine.CreatePool")
	defer span.End()
	start := time.Now()
	defer func() { e.done("createPool", start, err) }()

	first, second, err := storage.SortAssets(assetX, assetY)
	if errors.Is(err, storage.ErrIdenticalAssets) {
		return ErrUnauthorized.withDetail("identical assets %s", assetX)
	}
	if err != nil {
		return err
	}
	pool, err := storage.PoolAddress(first, second)
	if err != nil {
		return err
	}

	keys := state.Keys{
		string(storage.AssetKey(first)):  state.Read,
		string(storage.AssetKey(second)): state.Read,
		string(storage.PoolKey(pool)):    state.Allocate,
	}
	err = e.execute(ctx, keys, func(mu state.Mutable) error {
		for _, asset := range []codec.Address{first, second} {
			registered, err := storage.IsRegistered(ctx, mu, asset)
			if err != nil {
				return err
			}
			if !registered {
				return ErrUnauthorized.withDetail("asset %s is not registered", asset)
			}
		}
		_, exists, err := storage.GetPool(ctx, mu, pool)
		if err != nil {
			return err
		}
		if exists {
			return ErrPoolExists.withDetail("%s", pool)
		}
		return storage.SetPool(ctx, mu, pool, &storage.Pool{
			Asset0: first,
			Asset1: second,
		})
	})
	if err != nil {
		return err
	}
	e.metrics.poolsCreated.Inc()
	e.log.Info("created pool",
		zap.Stringer("pool", pool),
		zap.Stringer("asset0", first),
		zap.Stringer("asset1", second),
	)
	return nil
}

// GetPool returns the pool of the pair in the caller's asset order, or false
// if there is none.
func (e *Engine) GetPool(ctx context.Context, assetX codec.Address, assetY codec.Address) (*PoolSnapshot, bool, error) {
	ctx, span := e.tracer.Start(ctx, "Engine.GetPool")
	defer span.End()

	pr, err := resolve(assetX, assetY)
	if errors.Is(err, storage.ErrIdenticalAssets) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var snapshot *PoolSnapshot
	keys := state.Keys{string(storage.PoolKey(pr.pool)): state.Read}
	err = e.read(keys, func(im state.Immutable) error {
		p, ok, err := storage.GetPool(ctx, im, pr.pool)
		if err != nil || !ok {
			return err
		}
		snapshot = pr.snapshot(p)
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return snapshot, snapshot != nil, nil
}

// Pools lists every pool in canonical asset order.
func (e *Engine) Pools(ctx context.Context) ([]*PoolSnapshot, error) {
	ctx, span := e.tracer.Start(ctx, "Engine.Pools")
	defer span.End()

	pools := []*PoolSnapshot{}
	err := storage.IteratePools(ctx, e.db, func(pool codec.Address, p *storage.Pool) bool {
		pools = append(pools, pair{pool: pool}.snapshot(p))
		return true
	})
	return pools, err
}
