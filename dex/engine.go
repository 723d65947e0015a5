// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dex

import (
	"context"
	"errors"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ava-labs/tokendex/codec"
	"github.com/ava-labs/tokendex/lockmap"
	"github.com/ava-labs/tokendex/state"
	"github.com/ava-labs/tokendex/storage"
	"github.com/ava-labs/tokendex/tstate"
)

const defaultLockmapSize = 1024

// Engine owns the asset registry, the pool directory and every share ledger
// stored in its [state.Database].
//
// Each mutating operation locks the keys it touches, runs all of its checks
// against a [tstate.View] and commits the view in one batch only if every
// check passed. Operations on different pools lock disjoint keys and run in
// parallel.
type Engine struct {
	log     logging.Logger
	tracer  trace.Tracer
	db      state.Database
	admin   codec.Address
	locks   *lockmap.Lockmap
	metrics *metrics
}

func New(
	log logging.Logger,
	tracer trace.Tracer,
	db state.Database,
	admin codec.Address,
	registerer prometheus.Registerer,
) (*Engine, error) {
	m, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	return &Engine{
		log:     log,
		tracer:  tracer,
		db:      db,
		admin:   admin,
		locks:   lockmap.New(defaultLockmapSize),
		metrics: m,
	}, nil
}

// Admin returns the only actor allowed to register assets.
func (e *Engine) Admin() codec.Address {
	return e.admin
}

// PoolSnapshot is a pool as seen from the caller's asset order.
type PoolSnapshot struct {
	Pool        codec.Address `json:"pool"`
	AssetX      codec.Address `json:"assetX"`
	AssetY      codec.Address `json:"assetY"`
	ReserveX    uint64        `json:"reserveX"`
	ReserveY    uint64        `json:"reserveY"`
	TotalShares uint64        `json:"totalShares"`
}

// pair is a pool resolved from a caller-ordered (assetX, assetY).
type pair struct {
	pool codec.Address
	// flipped is set when assetX is the pool's second asset.
	flipped bool
}

func resolve(assetX codec.Address, assetY codec.Address) (pair, error) {
	pool, err := storage.PoolAddress(assetX, assetY)
	if err != nil {
		return pair{}, err
	}
	return pair{pool: pool, flipped: assetX.Compare(assetY) > 0}, nil
}

// reserves returns the reserves of [p] in caller orientation.
func (pr pair) reserves(p *storage.Pool) (uint64, uint64) {
	if pr.flipped {
		return p.Reserve1, p.Reserve0
	}
	return p.Reserve0, p.Reserve1
}

// setReserves stores caller-oriented reserves back into [p].
func (pr pair) setReserves(p *storage.Pool, reserveX uint64, reserveY uint64) {
	if pr.flipped {
		p.Reserve0, p.Reserve1 = reserveY, reserveX
		return
	}
	p.Reserve0, p.Reserve1 = reserveX, reserveY
}

func (pr pair) snapshot(p *storage.Pool) *PoolSnapshot {
	s := &PoolSnapshot{
		Pool:        pr.pool,
		AssetX:      p.Asset0,
		AssetY:      p.Asset1,
		TotalShares: p.TotalShares,
	}
	if pr.flipped {
		s.AssetX, s.AssetY = p.Asset1, p.Asset0
	}
	s.ReserveX, s.ReserveY = pr.reserves(p)
	return s
}

// execute runs [f] against a view limited to [keys] while holding their
// locks, and commits the view only if [f] succeeds.
func (e *Engine) execute(ctx context.Context, keys state.Keys, f func(state.Mutable) error) error {
	unlock := e.locks.Acquire(keys.WriteKeys())
	defer unlock()

	view := tstate.New(e.db, keys)
	if err := f(view); err != nil {
		return err
	}
	return view.Commit(ctx, e.db)
}

// read runs [f] while holding read locks on [keys].
func (e *Engine) read(keys state.Keys, f func(state.Immutable) error) error {
	unlock := e.locks.Acquire(keys.WriteKeys())
	defer unlock()

	return f(tstate.New(e.db, keys))
}

// done records the outcome of a mutating operation.
func (e *Engine) done(operation string, start time.Time, err error) {
	e.metrics.observe(operation, start, err)
	if err == nil {
		return
	}
	var dexErr *Error
	if errors.As(err, &dexErr) {
		e.log.Debug("operation rejected",
			zap.String("operation", operation),
			zap.Uint32("code", uint32(dexErr.Code)),
			zap.String("reason", dexErr.Msg),
		)
		return
	}
	e.log.Warn("operation failed",
		zap.String("operation", operation),
		zap.Error(err),
	)
}
