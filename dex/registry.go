// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dex

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ava-labs/tokendex/codec"
	"github.com/ava-labs/tokendex/state"
	"github.com/ava-labs/tokendex/storage"
)

// RegisterAsset allows [asset] to be used in pools. Only the admin may
// register assets. Registering an asset twice is a no-op.
func (e *Engine) RegisterAsset(ctx context.Context, actor codec.Address, asset codec.Address) (err error) {
	ctx, span := e.tracer.Start(ctx, "Engine.RegisterAsset")
	defer span.End()
	start := time.Now()
	defer func() { e.done("registerAsset", start, err) }()

	if actor != e.admin {
		return ErrUnauthorized.withDetail("%s is not the admin", actor)
	}
	keys := state.Keys{string(storage.AssetKey(asset)): state.All}
	return e.execute(ctx, keys, func(mu state.Mutable) error {
		registered, err := storage.IsRegistered(ctx, mu, asset)
		if err != nil {
			return err
		}
		if registered {
			return nil
		}
		if err := storage.SetRegistered(ctx, mu, asset); err != nil {
			return err
		}
		e.log.Info("registered asset", zap.Stringer("asset", asset))
		return nil
	})
}

// IsRegistered reports whether [asset] may be used in pools.
func (e *Engine) IsRegistered(ctx context.Context, asset codec.Address) (bool, error) {
	ctx, span := e.tracer.Start(ctx, "Engine.IsRegistered")
	defer span.End()

	var registered bool
	keys := state.Keys{string(storage.AssetKey(asset)): state.Read}
	err := e.read(keys, func(im state.Immutable) error {
		var err error
		registered, err = storage.IsRegistered(ctx, im, asset)
		return err
	})
	return registered, err
}

// Assets lists every registered asset in byte order.
func (e *Engine) Assets(ctx context.Context) ([]codec.Address, error) {
	ctx, span := e.tracer.Start(ctx, "Engine.Assets")
	defer span.End()

	return storage.Assets(ctx, e.db)
}
