// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/tokendex/codec"
	"github.com/ava-labs/tokendex/consts"
	"github.com/ava-labs/tokendex/state"
)

func IsRegistered(ctx context.Context, im state.Immutable, asset codec.Address) (bool, error) {
	_, err := im.GetValue(ctx, AssetKey(asset))
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func SetRegistered(ctx context.Context, mu state.Mutable, asset codec.Address) error {
	return mu.Insert(ctx, AssetKey(asset), []byte{registered})
}

// Assets returns every registered asset in byte order.
func Assets(ctx context.Context, db state.Database) ([]codec.Address, error) {
	assets := []codec.Address{}
	err := db.Iterate(ctx, []byte{assetPrefix}, func(k []byte, _ []byte) bool {
		if len(k) == consts.ByteLen+codec.AddressLen {
			assets = append(assets, codec.Address(k[consts.ByteLen:]))
		}
		return true
	})
	return assets, err
}
