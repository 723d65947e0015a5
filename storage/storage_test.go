// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/tokendex/codec"
	"github.com/ava-labs/tokendex/consts"
	"github.com/ava-labs/tokendex/state"
	"github.com/ava-labs/tokendex/tstate"
)

var (
	assetA = codec.CreateAddress(consts.AssetID, ids.ID{1})
	assetB = codec.CreateAddress(consts.AssetID, ids.ID{2})
	alice  = codec.CreateAddress(consts.AccountID, ids.ID{1})
	bob    = codec.CreateAddress(consts.AccountID, ids.ID{2})
)

func TestPoolAddressIsUnordered(t *testing.T) {
	require := require.New(t)

	ab, err := PoolAddress(assetA, assetB)
	require.NoError(err)
	ba, err := PoolAddress(assetB, assetA)
	require.NoError(err)
	require.Equal(ab, ba)
	require.Equal(consts.PoolID, ab[0])

	_, err = PoolAddress(assetA, assetA)
	require.ErrorIs(err, ErrIdenticalAssets)
}

func TestSortAssets(t *testing.T) {
	tests := []struct {
		name   string
		x      codec.Address
		y      codec.Address
		first  codec.Address
		second codec.Address
		err    error
	}{
		{name: "ordered", x: assetA, y: assetB, first: assetA, second: assetB},
		{name: "reversed", x: assetB, y: assetA, first: assetA, second: assetB},
		{name: "identical", x: assetA, y: assetA, err: ErrIdenticalAssets},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			first, second, err := SortAssets(tt.x, tt.y)
			require.ErrorIs(err, tt.err)
			if tt.err != nil {
				return
			}
			require.Equal(tt.first, first)
			require.Equal(tt.second, second)
		})
	}
}

func TestPoolEncoding(t *testing.T) {
	require := require.New(t)

	p := &Pool{
		Asset0:      assetA,
		Asset1:      assetB,
		Reserve0:    1000,
		Reserve1:    2000,
		TotalShares: 1414,
	}
	v := p.Marshal()
	require.Len(v, PoolRecordLen)

	decoded, err := UnmarshalPool(v)
	require.NoError(err)
	require.Equal(p, decoded)

	_, err = UnmarshalPool(v[1:])
	require.ErrorIs(err, ErrCorruptPool)
}

func TestPoolStorage(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := state.NewMemory()

	pool, err := PoolAddress(assetA, assetB)
	require.NoError(err)

	_, ok, err := GetPool(ctx, db, pool)
	require.NoError(err)
	require.False(ok)

	view := tstate.New(db, state.Keys{string(PoolKey(pool)): state.All})
	require.NoError(SetPool(ctx, view, pool, &Pool{Asset0: assetA, Asset1: assetB}))
	require.NoError(view.Commit(ctx, db))

	p, ok, err := GetPool(ctx, db, pool)
	require.NoError(err)
	require.True(ok)
	require.True(p.Empty())

	pools := map[codec.Address]*Pool{}
	require.NoError(IteratePools(ctx, db, func(addr codec.Address, p *Pool) bool {
		pools[addr] = p
		return true
	}))
	require.Len(pools, 1)
	require.Equal(assetA, pools[pool].Asset0)
}

func TestRegistry(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := state.NewMemory()

	ok, err := IsRegistered(ctx, db, assetA)
	require.NoError(err)
	require.False(ok)

	view := tstate.New(db, state.Keys{
		string(AssetKey(assetB)): state.All,
		string(AssetKey(assetA)): state.All,
	})
	require.NoError(SetRegistered(ctx, view, assetB))
	require.NoError(SetRegistered(ctx, view, assetA))
	require.NoError(view.Commit(ctx, db))

	ok, err = IsRegistered(ctx, db, assetA)
	require.NoError(err)
	require.True(ok)

	assets, err := Assets(ctx, db)
	require.NoError(err)
	require.Equal([]codec.Address{assetA, assetB}, assets)
}

func TestShares(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := state.NewMemory()

	pool, err := PoolAddress(assetA, assetB)
	require.NoError(err)

	shares, err := GetShares(ctx, db, pool, alice)
	require.NoError(err)
	require.Zero(shares)

	scope := state.Keys{
		string(SharesKey(pool, alice)): state.All,
		string(SharesKey(pool, bob)):   state.All,
	}
	view := tstate.New(db, scope)
	require.NoError(SetShares(ctx, view, pool, alice, 700))
	require.NoError(SetShares(ctx, view, pool, bob, 14))
	require.NoError(view.Commit(ctx, db))

	balances := map[codec.Address]uint64{}
	require.NoError(IterateShares(ctx, db, pool, func(depositor codec.Address, shares uint64) bool {
		balances[depositor] = shares
		return true
	}))
	require.Equal(map[codec.Address]uint64{alice: 700, bob: 14}, balances)

	// A zero balance removes the record entirely.
	view = tstate.New(db, scope)
	require.NoError(SetShares(ctx, view, pool, alice, 0))
	require.NoError(view.Commit(ctx, db))

	_, err = db.GetValue(ctx, SharesKey(pool, alice))
	require.Error(err)
	shares, err = GetShares(ctx, db, pool, alice)
	require.NoError(err)
	require.Zero(shares)
}
