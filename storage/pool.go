// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/tokendex/codec"
	"github.com/ava-labs/tokendex/consts"
	"github.com/ava-labs/tokendex/state"
)

var ErrCorruptPool = errors.New("corrupt pool record")

// Pool is a pool record in canonical orientation: Asset0 sorts before
// Asset1.
type Pool struct {
	Asset0      codec.Address
	Asset1      codec.Address
	Reserve0    uint64
	Reserve1    uint64
	TotalShares uint64
}

// Empty reports whether the pool holds no liquidity.
func (p *Pool) Empty() bool {
	return p.TotalShares == 0
}

func (p *Pool) Marshal() []byte {
	v := make([]byte, PoolRecordLen)
	copy(v, p.Asset0[:])
	copy(v[codec.AddressLen:], p.Asset1[:])
	offset := 2 * codec.AddressLen
	binary.BigEndian.PutUint64(v[offset:], p.Reserve0)
	binary.BigEndian.PutUint64(v[offset+consts.Uint64Len:], p.Reserve1)
	binary.BigEndian.PutUint64(v[offset+2*consts.Uint64Len:], p.TotalShares)
	return v
}

func UnmarshalPool(v []byte) (*Pool, error) {
	if len(v) != PoolRecordLen {
		return nil, fmt.Errorf("%w: length %d", ErrCorruptPool, len(v))
	}
	p := &Pool{
		Asset0: codec.Address(v[:codec.AddressLen]),
		Asset1: codec.Address(v[codec.AddressLen : 2*codec.AddressLen]),
	}
	offset := 2 * codec.AddressLen
	p.Reserve0 = binary.BigEndian.Uint64(v[offset:])
	p.Reserve1 = binary.BigEndian.Uint64(v[offset+consts.Uint64Len:])
	p.TotalShares = binary.BigEndian.Uint64(v[offset+2*consts.Uint64Len:])
	return p, nil
}

// GetPool returns the pool stored at [pool], or false if there is none.
func GetPool(ctx context.Context, im state.Immutable, pool codec.Address) (*Pool, bool, error) {
	v, err := im.GetValue(ctx, PoolKey(pool))
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	p, err := UnmarshalPool(v)
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

func SetPool(ctx context.Context, mu state.Mutable, pool codec.Address, p *Pool) error {
	return mu.Insert(ctx, PoolKey(pool), p.Marshal())
}

// IteratePools calls [f] with every stored pool in key order until [f]
// returns false.
func IteratePools(ctx context.Context, db state.Database, f func(pool codec.Address, p *Pool) bool) error {
	var innerErr error
	err := db.Iterate(ctx, []byte{poolPrefix}, func(k []byte, v []byte) bool {
		p, err := UnmarshalPool(v)
		if err != nil {
			innerErr = err
			return false
		}
		return f(codec.Address(k[consts.ByteLen:]), p)
	})
	if err != nil {
		return err
	}
	return innerErr
}
