// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/tokendex/codec"
	"github.com/ava-labs/tokendex/consts"
	"github.com/ava-labs/tokendex/state"
)

var ErrCorruptShares = errors.New("corrupt share record")

// GetShares returns the share balance of [depositor] in [pool]. A missing
// record reads as zero.
func GetShares(ctx context.Context, im state.Immutable, pool codec.Address, depositor codec.Address) (uint64, error) {
	v, err := im.GetValue(ctx, SharesKey(pool, depositor))
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(v) != consts.Uint64Len {
		return 0, ErrCorruptShares
	}
	return binary.BigEndian.Uint64(v), nil
}

// SetShares stores [shares] for [depositor]. A zero balance removes the
// record.
func SetShares(ctx context.Context, mu state.Mutable, pool codec.Address, depositor codec.Address, shares uint64) error {
	k := SharesKey(pool, depositor)
	if shares == 0 {
		return mu.Remove(ctx, k)
	}
	return mu.Insert(ctx, k, binary.BigEndian.AppendUint64(nil, shares))
}

// IterateShares calls [f] for every depositor holding shares of [pool].
func IterateShares(ctx context.Context, db state.Database, pool codec.Address, f func(depositor codec.Address, shares uint64) bool) error {
	prefix := make([]byte, consts.ByteLen+codec.AddressLen)
	prefix[0] = sharesPrefix
	copy(prefix[consts.ByteLen:], pool[:])

	var innerErr error
	err := db.Iterate(ctx, prefix, func(k []byte, v []byte) bool {
		if len(v) != consts.Uint64Len {
			innerErr = ErrCorruptShares
			return false
		}
		return f(codec.Address(k[len(prefix):]), binary.BigEndian.Uint64(v))
	})
	if err != nil {
		return err
	}
	return innerErr
}
