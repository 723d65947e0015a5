// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"errors"

	"github.com/ava-labs/tokendex/codec"
	"github.com/ava-labs/tokendex/consts"
	"github.com/ava-labs/tokendex/utils"
)

var ErrIdenticalAssets = errors.New("identical assets")

// AssetKey is the registry key of [asset].
func AssetKey(asset codec.Address) []byte {
	k := make([]byte, consts.ByteLen+codec.AddressLen)
	k[0] = assetPrefix
	copy(k[consts.ByteLen:], asset[:])
	return k
}

// SortAssets returns the two assets in canonical (byte) order.
func SortAssets(assetX codec.Address, assetY codec.Address) (codec.Address, codec.Address, error) {
	switch assetX.Compare(assetY) {
	case -1:
		return assetX, assetY, nil
	case 1:
		return assetY, assetX, nil
	default:
		return codec.EmptyAddress, codec.EmptyAddress, ErrIdenticalAssets
	}
}

// PoolAddress derives the pool identifier of an unordered pair, so
// PoolAddress(a, b) == PoolAddress(b, a).
func PoolAddress(assetX codec.Address, assetY codec.Address) (codec.Address, error) {
	first, second, err := SortAssets(assetX, assetY)
	if err != nil {
		return codec.EmptyAddress, err
	}
	v := make([]byte, 2*codec.AddressLen)
	copy(v, first[:])
	copy(v[codec.AddressLen:], second[:])
	return codec.CreateAddress(consts.PoolID, utils.ToID(v)), nil
}

func PoolKey(pool codec.Address) []byte {
	k := make([]byte, consts.ByteLen+codec.AddressLen)
	k[0] = poolPrefix
	copy(k[consts.ByteLen:], pool[:])
	return k
}

// SharesKey is the key of [depositor]'s share balance in [pool]. All share
// keys of a pool share the prefix sharesPrefix|pool.
func SharesKey(pool codec.Address, depositor codec.Address) []byte {
	k := make([]byte, consts.ByteLen+2*codec.AddressLen)
	k[0] = sharesPrefix
	copy(k[consts.ByteLen:], pool[:])
	copy(k[consts.ByteLen+codec.AddressLen:], depositor[:])
	return k
}
