// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	Name = "tokendex"

	IDLen     = 32
	ByteLen   = 1
	Uint16Len = 2
	Uint64Len = 8
	MaxUint64 = ^uint64(0)
)

// Address type prefixes
const (
	AssetID uint8 = iota
	AccountID
	PoolID
)

// Swap fee, in basis points of the input amount.
const (
	FeeBps         uint64 = 30
	FeeDenominator uint64 = 10_000
)
