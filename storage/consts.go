// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"github.com/ava-labs/tokendex/codec"
	"github.com/ava-labs/tokendex/consts"
)

// Key prefixes
const (
	assetPrefix byte = iota
	poolPrefix
	sharesPrefix
)

const (
	// registered marks an asset key as present.
	registered byte = 0x1

	PoolRecordLen = 2*codec.AddressLen + 3*consts.Uint64Len
)
