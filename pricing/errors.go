// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import "errors"

var (
	ErrReservesZero   = errors.New("reserves are zero")
	ErrZeroInput      = errors.New("zero input")
	ErrOverflow       = errors.New("overflow")
	ErrExceedsReserve = errors.New("input exceeds reserve")

	ErrInsufficientLiquidityMinted = errors.New("insufficient liquidity minted")
	ErrInsufficientOutput          = errors.New("insufficient output amount")
	ErrInsufficientShares          = errors.New("insufficient shares")
)
