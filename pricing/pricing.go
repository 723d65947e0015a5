// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

// Model prices deposits, withdrawals and swaps against a two-asset pool.
// Implementations only update their own copy of the reserves; persisting the
// result is up to the caller.
type Model interface {
	// AddLiquidity returns the shares minted for the deposit.
	AddLiquidity(amountX uint64, amountY uint64) (uint64, error)
	// RemoveLiquidity returns the amounts redeemed for [shares].
	RemoveLiquidity(shares uint64) (uint64, uint64, error)
	// Swap returns the output amount. [xForY] selects the direction.
	Swap(amountIn uint64, xForY bool) (uint64, error)
	// GetState returns reserveX, reserveY and totalShares.
	GetState() (uint64, uint64, uint64)
}
