// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/tokendex/consts"
)

func TestGetSwapOutput(t *testing.T) {
	tests := []struct {
		name       string
		amountIn   uint64
		reserveIn  uint64
		reserveOut uint64
		want       uint64
		err        error
	}{
		{
			name:       "fee applied",
			amountIn:   100,
			reserveIn:  10_000,
			reserveOut: 20_000,
			want:       197,
		},
		{
			name:       "empty output reserve",
			amountIn:   100,
			reserveIn:  0,
			reserveOut: 0,
			want:       0,
		},
		{
			name:       "zero denominator",
			amountIn:   0,
			reserveIn:  0,
			reserveOut: 20_000,
			err:        ErrReservesZero,
		},
		{
			name:       "wide intermediates",
			amountIn:   consts.MaxUint64,
			reserveIn:  consts.MaxUint64,
			reserveOut: consts.MaxUint64,
			want:       quote(consts.MaxUint64, consts.MaxUint64, consts.MaxUint64),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			out, err := GetSwapOutput(tt.amountIn, tt.reserveIn, tt.reserveOut)
			require.ErrorIs(err, tt.err)
			require.Equal(tt.want, out)
		})
	}
}

// quote recomputes the swap formula with math/big.
func quote(amountIn, reserveIn, reserveOut uint64) uint64 {
	inAfterFee := new(big.Int).Mul(new(big.Int).SetUint64(amountIn), big.NewInt(int64(consts.FeeDenominator-consts.FeeBps)))
	num := new(big.Int).Mul(inAfterFee, new(big.Int).SetUint64(reserveOut))
	den := new(big.Int).Mul(new(big.Int).SetUint64(reserveIn), big.NewInt(int64(consts.FeeDenominator)))
	den.Add(den, inAfterFee)
	return num.Div(num, den).Uint64()
}

func TestCalculateShares(t *testing.T) {
	tests := []struct {
		name        string
		amountX     uint64
		amountY     uint64
		reserveX    uint64
		reserveY    uint64
		totalShares uint64
		want        uint64
		err         error
	}{
		{
			name:    "initial deposit is geometric mean",
			amountX: 1000,
			amountY: 2000,
			want:    1414,
		},
		{
			name:        "proportional deposit",
			amountX:     500,
			amountY:     1000,
			reserveX:    1000,
			reserveY:    2000,
			totalShares: 1414,
			want:        707,
		},
		{
			name:        "excess y earns nothing",
			amountX:     500,
			amountY:     2000,
			reserveX:    1000,
			reserveY:    2000,
			totalShares: 1414,
			want:        707,
		},
		{
			name:        "excess x earns nothing",
			amountX:     5000,
			amountY:     1000,
			reserveX:    1000,
			reserveY:    2000,
			totalShares: 1414,
			want:        707,
		},
		{
			name:        "rounds to zero",
			amountX:     1,
			amountY:     1,
			reserveX:    1000,
			reserveY:    2000,
			totalShares: 1414,
			want:        0,
		},
		{
			name:    "initial deposit at the limit",
			amountX: consts.MaxUint64,
			amountY: consts.MaxUint64,
			want:    consts.MaxUint64,
		},
		{
			name:        "missing reserves",
			amountX:     1,
			amountY:     1,
			totalShares: 10,
			err:         ErrReservesZero,
		},
		{
			name:        "too many shares",
			amountX:     consts.MaxUint64,
			amountY:     consts.MaxUint64,
			reserveX:    1,
			reserveY:    1,
			totalShares: 2,
			err:         ErrOverflow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			shares, err := CalculateShares(tt.amountX, tt.amountY, tt.reserveX, tt.reserveY, tt.totalShares)
			require.ErrorIs(err, tt.err)
			require.Equal(tt.want, shares)
		})
	}
}

func TestRedeemShares(t *testing.T) {
	require := require.New(t)

	x, y, err := RedeemShares(707, 1500, 3000, 2121)
	require.NoError(err)
	require.Equal(uint64(500), x)
	require.Equal(uint64(1000), y)

	// Truncation leaves dust in the pool.
	x, y, err = RedeemShares(1, 3, 5, 2)
	require.NoError(err)
	require.Equal(uint64(1), x)
	require.Equal(uint64(2), y)

	_, _, err = RedeemShares(3, 3, 5, 2)
	require.ErrorIs(err, ErrInsufficientShares)

	_, _, err = RedeemShares(1, 0, 0, 0)
	require.ErrorIs(err, ErrReservesZero)
}

func TestLiquidityRoundTrip(t *testing.T) {
	require := require.New(t)

	c := NewConstantProduct(0, 0, 0)
	shares, err := c.AddLiquidity(1000, 2000)
	require.NoError(err)
	require.Equal(uint64(1414), shares)

	more, err := c.AddLiquidity(500, 1000)
	require.NoError(err)
	require.Equal(uint64(707), more)

	x, y, err := c.RemoveLiquidity(more)
	require.NoError(err)
	require.Equal(uint64(500), x)
	require.Equal(uint64(1000), y)

	x, y, err = c.RemoveLiquidity(shares)
	require.NoError(err)
	require.Equal(uint64(1000), x)
	require.Equal(uint64(2000), y)

	reserveX, reserveY, total := c.GetState()
	require.Zero(reserveX)
	require.Zero(reserveY)
	require.Zero(total)
}

func TestAddLiquidityErrors(t *testing.T) {
	tests := []struct {
		name  string
		model *ConstantProduct
		x, y  uint64
		err   error
	}{
		{
			name:  "zero amount",
			model: NewConstantProduct(0, 0, 0),
			x:     0,
			y:     10,
			err:   ErrZeroInput,
		},
		{
			name:  "nothing minted",
			model: NewConstantProduct(1000, 2000, 1414),
			x:     1,
			y:     1,
			err:   ErrInsufficientLiquidityMinted,
		},
		{
			name:  "reserve overflow",
			model: NewConstantProduct(consts.MaxUint64, 1, 1),
			x:     consts.MaxUint64,
			y:     consts.MaxUint64,
			err:   ErrOverflow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			x, y, total := tt.model.GetState()
			_, err := tt.model.AddLiquidity(tt.x, tt.y)
			require.ErrorIs(err, tt.err)

			// A failed deposit leaves the model untouched.
			nx, ny, ntotal := tt.model.GetState()
			require.Equal(x, nx)
			require.Equal(y, ny)
			require.Equal(total, ntotal)
		})
	}
}

func TestSwap(t *testing.T) {
	require := require.New(t)

	c := NewConstantProduct(10_000, 20_000, 14_142)
	out, err := c.Swap(100, true)
	require.NoError(err)
	require.Equal(uint64(197), out)

	x, y, _ := c.GetState()
	require.Equal(uint64(10_100), x)
	require.Equal(uint64(19_803), y)

	out, err = c.Swap(100, false)
	require.NoError(err)
	require.Equal(quote(100, 19_803, 10_100), out)
	x, y, _ = c.GetState()
	require.Equal(10_100-out, x)
	require.Equal(uint64(19_903), y)
}

func TestSwapErrors(t *testing.T) {
	tests := []struct {
		name     string
		model    *ConstantProduct
		amountIn uint64
		xForY    bool
		err      error
	}{
		{
			name:     "empty pool",
			model:    NewConstantProduct(0, 0, 0),
			amountIn: 10,
			xForY:    true,
			err:      ErrReservesZero,
		},
		{
			name:     "zero input",
			model:    NewConstantProduct(100, 200, 141),
			amountIn: 0,
			xForY:    true,
			err:      ErrZeroInput,
		},
		{
			name:     "larger than pool",
			model:    NewConstantProduct(100, 200, 141),
			amountIn: 10_000,
			xForY:    true,
			err:      ErrExceedsReserve,
		},
		{
			name:     "larger than pool reversed",
			model:    NewConstantProduct(100, 200, 141),
			amountIn: 201,
			xForY:    false,
			err:      ErrExceedsReserve,
		},
		{
			name:     "output rounds to zero",
			model:    NewConstantProduct(1000, 1, 31),
			amountIn: 1,
			xForY:    true,
			err:      ErrInsufficientOutput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			_, err := tt.model.Swap(tt.amountIn, tt.xForY)
			require.ErrorIs(err, tt.err)
		})
	}
}

func TestSwapGrowsProduct(t *testing.T) {
	require := require.New(t)

	c := NewConstantProduct(1_000_000, 3_000_000, 1_732_050)
	for i := uint64(1); i <= 200; i++ {
		x, y, _ := c.GetState()
		before := new(big.Int).Mul(new(big.Int).SetUint64(x), new(big.Int).SetUint64(y))

		_, err := c.Swap(i*97, i%2 == 0)
		require.NoError(err)

		x, y, _ = c.GetState()
		after := new(big.Int).Mul(new(big.Int).SetUint64(x), new(big.Int).SetUint64(y))
		require.Equal(1, after.Cmp(before))
	}
}

func TestDiminishingReturns(t *testing.T) {
	require := require.New(t)

	c := NewConstantProduct(10_000, 20_000, 14_142)
	first, err := c.Swap(500, true)
	require.NoError(err)
	second, err := c.Swap(500, true)
	require.NoError(err)
	require.Less(second, first)
}
