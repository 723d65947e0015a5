// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import (
	"github.com/holiman/uint256"

	"github.com/ava-labs/tokendex/consts"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var _ Model = (*ConstantProduct)(nil)

var (
	feeDenominator = uint256.NewInt(consts.FeeDenominator)
	feeMultiplier  = uint256.NewInt(consts.FeeDenominator - consts.FeeBps)
)

// GetSwapOutput quotes the output of trading [amountIn] against the given
// reserves with the swap fee applied to the input:
//
//	out = in*(D-fee)*reserveOut / (reserveIn*D + in*(D-fee))
//
// All intermediates are 256-bit, so no product can overflow.
func GetSwapOutput(amountIn uint64, reserveIn uint64, reserveOut uint64) (uint64, error) {
	inAfterFee := new(uint256.Int).Mul(uint256.NewInt(amountIn), feeMultiplier)
	numerator := new(uint256.Int).Mul(inAfterFee, uint256.NewInt(reserveOut))
	denominator := new(uint256.Int).Mul(uint256.NewInt(reserveIn), feeDenominator)
	denominator.Add(denominator, inAfterFee)
	if denominator.IsZero() {
		return 0, ErrReservesZero
	}
	out := numerator.Div(numerator, denominator)
	if !out.IsUint64() {
		return 0, ErrOverflow
	}
	return out.Uint64(), nil
}

// CalculateShares returns the shares minted for depositing [amountX] and
// [amountY].
//
// The first deposit mints floor(sqrt(amountX*amountY)). Later deposits mint
// the smaller of the two proportional amounts; whatever the depositor sends
// beyond the pool ratio on the other side joins the reserves without earning
// shares.
func CalculateShares(
	amountX uint64,
	amountY uint64,
	reserveX uint64,
	reserveY uint64,
	totalShares uint64,
) (uint64, error) {
	if totalShares == 0 {
		product := new(uint256.Int).Mul(uint256.NewInt(amountX), uint256.NewInt(amountY))
		// sqrt of a 128-bit value always fits in 64 bits
		return product.Sqrt(product).Uint64(), nil
	}
	if reserveX == 0 || reserveY == 0 {
		return 0, ErrReservesZero
	}
	total := uint256.NewInt(totalShares)
	sharesX := new(uint256.Int).Mul(uint256.NewInt(amountX), total)
	sharesX.Div(sharesX, uint256.NewInt(reserveX))
	sharesY := new(uint256.Int).Mul(uint256.NewInt(amountY), total)
	sharesY.Div(sharesY, uint256.NewInt(reserveY))

	shares := sharesX
	if sharesY.Lt(sharesX) {
		shares = sharesY
	}
	if !shares.IsUint64() {
		return 0, ErrOverflow
	}
	return shares.Uint64(), nil
}

// RedeemShares returns floor(shares*reserve/totalShares) for each side.
func RedeemShares(
	shares uint64,
	reserveX uint64,
	reserveY uint64,
	totalShares uint64,
) (uint64, uint64, error) {
	if totalShares == 0 {
		return 0, 0, ErrReservesZero
	}
	if shares > totalShares {
		return 0, 0, ErrInsufficientShares
	}
	s := uint256.NewInt(shares)
	total := uint256.NewInt(totalShares)
	outputX := new(uint256.Int).Mul(s, uint256.NewInt(reserveX))
	outputX.Div(outputX, total)
	outputY := new(uint256.Int).Mul(s, uint256.NewInt(reserveY))
	outputY.Div(outputY, total)
	// shares <= totalShares, so both outputs are bounded by their reserve
	return outputX.Uint64(), outputY.Uint64(), nil
}

// ConstantProduct is an x*y=k pool with a fixed swap fee.
type ConstantProduct struct {
	reserveX    uint64
	reserveY    uint64
	totalShares uint64
}

func NewConstantProduct(reserveX uint64, reserveY uint64, totalShares uint64) *ConstantProduct {
	return &ConstantProduct{
		reserveX:    reserveX,
		reserveY:    reserveY,
		totalShares: totalShares,
	}
}

func (c *ConstantProduct) AddLiquidity(amountX uint64, amountY uint64) (uint64, error) {
	if amountX == 0 || amountY == 0 {
		return 0, ErrZeroInput
	}
	shares, err := CalculateShares(amountX, amountY, c.reserveX, c.reserveY, c.totalShares)
	if err != nil {
		return 0, err
	}
	if shares == 0 {
		return 0, ErrInsufficientLiquidityMinted
	}

	reserveX, err := smath.Add64(c.reserveX, amountX)
	if err != nil {
		return 0, ErrOverflow
	}
	reserveY, err := smath.Add64(c.reserveY, amountY)
	if err != nil {
		return 0, ErrOverflow
	}
	totalShares, err := smath.Add64(c.totalShares, shares)
	if err != nil {
		return 0, ErrOverflow
	}
	c.reserveX, c.reserveY, c.totalShares = reserveX, reserveY, totalShares
	return shares, nil
}

func (c *ConstantProduct) RemoveLiquidity(shares uint64) (uint64, uint64, error) {
	if shares == 0 {
		return 0, 0, ErrZeroInput
	}
	outputX, outputY, err := RedeemShares(shares, c.reserveX, c.reserveY, c.totalShares)
	if err != nil {
		return 0, 0, err
	}
	c.reserveX -= outputX
	c.reserveY -= outputY
	c.totalShares -= shares
	return outputX, outputY, nil
}

// Swap rejects trades larger than the input reserve and trades whose output
// would round to zero or drain the output reserve.
func (c *ConstantProduct) Swap(amountIn uint64, xForY bool) (uint64, error) {
	if c.reserveX == 0 || c.reserveY == 0 {
		return 0, ErrReservesZero
	}
	if amountIn == 0 {
		return 0, ErrZeroInput
	}
	reserveIn, reserveOut := c.reserveX, c.reserveY
	if !xForY {
		reserveIn, reserveOut = c.reserveY, c.reserveX
	}
	if amountIn > reserveIn {
		return 0, ErrExceedsReserve
	}
	output, err := GetSwapOutput(amountIn, reserveIn, reserveOut)
	if err != nil {
		return 0, err
	}
	if output == 0 || output >= reserveOut {
		return 0, ErrInsufficientOutput
	}
	// amountIn <= reserveIn, so this only fails above 2^63
	reserveIn, err = smath.Add64(reserveIn, amountIn)
	if err != nil {
		return 0, ErrOverflow
	}
	reserveOut -= output

	if xForY {
		c.reserveX, c.reserveY = reserveIn, reserveOut
	} else {
		c.reserveX, c.reserveY = reserveOut, reserveIn
	}
	return output, nil
}

func (c *ConstantProduct) GetState() (uint64, uint64, uint64) {
	return c.reserveX, c.reserveY, c.totalShares
}
