// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dex

import (
	"errors"
	"fmt"

	"github.com/ava-labs/tokendex/pricing"
)

// Code is the numeric identifier carried by every rejected operation.
type Code uint32

const (
	CodeUnauthorized          Code = 100
	CodeInsufficientLiquidity Code = 102
	CodeSlippageTooHigh       Code = 103
	CodePoolExists            Code = 104
	CodePoolNotFound          Code = 105
	CodeZeroAmount            Code = 106
	CodeInsufficientBalance   Code = 107
	CodeOverflow              Code = 108
)

// Error is a rejected operation. Two errors match under [errors.Is] when
// their codes are equal, so detailed errors still match the sentinels below.
type Error struct {
	Code Code
	Msg  string
}

var (
	ErrUnauthorized          = &Error{Code: CodeUnauthorized, Msg: "unauthorized"}
	ErrInsufficientLiquidity = &Error{Code: CodeInsufficientLiquidity, Msg: "insufficient liquidity"}
	ErrSlippageTooHigh       = &Error{Code: CodeSlippageTooHigh, Msg: "slippage too high"}
	ErrPoolExists            = &Error{Code: CodePoolExists, Msg: "pool exists"}
	ErrPoolNotFound          = &Error{Code: CodePoolNotFound, Msg: "pool not found"}
	ErrZeroAmount            = &Error{Code: CodeZeroAmount, Msg: "zero amount"}
	ErrInsufficientBalance   = &Error{Code: CodeInsufficientBalance, Msg: "insufficient balance"}
	ErrOverflow              = &Error{Code: CodeOverflow, Msg: "overflow"}

	sentinels = map[Code]*Error{
		CodeUnauthorized:          ErrUnauthorized,
		CodeInsufficientLiquidity: ErrInsufficientLiquidity,
		CodeSlippageTooHigh:       ErrSlippageTooHigh,
		CodePoolExists:            ErrPoolExists,
		CodePoolNotFound:          ErrPoolNotFound,
		CodeZeroAmount:            ErrZeroAmount,
		CodeInsufficientBalance:   ErrInsufficientBalance,
		CodeOverflow:              ErrOverflow,
	}
)

func (e *Error) Error() string {
	return fmt.Sprintf("tokendex error %d: %s", e.Code, e.Msg)
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// withDetail returns an error with the same code as [e].
func (e *Error) withDetail(format string, args ...any) *Error {
	return &Error{
		Code: e.Code,
		Msg:  e.Msg + ": " + fmt.Sprintf(format, args...),
	}
}

// CodeOf returns the code of the first [*Error] in [err]'s chain.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}

// FromCode rebuilds an [*Error] received over the wire. It returns nil if
// [code] is not one of the codes above.
func FromCode(code int, msg string) *Error {
	if code <= 0 {
		return nil
	}
	if _, ok := sentinels[Code(code)]; !ok {
		return nil
	}
	return &Error{Code: Code(code), Msg: msg}
}

// fromPricing maps a pricing failure onto its code.
func fromPricing(err error) error {
	switch {
	case errors.Is(err, pricing.ErrZeroInput):
		return ErrZeroAmount.withDetail("%s", err)
	case errors.Is(err, pricing.ErrOverflow):
		return ErrOverflow.withDetail("%s", err)
	case errors.Is(err, pricing.ErrInsufficientShares):
		return ErrInsufficientBalance.withDetail("%s", err)
	case errors.Is(err, pricing.ErrReservesZero),
		errors.Is(err, pricing.ErrExceedsReserve),
		errors.Is(err, pricing.ErrInsufficientOutput),
		errors.Is(err, pricing.ErrInsufficientLiquidityMinted):
		return ErrInsufficientLiquidity.withDetail("%s", err)
	default:
		return err
	}
}
