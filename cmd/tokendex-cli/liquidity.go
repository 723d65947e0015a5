// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ava-labs/tokendex/api/jsonrpc"
)

var addLiquidityCmd = &cobra.Command{
	Use:   "add-liquidity [assetX] [assetY] [amountX] [amountY] [minShares]",
	Short: "Deposit both assets into a pool",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		actor, err := getActor(cmd)
		if err != nil {
			return err
		}
		assets, err := parseAddresses(args[:2])
		if err != nil {
			return err
		}
		amounts, err := parseAmounts(args[2:])
		if err != nil {
			return err
		}
		shares, err := client.AddLiquidity(cmd.Context(), &jsonrpc.AddLiquidityArgs{
			Actor:     actor,
			AssetX:    assets[0],
			AssetY:    assets[1],
			AmountX:   amounts[0],
			AmountY:   amounts[1],
			MinShares: amounts[2],
		})
		if err != nil {
			return err
		}
		return printValue(cmd, amountResponse{Name: "shares minted", Amount: shares})
	},
}

var removeLiquidityCmd = &cobra.Command{
	Use:   "remove-liquidity [assetX] [assetY] [shares] [minX] [minY]",
	Short: "Redeem pool shares for both assets",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		actor, err := getActor(cmd)
		if err != nil {
			return err
		}
		assets, err := parseAddresses(args[:2])
		if err != nil {
			return err
		}
		amounts, err := parseAmounts(args[2:])
		if err != nil {
			return err
		}
		amountX, amountY, err := client.RemoveLiquidity(cmd.Context(), &jsonrpc.RemoveLiquidityArgs{
			Actor:  actor,
			AssetX: assets[0],
			AssetY: assets[1],
			Shares: amounts[0],
			MinX:   amounts[1],
			MinY:   amounts[2],
		})
		if err != nil {
			return err
		}
		return printValue(cmd, redeemResponse{AmountX: amountX, AmountY: amountY})
	},
}

var userSharesCmd = &cobra.Command{
	Use:   "user-shares [depositor] [assetX] [assetY]",
	Short: "Show the shares a depositor holds in a pool",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		addrs, err := parseAddresses(args)
		if err != nil {
			return err
		}
		shares, err := client.GetUserShares(cmd.Context(), addrs[0], addrs[1], addrs[2])
		if err != nil {
			return err
		}
		return printValue(cmd, amountResponse{Name: "shares", Amount: shares})
	},
}

var calculateSharesCmd = &cobra.Command{
	Use:   "calculate-shares [amountX] [amountY] [reserveX] [reserveY] [totalShares]",
	Short: "Quote the shares a deposit would mint",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		amounts, err := parseAmounts(args)
		if err != nil {
			return err
		}
		shares, err := client.CalculateShares(cmd.Context(), &jsonrpc.CalculateSharesArgs{
			AmountX:     amounts[0],
			AmountY:     amounts[1],
			ReserveX:    amounts[2],
			ReserveY:    amounts[3],
			TotalShares: amounts[4],
		})
		if err != nil {
			return err
		}
		return printValue(cmd, amountResponse{Name: "shares", Amount: shares})
	},
}

type amountResponse struct {
	Name   string `json:"-"`
	Amount uint64 `json:"amount"`
}

func (r amountResponse) String() string {
	return fmt.Sprintf("%s: %d", r.Name, r.Amount)
}

type redeemResponse struct {
	AmountX uint64 `json:"amountX"`
	AmountY uint64 `json:"amountY"`
}

func (r redeemResponse) String() string {
	return fmt.Sprintf("received x: %d\nreceived y: %d", r.AmountX, r.AmountY)
}

func init() {
	rootCmd.AddCommand(addLiquidityCmd, removeLiquidityCmd, userSharesCmd, calculateSharesCmd)
}
