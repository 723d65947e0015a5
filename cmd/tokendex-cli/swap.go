// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ava-labs/tokendex/api/jsonrpc"
)

type swapFunc func(*jsonrpc.JSONRPCClient, context.Context, *jsonrpc.SwapArgs) (uint64, error)

func newSwapCmd(use string, short string, f swapFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [assetX] [assetY] [amountIn] [minAmountOut]",
		Short: short,
		Args:  cobra.ExactArgs(4),
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
			out, err := f(client, cmd.Context(), &jsonrpc.SwapArgs{
				Actor:        actor,
				AssetX:       assets[0],
				AssetY:       assets[1],
				AmountIn:     amounts[0],
				MinAmountOut: amounts[1],
			})
			if err != nil {
				return err
			}
			return printValue(cmd, amountResponse{Name: "amount out", Amount: out})
		},
	}
}

var swapOutputCmd = &cobra.Command{
	Use:   "swap-output [amountIn] [reserveIn] [reserveOut]",
	Short: "Quote a swap against the given reserves",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		amounts, err := parseAmounts(args)
		if err != nil {
			return err
		}
		out, err := client.GetSwapOutput(cmd.Context(), amounts[0], amounts[1], amounts[2])
		if err != nil {
			return err
		}
		return printValue(cmd, amountResponse{Name: "amount out", Amount: out})
	},
}

func init() {
	rootCmd.AddCommand(
		newSwapCmd("swap-x-for-y", "Sell assetX for assetY", (*jsonrpc.JSONRPCClient).SwapXForY),
		newSwapCmd("swap-y-for-x", "Sell assetY for assetX", (*jsonrpc.JSONRPCClient).SwapYForX),
		swapOutputCmd,
	)
}
