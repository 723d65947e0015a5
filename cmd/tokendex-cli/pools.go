// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ava-labs/tokendex/dex"
)

var createPoolCmd = &cobra.Command{
	Use:   "create-pool [assetX] [assetY]",
	Short: "Create an empty pool for two registered assets",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		assets, err := parseAddresses(args)
		if err != nil {
			return err
		}
		if err := client.CreatePool(cmd.Context(), assets[0], assets[1]); err != nil {
			return err
		}
		pool, _, err := client.GetPool(cmd.Context(), assets[0], assets[1])
		if err != nil {
			return err
		}
		return printValue(cmd, poolsResponse{Pools: []*dex.PoolSnapshot{pool}})
	},
}

var getPoolCmd = &cobra.Command{
	Use:   "get-pool [assetX] [assetY]",
	Short: "Show a pool oriented to the given asset order",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		assets, err := parseAddresses(args)
		if err != nil {
			return err
		}
		pool, exists, err := client.GetPool(cmd.Context(), assets[0], assets[1])
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("no pool for %s and %s", assets[0], assets[1])
		}
		return printValue(cmd, poolsResponse{Pools: []*dex.PoolSnapshot{pool}})
	},
}

var poolsCmd = &cobra.Command{
	Use:   "pools",
	Short: "List all pools",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		pools, err := client.Pools(cmd.Context())
		if err != nil {
			return err
		}
		return printValue(cmd, poolsResponse{Pools: pools})
	},
}

type poolsResponse struct {
	Pools []*dex.PoolSnapshot `json:"pools"`
}

func (r poolsResponse) String() string {
	if len(r.Pools) == 0 {
		return "no pools"
	}
	var sb strings.Builder
	for i, p := range r.Pools {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(
			&sb,
			"pool: %s\n  %s: %d\n  %s: %d\n  shares: %d",
			p.Pool,
			p.AssetX, p.ReserveX,
			p.AssetY, p.ReserveY,
			p.TotalShares,
		)
	}
	return sb.String()
}

func init() {
	rootCmd.AddCommand(createPoolCmd, getPoolCmd, poolsCmd)
}
