// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ava-labs/tokendex/consts"
)

var rootCmd = &cobra.Command{
	Use:   consts.Name,
	Short: "Constant-product AMM ledger daemon",
	Long:  `Serves asset registration, pool creation, liquidity and swaps over JSON-RPC.`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the daemon",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}
		return run(cmd.Context(), path)
	},
}

func init() {
	runCmd.Flags().String("config", "config.yaml", "Path to the YAML config file")
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
