// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ava-labs/tokendex/codec"
)

var endpointCmd = &cobra.Command{
	Use:   "endpoint",
	Short: "Manage endpoint",
	RunE: func(cmd *cobra.Command, _ []string) error {
		endpoint, err := getConfigValue(cmd, "endpoint", true)
		if err != nil {
			return fmt.Errorf("failed to get endpoint: %w", err)
		}
		return printValue(cmd, valueResponse{Value: endpoint})
	},
}

var endpointSetCmd = &cobra.Command{
	Use:   "set [endpoint]",
	Short: "Set the default endpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setConfigValue("endpoint", args[0]); err != nil {
			return fmt.Errorf("failed to save endpoint: %w", err)
		}
		return printValue(cmd, valueResponse{Value: args[0]})
	},
}

var actorSetCmd = &cobra.Command{
	Use:   "actor [address]",
	Short: "Set the default actor address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := codec.ParseAddress(args[0]); err != nil {
			return err
		}
		if err := setConfigValue("actor", args[0]); err != nil {
			return fmt.Errorf("failed to save actor: %w", err)
		}
		return printValue(cmd, valueResponse{Value: args[0]})
	},
}

var outputSetCmd = &cobra.Command{
	Use:   "output [text|json]",
	Short: "Set the default output format",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] != "text" && args[0] != "json" {
			return fmt.Errorf("unknown output format %q", args[0])
		}
		if err := setConfigValue("output", args[0]); err != nil {
			return fmt.Errorf("failed to save output format: %w", err)
		}
		return printValue(cmd, valueResponse{Value: args[0]})
	},
}

type valueResponse struct {
	Value string `json:"value"`
}

func (r valueResponse) String() string {
	return r.Value
}

func init() {
	endpointCmd.AddCommand(endpointSetCmd)
	rootCmd.AddCommand(endpointCmd, actorSetCmd, outputSetCmd)
}
