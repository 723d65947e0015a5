// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ava-labs/tokendex/codec"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the daemon is reachable",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		ok, err := client.Ping(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to ping: %w", err)
		}
		return printValue(cmd, boolResponse{Name: "ping", Value: ok})
	},
}

var registerAssetCmd = &cobra.Command{
	Use:   "register-asset [asset]",
	Short: "Register an asset (admin only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		actor, err := getActor(cmd)
		if err != nil {
			return err
		}
		asset, err := codec.ParseAddress(args[0])
		if err != nil {
			return err
		}
		if err := client.RegisterAsset(cmd.Context(), actor, asset); err != nil {
			return err
		}
		return printValue(cmd, boolResponse{Name: "registered", Value: true})
	},
}

var isRegisteredCmd = &cobra.Command{
	Use:   "is-registered [asset]",
	Short: "Check whether an asset is registered",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		asset, err := codec.ParseAddress(args[0])
		if err != nil {
			return err
		}
		registered, err := client.IsAssetRegistered(cmd.Context(), asset)
		if err != nil {
			return err
		}
		return printValue(cmd, boolResponse{Name: "registered", Value: registered})
	},
}

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "List registered assets",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		assets, err := client.Assets(cmd.Context())
		if err != nil {
			return err
		}
		return printValue(cmd, assetsResponse{Assets: assets})
	},
}

type boolResponse struct {
	Name  string `json:"-"`
	Value bool   `json:"value"`
}

func (r boolResponse) String() string {
	return fmt.Sprintf("%s: %t", r.Name, r.Value)
}

type assetsResponse struct {
	Assets []codec.Address `json:"assets"`
}

func (r assetsResponse) String() string {
	if len(r.Assets) == 0 {
		return "no assets registered"
	}
	var sb strings.Builder
	for i, asset := range r.Assets {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(asset.String())
	}
	return sb.String()
}

func init() {
	rootCmd.AddCommand(pingCmd, registerAssetCmd, isRegisteredCmd, assetsCmd)
}
