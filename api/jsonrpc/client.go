// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"context"
	"strings"

	"github.com/ava-labs/tokendex/codec"
	"github.com/ava-labs/tokendex/dex"
)

type JSONRPCClient struct {
	requester *EndpointRequester
}

// NewJSONRPCClient creates a client for the daemon listening at [uri].
func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += Endpoint
	return &JSONRPCClient{requester: NewEndpointRequester(uri, Name)}
}

func (cli *JSONRPCClient) Ping(ctx context.Context) (bool, error) {
	resp := new(PingReply)
	err := cli.requester.SendRequest(ctx,
		"ping",
		nil,
		resp,
	)
	return resp.Success, err
}

func (cli *JSONRPCClient) RegisterAsset(ctx context.Context, actor codec.Address, asset codec.Address) error {
	resp := new(SuccessReply)
	return cli.requester.SendRequest(
		ctx,
		"registerAsset",
		&AssetArgs{Actor: actor, Asset: asset},
		resp,
	)
}

func (cli *JSONRPCClient) IsAssetRegistered(ctx context.Context, asset codec.Address) (bool, error) {
	resp := new(IsAssetRegisteredReply)
	err := cli.requester.SendRequest(
		ctx,
		"isAssetRegistered",
		&AssetArgs{Asset: asset},
		resp,
	)
	return resp.Registered, err
}

func (cli *JSONRPCClient) Assets(ctx context.Context) ([]codec.Address, error) {
	resp := new(AssetsReply)
	err := cli.requester.SendRequest(ctx, "assets", nil, resp)
	return resp.Assets, err
}

func (cli *JSONRPCClient) CreatePool(ctx context.Context, assetX codec.Address, assetY codec.Address) error {
	resp := new(SuccessReply)
	return cli.requester.SendRequest(
		ctx,
		"createPool",
		&PairArgs{AssetX: assetX, AssetY: assetY},
		resp,
	)
}

// GetPool returns false if the pair has no pool.
func (cli *JSONRPCClient) GetPool(ctx context.Context, assetX codec.Address, assetY codec.Address) (*dex.PoolSnapshot, bool, error) {
	resp := new(GetPoolReply)
	err := cli.requester.SendRequest(
		ctx,
		"getPool",
		&PairArgs{AssetX: assetX, AssetY: assetY},
		resp,
	)
	return resp.Pool, resp.Exists, err
}

func (cli *JSONRPCClient) Pools(ctx context.Context) ([]*dex.PoolSnapshot, error) {
	resp := new(PoolsReply)
	err := cli.requester.SendRequest(ctx, "pools", nil, resp)
	return resp.Pools, err
}

func (cli *JSONRPCClient) AddLiquidity(ctx context.Context, args *AddLiquidityArgs) (uint64, error) {
	resp := new(SharesReply)
	err := cli.requester.SendRequest(ctx, "addLiquidity", args, resp)
	return resp.Shares, err
}

func (cli *JSONRPCClient) RemoveLiquidity(ctx context.Context, args *RemoveLiquidityArgs) (uint64, uint64, error) {
	resp := new(RemoveLiquidityReply)
	err := cli.requester.SendRequest(ctx, "removeLiquidity", args, resp)
	return resp.AmountX, resp.AmountY, err
}

func (cli *JSONRPCClient) SwapXForY(ctx context.Context, args *SwapArgs) (uint64, error) {
	resp := new(AmountOutReply)
	err := cli.requester.SendRequest(ctx, "swapXForY", args, resp)
	return resp.AmountOut, err
}

func (cli *JSONRPCClient) SwapYForX(ctx context.Context, args *SwapArgs) (uint64, error) {
	resp := new(AmountOutReply)
	err := cli.requester.SendRequest(ctx, "swapYForX", args, resp)
	return resp.AmountOut, err
}

func (cli *JSONRPCClient) GetSwapOutput(ctx context.Context, amountIn uint64, reserveIn uint64, reserveOut uint64) (uint64, error) {
	resp := new(AmountOutReply)
	err := cli.requester.SendRequest(
		ctx,
		"getSwapOutput",
		&GetSwapOutputArgs{
			AmountIn:   amountIn,
			ReserveIn:  reserveIn,
			ReserveOut: reserveOut,
		},
		resp,
	)
	return resp.AmountOut, err
}

func (cli *JSONRPCClient) CalculateShares(ctx context.Context, args *CalculateSharesArgs) (uint64, error) {
	resp := new(SharesReply)
	err := cli.requester.SendRequest(ctx, "calculateShares", args, resp)
	return resp.Shares, err
}

func (cli *JSONRPCClient) GetUserShares(ctx context.Context, depositor codec.Address, assetX codec.Address, assetY codec.Address) (uint64, error) {
	resp := new(SharesReply)
	err := cli.requester.SendRequest(
		ctx,
		"getUserShares",
		&GetUserSharesArgs{
			Depositor: depositor,
			AssetX:    assetX,
			AssetY:    assetY,
		},
		resp,
	)
	return resp.Shares, err
}
