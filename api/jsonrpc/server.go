// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"errors"
	"net/http"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/gorilla/rpc/v2/json2"

	"github.com/ava-labs/tokendex/codec"
	"github.com/ava-labs/tokendex/consts"
	"github.com/ava-labs/tokendex/dex"
	"github.com/ava-labs/tokendex/server"
)

const (
	// Name is the JSON-RPC service name; methods are called as
	// "tokendex.<method>".
	Name = consts.Name

	Endpoint = "/tokendex"
)

// NewHandler returns the JSON-RPC handler serving [engine].
func NewHandler(log logging.Logger, engine *dex.Engine) (http.Handler, error) {
	return server.NewHandler(NewJSONRPCServer(log, engine), Name)
}

// JSONRPCServer exposes a [dex.Engine]. The actor of a mutating call is taken
// from its arguments as given; authenticating callers is left to whatever
// fronts this endpoint.
type JSONRPCServer struct {
	log    logging.Logger
	engine *dex.Engine
}

func NewJSONRPCServer(log logging.Logger, engine *dex.Engine) *JSONRPCServer {
	return &JSONRPCServer{log: log, engine: engine}
}

// rpcError sends a rejected operation as a JSON-RPC error whose code is the
// operation's [dex.Code].
func rpcError(err error) error {
	var dexErr *dex.Error
	if errors.As(err, &dexErr) {
		return &json2.Error{
			Code:    json2.ErrorCode(dexErr.Code),
			Message: dexErr.Msg,
		}
	}
	return err
}

type PingReply struct {
	Success bool `json:"success"`
}

func (j *JSONRPCServer) Ping(_ *http.Request, _ *struct{}, reply *PingReply) (err error) {
	j.log.Info("ping")
	reply.Success = true
	return nil
}

type AssetArgs struct {
	Actor codec.Address `json:"actor"`
	Asset codec.Address `json:"asset"`
}

type SuccessReply struct {
	Success bool `json:"success"`
}

func (j *JSONRPCServer) RegisterAsset(req *http.Request, args *AssetArgs, reply *SuccessReply) error {
	if err := j.engine.RegisterAsset(req.Context(), args.Actor, args.Asset); err != nil {
		return rpcError(err)
	}
	reply.Success = true
	return nil
}

type IsAssetRegisteredReply struct {
	Registered bool `json:"registered"`
}

func (j *JSONRPCServer) IsAssetRegistered(req *http.Request, args *AssetArgs, reply *IsAssetRegisteredReply) (err error) {
	reply.Registered, err = j.engine.IsRegistered(req.Context(), args.Asset)
	return rpcError(err)
}

type AssetsReply struct {
	Assets []codec.Address `json:"assets"`
}

func (j *JSONRPCServer) Assets(req *http.Request, _ *struct{}, reply *AssetsReply) (err error) {
	reply.Assets, err = j.engine.Assets(req.Context())
	return rpcError(err)
}

type PairArgs struct {
	AssetX codec.Address `json:"assetX"`
	AssetY codec.Address `json:"assetY"`
}

func (j *JSONRPCServer) CreatePool(req *http.Request, args *PairArgs, reply *SuccessReply) error {
	if err := j.engine.CreatePool(req.Context(), args.AssetX, args.AssetY); err != nil {
		return rpcError(err)
	}
	reply.Success = true
	return nil
}

type GetPoolReply struct {
	Exists bool              `json:"exists"`
	Pool   *dex.PoolSnapshot `json:"pool,omitempty"`
}

func (j *JSONRPCServer) GetPool(req *http.Request, args *PairArgs, reply *GetPoolReply) (err error) {
	reply.Pool, reply.Exists, err = j.engine.GetPool(req.Context(), args.AssetX, args.AssetY)
	return rpcError(err)
}

type PoolsReply struct {
	Pools []*dex.PoolSnapshot `json:"pools"`
}

func (j *JSONRPCServer) Pools(req *http.Request, _ *struct{}, reply *PoolsReply) (err error) {
	reply.Pools, err = j.engine.Pools(req.Context())
	return rpcError(err)
}

type AddLiquidityArgs struct {
	Actor     codec.Address `json:"actor"`
	AssetX    codec.Address `json:"assetX"`
	AssetY    codec.Address `json:"assetY"`
	AmountX   uint64        `json:"amountX"`
	AmountY   uint64        `json:"amountY"`
	MinShares uint64        `json:"minShares"`
}

type SharesReply struct {
	Shares uint64 `json:"shares"`
}

func (j *JSONRPCServer) AddLiquidity(req *http.Request, args *AddLiquidityArgs, reply *SharesReply) (err error) {
	reply.Shares, err = j.engine.AddLiquidity(
		req.Context(),
		args.Actor,
		args.AssetX,
		args.AssetY,
		args.AmountX,
		args.AmountY,
		args.MinShares,
	)
	return rpcError(err)
}

type RemoveLiquidityArgs struct {
	Actor  codec.Address `json:"actor"`
	AssetX codec.Address `json:"assetX"`
	AssetY codec.Address `json:"assetY"`
	Shares uint64        `json:"shares"`
	MinX   uint64        `json:"minX"`
	MinY   uint64        `json:"minY"`
}

type RemoveLiquidityReply struct {
	AmountX uint64 `json:"amountX"`
	AmountY uint64 `json:"amountY"`
}

func (j *JSONRPCServer) RemoveLiquidity(req *http.Request, args *RemoveLiquidityArgs, reply *RemoveLiquidityReply) (err error) {
	reply.AmountX, reply.AmountY, err = j.engine.RemoveLiquidity(
		req.Context(),
		args.Actor,
		args.AssetX,
		args.AssetY,
		args.Shares,
		args.MinX,
		args.MinY,
	)
	return rpcError(err)
}

type SwapArgs struct {
	Actor        codec.Address `json:"actor"`
	AssetX       codec.Address `json:"assetX"`
	AssetY       codec.Address `json:"assetY"`
	AmountIn     uint64        `json:"amountIn"`
	MinAmountOut uint64        `json:"minAmountOut"`
}

type AmountOutReply struct {
	AmountOut uint64 `json:"amountOut"`
}

func (j *JSONRPCServer) SwapXForY(req *http.Request, args *SwapArgs, reply *AmountOutReply) (err error) {
	reply.AmountOut, err = j.engine.SwapXForY(req.Context(), args.Actor, args.AssetX, args.AssetY, args.AmountIn, args.MinAmountOut)
	return rpcError(err)
}

func (j *JSONRPCServer) SwapYForX(req *http.Request, args *SwapArgs, reply *AmountOutReply) (err error) {
	reply.AmountOut, err = j.engine.SwapYForX(req.Context(), args.Actor, args.AssetX, args.AssetY, args.AmountIn, args.MinAmountOut)
	return rpcError(err)
}

type GetSwapOutputArgs struct {
	AmountIn   uint64 `json:"amountIn"`
	ReserveIn  uint64 `json:"reserveIn"`
	ReserveOut uint64 `json:"reserveOut"`
}

func (*JSONRPCServer) GetSwapOutput(_ *http.Request, args *GetSwapOutputArgs, reply *AmountOutReply) (err error) {
	reply.AmountOut, err = dex.GetSwapOutput(args.AmountIn, args.ReserveIn, args.ReserveOut)
	return rpcError(err)
}

type CalculateSharesArgs struct {
	AmountX     uint64 `json:"amountX"`
	AmountY     uint64 `json:"amountY"`
	ReserveX    uint64 `json:"reserveX"`
	ReserveY    uint64 `json:"reserveY"`
	TotalShares uint64 `json:"totalShares"`
}

func (*JSONRPCServer) CalculateShares(_ *http.Request, args *CalculateSharesArgs, reply *SharesReply) (err error) {
	reply.Shares, err = dex.CalculateShares(args.AmountX, args.AmountY, args.ReserveX, args.ReserveY, args.TotalShares)
	return rpcError(err)
}

type GetUserSharesArgs struct {
	Depositor codec.Address `json:"depositor"`
	AssetX    codec.Address `json:"assetX"`
	AssetY    codec.Address `json:"assetY"`
}

func (j *JSONRPCServer) GetUserShares(req *http.Request, args *GetUserSharesArgs, reply *SharesReply) (err error) {
	reply.Shares, err = j.engine.UserShares(req.Context(), args.Depositor, args.AssetX, args.AssetY)
	return rpcError(err)
}
