// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/rpc"
	"github.com/gorilla/rpc/v2/json2"

	"github.com/ava-labs/tokendex/dex"
)

// EndpointRequester calls the methods of one JSON-RPC service.
type EndpointRequester struct {
	requester rpc.EndpointRequester
	base      string
}

func NewEndpointRequester(uri string, base string) *EndpointRequester {
	return &EndpointRequester{
		requester: rpc.NewEndpointRequester(uri),
		base:      base,
	}
}

// SendRequest calls [base].[method]. Errors carrying a known code come back
// as the matching [*dex.Error].
func (e *EndpointRequester) SendRequest(
	ctx context.Context,
	method string,
	params interface{},
	reply interface{},
) error {
	err := e.requester.SendRequest(ctx, fmt.Sprintf("%s.%s", e.base, method), params, reply)
	var jsonErr *json2.Error
	if errors.As(err, &jsonErr) {
		if dexErr := dex.FromCode(int(jsonErr.Code), jsonErr.Message); dexErr != nil {
			return dexErr
		}
	}
	return err
}
