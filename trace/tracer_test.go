// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"context"
	"testing"

	avatrace "github.com/ava-labs/avalanchego/trace"
	"github.com/stretchr/testify/require"
)

func TestNoopTracer(t *testing.T) {
	require := require.New(t)

	var tracer avatrace.Tracer = Noop()
	ctx, span := tracer.Start(context.Background(), "op")
	require.NotNil(ctx)
	require.False(span.SpanContext().IsValid())
	span.End()
	require.NoError(tracer.Close())
}

func TestDisabledTracer(t *testing.T) {
	require := require.New(t)

	tracer, err := New(&Config{AppName: "tokendex"})
	require.NoError(err)

	ctx, span := tracer.Start(context.Background(), "op")
	require.NotNil(ctx)
	require.False(span.SpanContext().IsValid())
	span.End()
	require.NoError(tracer.Close())
}

func TestEnabledTracer(t *testing.T) {
	require := require.New(t)

	tracer, err := New(&Config{
		Enabled:         true,
		TraceSampleRate: 1,
		AppName:         "tokendex",
		Agent:           "test",
		Version:         "v0.0.0",
	})
	require.NoError(err)

	_, span := tracer.Start(context.Background(), "op")
	require.True(span.SpanContext().IsValid())
	span.End()
	// Export fails without a collector; shutdown must still return.
	_ = tracer.Close()
}
