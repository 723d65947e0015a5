// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRouterRejectsDuplicates(t *testing.T) {
	require := require.New(t)

	r := newRouter()
	h := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	require.NoError(r.AddRouter("/tokendex", "", h))
	require.NoError(r.AddRouter("/tokendex", "/ws", h))
	require.ErrorIs(r.AddRouter("/tokendex", "", h), errAlreadyReserved)
}

func TestFilterInvalidHosts(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	tests := []struct {
		name    string
		allowed []string
		host    string
		want    int
	}{
		{name: "allowed", allowed: []string{"localhost"}, host: "localhost:9650", want: http.StatusOK},
		{name: "case insensitive", allowed: []string{"LocalHost"}, host: "localhost", want: http.StatusOK},
		{name: "ip", allowed: []string{"localhost"}, host: "127.0.0.1:9650", want: http.StatusOK},
		{name: "wildcard", allowed: []string{"*"}, host: "example.com", want: http.StatusOK},
		{name: "rejected", allowed: []string{"localhost"}, host: "example.com", want: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Host = tt.host
			w := httptest.NewRecorder()
			filterInvalidHosts(ok, tt.allowed).ServeHTTP(w, req)
			require.Equal(t, tt.want, w.Code)
		})
	}
}

func TestServer(t *testing.T) {
	require := require.New(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)
	s := New("", logging.NoLog{}, listener, HTTPConfig{ReadHeaderTimeout: time.Second}, []string{"*"}, []string{"*"}, time.Second)
	require.NoError(s.AddRoute(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong"))
	}), "ping", ""))

	done := make(chan error, 1)
	go func() {
		done <- s.Dispatch()
	}()

	resp, err := http.Get("http://" + s.Addr().String() + "/ping")
	require.NoError(err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(err)
	require.NoError(resp.Body.Close())
	require.Equal("pong", string(body))

	require.NoError(s.Shutdown())
	require.NoError(<-done)
}

func TestMetricsWrapper(t *testing.T) {
	require := require.New(t)

	registry := prometheus.NewRegistry()
	wrapper, err := NewMetricsWrapper(registry)
	require.NoError(err)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)
	s := New("", logging.NoLog{}, listener, HTTPConfig{ReadHeaderTimeout: time.Second}, []string{"*"}, []string{"*"}, time.Second, wrapper)
	require.NoError(s.AddRoute(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), "ping", ""))

	done := make(chan error, 1)
	go func() {
		done <- s.Dispatch()
	}()

	for i := 0; i < 3; i++ {
		resp, err := http.Get("http://" + s.Addr().String() + "/ping")
		require.NoError(err)
		require.NoError(resp.Body.Close())
	}
	require.NoError(s.Shutdown())
	require.NoError(<-done)

	mw := wrapper.(*metricsWrapper)
	require.Equal(float64(3), testutil.ToFloat64(mw.calls.WithLabelValues("200", "get")))
	require.Equal(float64(0), testutil.ToFloat64(mw.inFlight))

	_, err = NewMetricsWrapper(registry)
	require.Error(err)
}
