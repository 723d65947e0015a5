// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"syscall"

	avatrace "github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/profiler"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/tokendex/api/jsonrpc"
	"github.com/ava-labs/tokendex/config"
	"github.com/ava-labs/tokendex/dex"
	"github.com/ava-labs/tokendex/pebble"
	"github.com/ava-labs/tokendex/server"
	"github.com/ava-labs/tokendex/state"
	"github.com/ava-labs/tokendex/trace"
	"github.com/ava-labs/tokendex/utils"
)

const (
	dbDirectory    = "db"
	metricsRoute   = "metrics"
	jsonRPCRoute   = "tokendex"
	profileSubPath = "profiles"
)

func run(ctx context.Context, configPath string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := newLogger(c.Log)
	if err != nil {
		return err
	}
	defer log.Stop()

	registry := prometheus.NewRegistry()
	tracer, err := trace.New(&c.Trace)
	if err != nil {
		return err
	}
	db, err := openDatabase(c, registry)
	if err != nil {
		return errors.Join(err, tracer.Close())
	}

	errs := wrappers.Errs{}
	errs.Add(
		serve(ctx, c, log, tracer, db, registry),
		db.Close(),
		tracer.Close(),
	)
	return errs.Err
}

// serve runs the API until [ctx] is done or the server fails. The caller
// owns [db] and [tracer].
func serve(
	ctx context.Context,
	c config.Config,
	log logging.Logger,
	tracer avatrace.Tracer,
	db state.Database,
	registry *prometheus.Registry,
) error {
	admin, err := c.AdminAddress()
	if err != nil {
		return err
	}
	engine, err := dex.New(log, tracer, db, admin, registry)
	if err != nil {
		return err
	}
	handler, err := jsonrpc.NewHandler(log, engine)
	if err != nil {
		return err
	}
	metricsWrapper, err := server.NewMetricsWrapper(registry)
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", c.ListenAddress)
	if err != nil {
		return err
	}
	srv := server.New(
		"",
		log,
		listener,
		c.HTTP,
		c.AllowedOrigins,
		c.AllowedHosts,
		c.ShutdownTimeout,
		metricsWrapper,
	)
	if err := srv.AddRoute(handler, jsonRPCRoute, ""); err != nil {
		return errors.Join(err, listener.Close())
	}
	if err := srv.AddRoute(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), metricsRoute, ""); err != nil {
		return errors.Join(err, listener.Close())
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Dispatch)
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		return srv.Shutdown()
	})
	if c.ContinuousProfilerConfig.Enabled {
		profileDir := c.ContinuousProfilerConfig.Dir
		if profileDir == "" {
			profileDir = profileSubPath
		}
		p := profiler.NewContinuous(
			profileDir,
			c.ContinuousProfilerConfig.Freq,
			c.ContinuousProfilerConfig.MaxNumFiles,
		)
		g.Go(p.Dispatch)
		g.Go(func() error {
			<-gctx.Done()
			p.Shutdown()
			return nil
		})
	}
	log.Info("tokendex started",
		zap.Stringer("admin", admin),
		zap.String("dataDir", c.DataDir),
		zap.Stringer("address", srv.Addr()),
	)
	return g.Wait()
}

func openDatabase(c config.Config, registry prometheus.Registerer) (state.Database, error) {
	if c.DataDir == "" {
		return state.NewMemory(), nil
	}
	path, err := utils.InitSubDirectory(c.DataDir, dbDirectory)
	if err != nil {
		return nil, err
	}
	return pebble.New(path, c.Pebble, registry)
}
