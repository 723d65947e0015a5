// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/profiler"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/tokendex/codec"
	"github.com/ava-labs/tokendex/consts"
	"github.com/ava-labs/tokendex/pebble"
	"github.com/ava-labs/tokendex/server"
	"github.com/ava-labs/tokendex/trace"
)

var ErrMissingAdmin = errors.New("admin address is required")

// LogConfig controls where the daemon logs go. An empty File logs to
// stdout; otherwise the file is rotated once it reaches MaxSize megabytes.
type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"maxSize"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAge     int    `yaml:"maxAge"` // days
	Compress   bool   `yaml:"compress"`
}

type Config struct {
	Log LogConfig `yaml:"log"`

	// DataDir holds the pebble database. Empty keeps all state in memory.
	DataDir string        `yaml:"dataDir"`
	Pebble  pebble.Config `yaml:"pebble"`

	ListenAddress   string            `yaml:"listenAddress"`
	HTTP            server.HTTPConfig `yaml:"http"`
	AllowedOrigins  []string          `yaml:"allowedOrigins"`
	AllowedHosts    []string          `yaml:"allowedHosts"`
	ShutdownTimeout time.Duration     `yaml:"shutdownTimeout"`

	// Admin is the hex address allowed to register assets.
	Admin string `yaml:"admin"`

	Trace                    trace.Config    `yaml:"trace"`
	ContinuousProfilerConfig profiler.Config `yaml:"continuousProfiler"`
}

func NewConfig() Config {
	return Config{
		Log: LogConfig{
			Level:      logging.Info.String(),
			Format:     "auto",
			MaxSize:    8, // MB
			MaxBackups: 7,
			MaxAge:     30,
			Compress:   true,
		},
		Pebble:        pebble.NewDefaultConfig(),
		ListenAddress: "127.0.0.1:9650",
		HTTP: server.HTTPConfig{
			ReadTimeout:       30 * time.Second,
			ReadHeaderTimeout: 30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		AllowedOrigins:  []string{"*"},
		AllowedHosts:    []string{"localhost"},
		ShutdownTimeout: 10 * time.Second,
		Trace: trace.Config{
			Enabled:         false,
			TraceSampleRate: 0.1,
			Endpoint:        trace.DefaultEndpoint,
			AppName:         consts.Name,
			Agent:           consts.Name,
		},
		ContinuousProfilerConfig: profiler.Config{Enabled: false},
	}
}

// Load reads the YAML file at [path] over the defaults of [NewConfig].
func Load(path string) (Config, error) {
	c := NewConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.UnmarshalStrict(b, &c); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return c, c.Verify()
}

// Verify checks the fields that have no usable default.
func (c *Config) Verify() error {
	if _, err := logging.ToLevel(c.Log.Level); err != nil {
		return err
	}
	_, err := c.AdminAddress()
	return err
}

func (c *Config) AdminAddress() (codec.Address, error) {
	if c.Admin == "" {
		return codec.EmptyAddress, ErrMissingAdmin
	}
	return codec.ParseAddress(c.Admin)
}
