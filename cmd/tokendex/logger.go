// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"io"
	"os"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ava-labs/tokendex/config"
	"github.com/ava-labs/tokendex/consts"
)

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}

func newLogger(c config.LogConfig) (logging.Logger, error) {
	level, err := logging.ToLevel(c.Level)
	if err != nil {
		return nil, err
	}
	format, err := logging.ToFormat(c.Format, os.Stdout.Fd())
	if err != nil {
		return nil, err
	}

	var w io.WriteCloser = nopCloser{Writer: os.Stdout}
	if c.File != "" {
		w = &lumberjack.Logger{
			Filename:   c.File,
			MaxSize:    c.MaxSize,
			MaxBackups: c.MaxBackups,
			MaxAge:     c.MaxAge,
			Compress:   c.Compress,
		}
		// Rotated files are never colored.
		format = logging.Plain
	}
	return logging.NewLogger(
		consts.Name,
		logging.NewWrappedCore(level, w, format.ConsoleEncoder()),
	), nil
}
