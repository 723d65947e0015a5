// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"

	"github.com/ava-labs/avalanchego/utils/maybe"
)

// Immutable returns [database.ErrNotFound] for keys that do not exist.
type Immutable interface {
	GetValue(ctx context.Context, key []byte) (value []byte, err error)
}

type Mutable interface {
	Immutable

	Insert(ctx context.Context, key []byte, value []byte) error
	Remove(ctx context.Context, key []byte) error
}

// Database is the durable backing store of the ledger.
type Database interface {
	Immutable

	// Iterate calls [f] for every key starting with [prefix], in ascending
	// key order, until [f] returns false.
	Iterate(ctx context.Context, prefix []byte, f func(key []byte, value []byte) bool) error

	// Commit applies every change atomically. A [maybe.Nothing] value
	// deletes the key.
	Commit(ctx context.Context, changes map[string]maybe.Maybe[[]byte]) error

	Close() error
}
