// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"
	"slices"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/utils/maybe"
)

var _ Database = (*Memory)(nil)

// Memory is a goroutine-safe, in-memory [Database] backed by memdb.
type Memory struct {
	db *memdb.Database
}

func NewMemory() *Memory {
	return &Memory{db: memdb.New()}
}

func (m *Memory) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return m.db.Get(key)
}

func (m *Memory) Iterate(_ context.Context, prefix []byte, f func([]byte, []byte) bool) error {
	it := m.db.NewIteratorWithPrefix(prefix)
	defer it.Release()

	for it.Next() {
		if !f(it.Key(), slices.Clone(it.Value())) {
			break
		}
	}
	return it.Error()
}

// Commit applies [changes] in one batch write.
func (m *Memory) Commit(_ context.Context, changes map[string]maybe.Maybe[[]byte]) error {
	batch := m.db.NewBatch()
	for k, v := range changes {
		var err error
		if v.IsNothing() {
			err = batch.Delete([]byte(k))
		} else {
			err = batch.Put([]byte(k), v.Value())
		}
		if err != nil {
			return err
		}
	}
	return batch.Write()
}

func (m *Memory) Close() error {
	return m.db.Close()
}
