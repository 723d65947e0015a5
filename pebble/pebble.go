// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"
	"github.com/ava-labs/avalanchego/utils/units"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"

	"github.com/ava-labs/tokendex/state"
)

var _ state.Database = (*Database)(nil)

type Config struct {
	CacheSize                   int  `yaml:"cacheSize"`
	BytesPerSync                int  `yaml:"bytesPerSync"`
	WALBytesPerSync             int  `yaml:"walBytesPerSync"` // 0 means no background syncing
	MemTableStopWritesThreshold int  `yaml:"memTableStopWritesThreshold"`
	MemTableSize                int  `yaml:"memTableSize"`
	MaxOpenFiles                int  `yaml:"maxOpenFiles"`
	ConcurrentCompactions       int  `yaml:"concurrentCompactions"`
	Sync                        bool `yaml:"sync"`
}

func NewDefaultConfig() Config {
	return Config{
		CacheSize:                   256 * units.MiB,
		BytesPerSync:                units.MiB,
		WALBytesPerSync:             units.MiB,
		MemTableStopWritesThreshold: 8,
		MemTableSize:                16 * units.MiB,
		MaxOpenFiles:                4_096,
		ConcurrentCompactions:       1,
		Sync:                        true,
	}
}

// Database is a pebble-backed [state.Database]. Each [Commit] is written as
// one pebble batch.
type Database struct {
	db           *pebble.DB
	writeOptions *pebble.WriteOptions
	metrics      *metrics

	closed  atomic.Bool
	closing chan struct{}
	wg      sync.WaitGroup
}

func New(file string, cfg Config, registerer prometheus.Registerer) (*Database, error) {
	m, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	d := &Database{
		metrics: m,
		closing: make(chan struct{}),
	}
	if cfg.Sync {
		d.writeOptions = pebble.Sync
	} else {
		d.writeOptions = pebble.NoSync
	}

	opts := &pebble.Options{
		Cache:                       pebble.NewCache(int64(cfg.CacheSize)),
		BytesPerSync:                cfg.BytesPerSync,
		Comparer:                    pebble.DefaultComparer,
		WALBytesPerSync:             cfg.WALBytesPerSync,
		MemTableStopWritesThreshold: cfg.MemTableStopWritesThreshold,
		MemTableSize:                uint64(cfg.MemTableSize),
		MaxOpenFiles:                cfg.MaxOpenFiles,
		MaxConcurrentCompactions:    func() int { return cfg.ConcurrentCompactions },
	}
	opts.Experimental.ReadSamplingMultiplier = -1 // explicitly disable seek compaction
	opts.EventListener = &pebble.EventListener{
		CompactionBegin: d.onCompactionBegin,
		CompactionEnd:   d.onCompactionEnd,
		WriteStallBegin: d.onWriteStallBegin,
		WriteStallEnd:   d.onWriteStallEnd,
	}
	defer opts.Cache.Unref()

	db, err := pebble.Open(file, opts)
	if err != nil {
		return nil, err
	}
	d.db = db

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.collectMetrics()
	}()
	return d, nil
}

func (d *Database) GetValue(_ context.Context, key []byte) ([]byte, error) {
	if d.closed.Load() {
		return nil, database.ErrClosed
	}
	start := time.Now()
	v, closer, err := d.db.Get(key)
	d.metrics.getLatency.Observe(time.Since(start).Seconds())
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	value := slices.Clone(v)
	return value, closer.Close()
}

func (d *Database) Iterate(_ context.Context, prefix []byte, f func([]byte, []byte) bool) error {
	if d.closed.Load() {
		return database.ErrClosed
	}
	iter, err := d.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixUpperBound(prefix),
	})
	if err != nil {
		return err
	}
	for valid := iter.First(); valid; valid = iter.Next() {
		if !f(slices.Clone(iter.Key()), slices.Clone(iter.Value())) {
			break
		}
	}
	if err := iter.Error(); err != nil {
		_ = iter.Close()
		return err
	}
	return iter.Close()
}

func (d *Database) Commit(_ context.Context, changes map[string]maybe.Maybe[[]byte]) error {
	if d.closed.Load() {
		return database.ErrClosed
	}
	batch := d.db.NewBatch()
	defer batch.Close()

	for k, v := range changes {
		var err error
		if v.IsNothing() {
			err = batch.Delete([]byte(k), nil)
		} else {
			err = batch.Set([]byte(k), v.Value(), nil)
		}
		if err != nil {
			return err
		}
	}
	d.metrics.batchedKeys.Add(float64(len(changes)))
	return batch.Commit(d.writeOptions)
}

func (d *Database) Close() error {
	if !d.closed.CompareAndSwap(false, true) {
		return database.ErrClosed
	}
	close(d.closing)
	d.wg.Wait()
	return d.db.Close()
}

// prefixUpperBound returns the smallest key greater than every key starting
// with [prefix], or nil if there is none.
func prefixUpperBound(prefix []byte) []byte {
	upper := slices.Clone(prefix)
	for i := len(upper) - 1; i >= 0; i-- {
		if upper[i] != 0xff {
			upper[i]++
			return upper[:i+1]
		}
	}
	return nil
}
