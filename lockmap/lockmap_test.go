// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lockmap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestLockUnlockReleasesEntry(t *testing.T) {
	require := require.New(t)
	l := New(4)

	l.Lock("a")
	l.RLock("b")
	require.Equal(2, l.Locks())

	l.Unlock("a")
	require.Equal(1, l.Locks())
	l.RUnlock("b")
	require.Zero(l.Locks())
}

func TestSharedReaders(t *testing.T) {
	require := require.New(t)
	l := New(1)

	l.RLock("a")
	l.RLock("a")
	require.Equal(1, l.Locks())
	l.RUnlock("a")
	l.RUnlock("a")
	require.Zero(l.Locks())
}

func TestWriterExcludesWriter(t *testing.T) {
	require := require.New(t)
	l := New(1)

	l.Lock("a")
	acquired := make(chan struct{})
	go func() {
		l.Lock("a")
		close(acquired)
		l.Unlock("a")
	}()

	select {
	case <-acquired:
		require.FailNow("second writer acquired held lock")
	case <-time.After(50 * time.Millisecond):
	}
	l.Unlock("a")
	<-acquired
}

func TestDistinctKeysDoNotBlock(t *testing.T) {
	l := New(2)

	l.Lock("a")
	defer l.Unlock("a")

	done := make(chan struct{})
	go func() {
		l.Lock("b")
		l.Unlock("b")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		require.FailNow(t, "lock on a distinct key blocked")
	}
}

func TestAcquireOrdering(t *testing.T) {
	require := require.New(t)
	l := New(4)

	var (
		g       errgroup.Group
		counter int
	)
	for i := 0; i < 64; i++ {
		keys := map[string]bool{"x": true, "y": false, "z": true}
		if i%2 == 0 {
			keys = map[string]bool{"z": true, "x": true}
		}
		g.Go(func() error {
			release := l.Acquire(keys)
			counter++
			release()
			return nil
		})
	}
	require.NoError(g.Wait())
	require.Equal(64, counter)
	require.Zero(l.Locks())
}
