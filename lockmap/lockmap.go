// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lockmap

import (
	"slices"
	"sync"

	"golang.org/x/exp/maps"
)

type holderLock struct {
	holders int
	mu      sync.RWMutex
}

// Lockmap is a table of RW locks created on demand and dropped once the
// last holder releases them.
type Lockmap struct {
	l sync.Mutex
	m map[string]*holderLock
}

func New(initSize int) *Lockmap {
	return &Lockmap{
		m: make(map[string]*holderLock, initSize),
	}
}

func (l *Lockmap) Lock(key string) {
	l.lock(key, true)
}

func (l *Lockmap) Unlock(key string) {
	l.unlock(key, true)
}

func (l *Lockmap) RLock(key string) {
	l.lock(key, false)
}

func (l *Lockmap) RUnlock(key string) {
	l.unlock(key, false)
}

// Acquire locks every key in [keys] (true for write access, false for read
// access) in sorted order and returns a function that releases them.
//
// Callers that only ever use Acquire to take more than one lock can never
// deadlock against each other.
func (l *Lockmap) Acquire(keys map[string]bool) func() {
	ordered := maps.Keys(keys)
	slices.Sort(ordered)
	for _, k := range ordered {
		l.lock(k, keys[k])
	}
	return func() {
		for i := len(ordered) - 1; i >= 0; i-- {
			k := ordered[i]
			l.unlock(k, keys[k])
		}
	}
}

func (l *Lockmap) lock(key string, write bool) {
	l.l.Lock()
	hl, ok := l.m[key]
	if !ok {
		hl = &holderLock{}
		l.m[key] = hl
	}
	hl.holders++
	l.l.Unlock()

	if write {
		hl.mu.Lock()
	} else {
		hl.mu.RLock()
	}
}

func (l *Lockmap) unlock(key string, write bool) {
	l.l.Lock()
	hl := l.m[key]
	hl.holders--
	if hl.holders == 0 {
		delete(l.m, key)
	}
	l.l.Unlock()

	if write {
		hl.mu.Unlock()
	} else {
		hl.mu.RUnlock()
	}
}

// Locks returns the number of keys currently held or waited on.
func (l *Lockmap) Locks() int {
	l.l.Lock()
	defer l.l.Unlock()

	return len(l.m)
}
