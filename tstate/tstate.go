// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"errors"
	"slices"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"

	"github.com/ava-labs/tokendex/state"
)

var _ state.Mutable = (*View)(nil)

// View buffers every write made by a single operation on top of a parent
// [state.Immutable]. Nothing reaches the parent until [Commit], so
// discarding a View discards the whole operation.
//
// Every access is checked against the [state.Keys] the view was created
// with:
//   - reads require [state.Read]
//   - creating a key requires [state.Allocate]
//   - modifying or removing an existing key requires [state.Write]
type View struct {
	parent state.Immutable
	scope  state.Keys

	pending   map[string]maybe.Maybe[[]byte]
	committed bool
}

func New(parent state.Immutable, scope state.Keys) *View {
	return &View{
		parent:  parent,
		scope:   scope,
		pending: make(map[string]maybe.Maybe[[]byte], len(scope)),
	}
}

func (v *View) checkScope(k string, require state.Permissions) bool {
	return v.scope[k].Has(require)
}

// getValue returns the value of [k] and whether it exists.
func (v *View) getValue(ctx context.Context, k string) ([]byte, bool, error) {
	if p, ok := v.pending[k]; ok {
		if p.IsNothing() {
			return nil, false, nil
		}
		return p.Value(), true, nil
	}
	val, err := v.parent.GetValue(ctx, []byte(k))
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// GetValue returns [database.ErrNotFound] if [key] does not exist.
func (v *View) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	k := string(key)
	if !v.checkScope(k, state.Read) {
		return nil, ErrInvalidKeyOrPermission
	}
	val, exists, err := v.getValue(ctx, k)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, database.ErrNotFound
	}
	return slices.Clone(val), nil
}

// Insert sets or updates [key]. The bytes are copied.
func (v *View) Insert(ctx context.Context, key []byte, value []byte) error {
	if v.committed {
		return ErrViewCommitted
	}
	k := string(key)
	_, exists, err := v.getValue(ctx, k)
	if err != nil {
		return err
	}
	require := state.Write
	if !exists {
		require = state.Allocate
	}
	if !v.checkScope(k, require) {
		return ErrInvalidKeyOrPermission
	}
	v.pending[k] = maybe.Some(slices.Clone(value))
	return nil
}

// Remove deletes [key]. Removing a key that does not exist is a no-op.
func (v *View) Remove(ctx context.Context, key []byte) error {
	if v.committed {
		return ErrViewCommitted
	}
	k := string(key)
	if !v.checkScope(k, state.Write) {
		return ErrInvalidKeyOrPermission
	}
	_, exists, err := v.getValue(ctx, k)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	v.pending[k] = maybe.Nothing[[]byte]()
	return nil
}

// PendingChanges returns the number of keys modified by the view.
func (v *View) PendingChanges() int {
	return len(v.pending)
}

// Commit writes every pending change to [db] in a single batch. A view can
// only be committed once.
func (v *View) Commit(ctx context.Context, db state.Database) error {
	if v.committed {
		return ErrViewCommitted
	}
	v.committed = true
	if len(v.pending) == 0 {
		return nil
	}
	return db.Commit(ctx, v.pending)
}
