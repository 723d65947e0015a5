// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

const (
	Read     Permissions = 1
	Allocate             = 1<<1 | Read
	Write                = 1<<2 | Read

	None Permissions = 0
	All              = Read | Allocate | Write
)

// Keys maps a key to the permissions an operation holds on it. Use [Add]
// so that declaring a key twice unions the permissions instead of
// overwriting them.
type Keys map[string]Permissions

// All acceptable permission options
type Permissions byte

func (k Keys) Add(name string, permission Permissions) {
	k[name] |= permission
}

// WriteKeys reports, for every key, whether it may be modified. It is the
// shape [lockmap.Lockmap.Acquire] expects.
func (k Keys) WriteKeys() map[string]bool {
	m := make(map[string]bool, len(k))
	for name, p := range k {
		m[name] = p.Has(Allocate) || p.Has(Write)
	}
	return m
}

// Has returns true if [p] has all the permissions that are contained in require
func (p Permissions) Has(require Permissions) bool {
	return require&^p == 0
}
