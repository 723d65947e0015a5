// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToIDDeterministic(t *testing.T) {
	require := require.New(t)

	a := ToID([]byte("pool"))
	b := ToID([]byte("pool"))
	c := ToID([]byte("other"))
	require.Equal(a, b)
	require.NotEqual(a, c)
}

func TestInitSubDirectory(t *testing.T) {
	require := require.New(t)

	root := t.TempDir()
	p, err := InitSubDirectory(root, "db")
	require.NoError(err)
	require.Equal(filepath.Join(root, "db"), p)
	require.DirExists(p)
}
