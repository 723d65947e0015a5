// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/json"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

func TestAddress(t *testing.T) {
	require := require.New(t)
	typeID := byte(0)
	addrID := ids.GenerateTestID()

	addr := CreateAddress(typeID, addrID)
	addrStr, err := addr.MarshalText()
	require.NoError(err)

	var parsedAddr Address
	require.NoError(parsedAddr.UnmarshalText(addrStr))
	require.Equal(addr, parsedAddr)
}

func TestAddressJSON(t *testing.T) {
	require := require.New(t)
	addr := CreateAddress(2, ids.GenerateTestID())

	addrJSONBytes, err := json.Marshal(addr)
	require.NoError(err)

	var parsedAddr Address
	require.NoError(json.Unmarshal(addrJSONBytes, &parsedAddr))
	require.Equal(addr, parsedAddr)
}

func TestParseAddress(t *testing.T) {
	addr := CreateAddress(1, ids.GenerateTestID())

	tests := []struct {
		name        string
		input       string
		expected    Address
		expectedErr error
	}{
		{
			name:     "prefixed",
			input:    addr.String(),
			expected: addr,
		},
		{
			name:     "unprefixed",
			input:    addr.String()[2:],
			expected: addr,
		},
		{
			name:        "too short",
			input:       "0x0102",
			expectedErr: ErrInvalidAddressLength,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			parsed, err := ParseAddress(tt.input)
			require.ErrorIs(err, tt.expectedErr)
			require.Equal(tt.expected, parsed)
		})
	}
}

func TestParseAddressInvalidHex(t *testing.T) {
	_, err := ParseAddress("0xzz")
	require.Error(t, err)
}

func TestCompare(t *testing.T) {
	require := require.New(t)

	a := CreateAddress(0, ids.ID{1})
	b := CreateAddress(0, ids.ID{2})
	require.Negative(a.Compare(b))
	require.Positive(b.Compare(a))
	require.Zero(a.Compare(a))
}

func TestUnmarshalTextLength(t *testing.T) {
	require := require.New(t)

	var a Address
	err := a.UnmarshalText([]byte("0x0102"))
	require.ErrorIs(err, ErrInvalidAddressLength)
	require.Equal(EmptyAddress, a)
}
