package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVector_ValueAndScan(t *testing.T) {
	v := Vector{0.1, 0.2, 0.3}

	raw, err := v.Value()
	require.NoError(t, err)

	var got Vector
	require.NoError(t, got.Scan(raw))
	assert.Equal(t, v, got)
}

func TestVector_NilStoresNull(t *testing.T) {
	var v Vector
	raw, err := v.Value()
	require.NoError(t, err)
	assert.Nil(t, raw)

	var got Vector
	require.NoError(t, got.Scan(nil))
	assert.Nil(t, got)
}

func TestVector_ScanString(t *testing.T) {
	var got Vector
	require.NoError(t, got.Scan("[1,2]"))
	assert.Equal(t, Vector{1, 2}, got)
}

func TestVector_ScanRejectsUnknownType(t *testing.T) {
	var got Vector
	assert.Error(t, got.Scan(42))
}

func TestStringList_RoundTrip(t *testing.T) {
	l := StringList{"GO", "PYTHON"}

	raw, err := l.Value()
	require.NoError(t, err)

	var got StringList
	require.NoError(t, got.Scan(raw))
	assert.Equal(t, l, got)
}

func TestStringList_NilStoresEmptyArray(t *testing.T) {
	var l StringList
	raw, err := l.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), raw)
}
