package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetHistogram_ZeroedAndSized(t *testing.T) {
	hist, cleanup := GetHistogram(16)
	defer cleanup()

	require.Len(t, hist, 32)
	for _, v := range hist {
		require.Zero(t, v)
	}
}

func TestGetFloat64Slice_ReuseIsZeroed(t *testing.T) {
	s, cleanup := GetFloat64Slice(8)
	for i := range s {
		s[i] = 42
	}
	cleanup()

	s2, cleanup2 := GetFloat64Slice(4)
	defer cleanup2()

	require.Len(t, s2, 4)
	for _, v := range s2 {
		require.Zero(t, v)
	}
}

func TestGetIntSlice_GrowsWhenNeeded(t *testing.T) {
	s, cleanup := GetIntSlice(2)
	cleanup()

	s2, cleanup2 := GetIntSlice(1024)
	defer cleanup2()

	require.Len(t, s2, 1024)
	for _, v := range s2 {
		require.Zero(t, v)
	}
	_ = s
}
