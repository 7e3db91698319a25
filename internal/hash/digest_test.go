package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDigest_Deterministic(t *testing.T) {
	h1 := NewDigest()
	h2 := NewDigest()
	for _, v := range []uint64{0, 1, 2, 1 << 40} {
		h1.WriteUint64(v)
		h2.WriteUint64(v)
	}

	require.Equal(t, h1.Sum64(), h2.Sum64())
}

func TestDigest_OrderSensitive(t *testing.T) {
	h1 := NewDigest()
	h1.WriteUint64(1)
	h1.WriteUint64(2)

	h2 := NewDigest()
	h2.WriteUint64(2)
	h2.WriteUint64(1)

	require.NotEqual(t, h1.Sum64(), h2.Sum64())
}

func TestDigest_EmptyStable(t *testing.T) {
	require.Equal(t, NewDigest().Sum64(), NewDigest().Sum64())
}
