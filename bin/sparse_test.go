package bin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildScenario constructs the reference store: 3 rows, 5 buckets,
// row0=[1,3], row1=[], row2=[2,4,1].
func buildScenario(t *testing.T, opts ...Option) *Sparse[uint8] {
	t.Helper()

	s, err := New[uint8](3, 5, 2.0, opts...)
	require.NoError(t, err)

	s.PushOneRow(0, 0, []uint32{1, 3})
	s.PushOneRow(0, 1, nil)
	s.PushOneRow(0, 2, []uint32{2, 4, 1})
	s.FinishLoad()

	return s
}

func TestSparse_FinishLoad_OffsetsAndData(t *testing.T) {
	s := buildScenario(t)

	require.Equal(t, []int{0, 2, 2, 5}, s.rowPtr)
	require.Equal(t, []uint8{1, 3, 2, 4, 1}, s.data)
	require.Nil(t, s.shards)
	require.Equal(t, 3, s.NumRows())
	require.Equal(t, 5, s.NumBin())
	require.True(t, s.IsSparse())
}

func TestSparse_FinishLoad_OffsetInvariants(t *testing.T) {
	s := buildScenario(t)

	require.Zero(t, s.rowPtr[0])
	for i := 0; i < s.NumRows(); i++ {
		require.LessOrEqual(t, s.rowPtr[i], s.rowPtr[i+1])
	}
	require.Equal(t, len(s.data), s.rowPtr[s.NumRows()])
}

func TestSparse_FinishLoad_RefinesDensity(t *testing.T) {
	s := buildScenario(t)

	require.InDelta(t, 5.0/3.0, s.elementsPerRow, 1e-12)
}

func TestSparse_ShardInvariance(t *testing.T) {
	single := buildScenario(t, WithNumThreads(1))

	// Same rows distributed over three producer threads in contiguous,
	// thread-ordered blocks.
	sharded, err := New[uint8](3, 5, 2.0, WithNumThreads(3))
	require.NoError(t, err)
	sharded.PushOneRow(0, 0, []uint32{1, 3})
	sharded.PushOneRow(1, 1, nil)
	sharded.PushOneRow(2, 2, []uint32{2, 4, 1})
	sharded.FinishLoad()

	require.Equal(t, single.rowPtr, sharded.rowPtr)
	require.Equal(t, single.data, sharded.data)
	require.Equal(t, single.Checksum(), sharded.Checksum())
}

func TestSparse_ShardInvariance_UnevenBlocks(t *testing.T) {
	rows := [][]uint32{
		{0, 2}, {1}, {}, {3, 4, 5}, {2, 3}, {}, {1, 5}, {0},
	}

	build := func(assign []int, numThreads int) *Sparse[uint16] {
		s, err := New[uint16](len(rows), 6, 1.5, WithNumThreads(numThreads))
		require.NoError(t, err)
		for i, vals := range rows {
			s.PushOneRow(assign[i], i, vals)
		}
		s.FinishLoad()

		return s
	}

	base := build([]int{0, 0, 0, 0, 0, 0, 0, 0}, 1)
	split := build([]int{0, 0, 0, 1, 1, 2, 3, 3}, 4)

	require.Equal(t, base.rowPtr, split.rowPtr)
	require.Equal(t, base.data, split.data)
}

func TestSparse_AllRowsEmpty(t *testing.T) {
	s, err := New[uint8](4, 3, 0.0)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		s.PushOneRow(0, i, nil)
	}
	s.FinishLoad()

	require.Equal(t, []int{0, 0, 0, 0, 0}, s.rowPtr)
	require.Empty(t, s.data)
}

func TestSparse_NarrowsToStorageWidth(t *testing.T) {
	s, err := New[uint8](1, 5, 1.0, WithNumThreads(1))
	require.NoError(t, err)

	// 257 does not fit a byte; storage keeps the low 8 bits. Choosing an
	// adequate width for numBin-1 is the caller's responsibility.
	s.PushOneRow(0, 0, []uint32{257})
	s.FinishLoad()

	require.Equal(t, []uint8{1}, s.data)
}

func TestSparse_ReSize(t *testing.T) {
	s := buildScenario(t)

	s.ReSize(2)
	require.Equal(t, 2, s.NumRows())

	s.ReSize(3)
	require.Equal(t, 3, s.NumRows())
	require.Equal(t, []int{0, 2, 2, 5}, s.rowPtr)
}

func TestSparse_Clone_Independent(t *testing.T) {
	s := buildScenario(t)

	c, ok := s.Clone().(*Sparse[uint8])
	require.True(t, ok)
	require.Equal(t, s.Checksum(), c.Checksum())

	c.data[0] = 4
	require.NotEqual(t, s.Checksum(), c.Checksum())
	require.Equal(t, uint8(1), s.data[0])
}

func TestSparse_Checksum_SensitiveToOffsets(t *testing.T) {
	a, err := New[uint8](2, 3, 1.0, WithNumThreads(1))
	require.NoError(t, err)
	a.PushOneRow(0, 0, []uint32{1, 2})
	a.PushOneRow(0, 1, nil)
	a.FinishLoad()

	// Same flat data, different row partition.
	b, err := New[uint8](2, 3, 1.0, WithNumThreads(1))
	require.NoError(t, err)
	b.PushOneRow(0, 0, []uint32{1})
	b.PushOneRow(0, 1, []uint32{2})
	b.FinishLoad()

	require.Equal(t, a.data, b.data)
	require.NotEqual(t, a.Checksum(), b.Checksum())
}

func TestNew_OptionValidation(t *testing.T) {
	_, err := New[uint8](1, 2, 1.0, WithNumThreads(0))
	require.Error(t, err)

	_, err = New[uint8](1, 2, 1.0, WithCapacityFactor(0.5))
	require.Error(t, err)

	_, err = New[uint8](1, 2, 1.0, WithCapacityFactor(2.0), WithPrefetch(false))
	require.NoError(t, err)
}
