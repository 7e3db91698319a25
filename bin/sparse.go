package bin

import (
	"slices"

	"github.com/kuoorczp/LightGBM/internal/hash"
	"github.com/kuoorczp/LightGBM/internal/options"
	"github.com/kuoorczp/LightGBM/internal/parallel"
)

// Sparse is the sparse multi-value bin store for storage width T.
//
// Layout is CSR-like: data holds every row's bucket ids back to back and
// rowPtr[i] is the start of row i's entries, so row i occupies
// data[rowPtr[i]:rowPtr[i+1]]. During construction rowPtr[i+1] temporarily
// holds row i's entry count and thread tid stages its pushes in shards[tid-1]
// (thread 0 writes data directly); FinishLoad turns counts into offsets and
// concatenates the shards in thread order.
type Sparse[T Value] struct {
	cfg            config
	numRows        int
	numBin         int
	elementsPerRow float64

	rowPtr []int
	data   []T
	shards [][]T
}

var _ MultiValBin = (*Sparse[uint8])(nil)

// New creates an empty store for numRows rows and numBin buckets.
// elementsPerRow is the expected average number of non-zero entries per row;
// it only sizes the initial allocation and is refined from observed data by
// FinishLoad.
func New[T Value](numRows, numBin int, elementsPerRow float64, opts ...Option) (*Sparse[T], error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	return newSparse[T](numRows, numBin, elementsPerRow, cfg), nil
}

func newSparse[T Value](numRows, numBin int, elementsPerRow float64, cfg config) *Sparse[T] {
	s := &Sparse[T]{
		cfg:            cfg,
		numRows:        numRows,
		numBin:         numBin,
		elementsPerRow: elementsPerRow,
		rowPtr:         make([]int, numRows+1),
	}

	estimate := int(float64(numRows) * elementsPerRow * cfg.capacityFactor)
	perThread := estimate / cfg.numThreads
	if perThread < 0 {
		perThread = 0
	}
	if cfg.numThreads > 1 {
		s.shards = make([][]T, cfg.numThreads-1)
		for i := range s.shards {
			s.shards[i] = make([]T, 0, perThread)
		}
	}
	s.data = make([]T, 0, perThread)

	return s
}

// NumRows returns the logical row count.
func (s *Sparse[T]) NumRows() int { return s.numRows }

// NumBin returns the bucket-id space size.
func (s *Sparse[T]) NumBin() int { return s.numBin }

// IsSparse reports whether the store uses the sparse multi-value layout.
func (s *Sparse[T]) IsSparse() bool { return true }

// PushOneRow appends row's bucket ids into the shard owned by thread tid,
// narrowing each value to the storage width, and records the entry count in
// the offset array. Each row must be pushed exactly once across the whole
// construction, with rows assigned to threads in contiguous, thread-ordered
// blocks.
func (s *Sparse[T]) PushOneRow(tid, row int, values []uint32) {
	s.rowPtr[row+1] = len(values)
	buf := &s.data
	if tid > 0 {
		buf = &s.shards[tid-1]
	}
	for _, v := range values {
		*buf = append(*buf, T(v))
	}
}

// FinishLoad merges the staging shards into the flat array and seals the
// store: offsets become cumulative, shard storage is released, slices are
// clipped to exact size, and the density estimate is refined from the
// observed entry count. After it returns the store is read-only.
func (s *Sparse[T]) FinishLoad() {
	s.moveData(nil)
	s.rowPtr = slices.Clip(s.rowPtr)
	s.data = slices.Clip(s.data)
	s.shards = nil
	if s.numRows > 0 {
		s.elementsPerRow = float64(s.rowPtr[s.numRows]) / float64(s.numRows)
	}
}

// ReSize updates the logical row count only.
func (s *Sparse[T]) ReSize(numRows int) {
	if s.numRows != numRows {
		s.numRows = numRows
	}
}

// Clone returns an independent deep copy of the finalized content. Staging
// shards are not carried over.
func (s *Sparse[T]) Clone() MultiValBin {
	return &Sparse[T]{
		cfg:            s.cfg,
		numRows:        s.numRows,
		numBin:         s.numBin,
		elementsPerRow: s.elementsPerRow,
		rowPtr:         slices.Clone(s.rowPtr),
		data:           slices.Clone(s.data),
	}
}

// Checksum returns an xxHash64 fingerprint of the row count, bucket count,
// offsets and flat data of a finalized store.
func (s *Sparse[T]) Checksum() uint64 {
	d := hash.NewDigest()
	d.WriteUint64(uint64(s.numRows))
	d.WriteUint64(uint64(s.numBin))
	for _, p := range s.rowPtr {
		d.WriteUint64(uint64(p))
	}
	for _, v := range s.data {
		d.WriteUint64(uint64(v))
	}

	return d.Sum64()
}

// moveData is the shared merge primitive behind FinishLoad and
// CopySubFeature. It prefix-sums the per-row counts in rowPtr into
// cumulative offsets, computes each shard's destination range in the flat
// array (the primary buffer occupies the prefix, shards follow in thread-id
// order) and copies shard contents in parallel; destination ranges are
// disjoint so the copies need no synchronization.
//
// extSizes, when non-nil, supplies the valid length of the primary buffer
// (extSizes[0]) and of every shard (extSizes[1:]) instead of their slice
// lengths; CopySubFeature uses this after block writers have filled the
// buffers.
func (s *Sparse[T]) moveData(extSizes []int) {
	for i := 0; i < s.numRows; i++ {
		s.rowPtr[i+1] += s.rowPtr[i]
	}
	total := s.rowPtr[s.numRows]

	if len(s.shards) == 0 {
		s.resizeData(total)
		return
	}

	bufLen := func(i int) int {
		if extSizes != nil {
			return extSizes[i]
		}
		if i == 0 {
			return len(s.data)
		}

		return len(s.shards[i-1])
	}

	offsets := make([]int, len(s.shards))
	off := bufLen(0)
	for i := range s.shards {
		offsets[i] = off
		off += bufLen(i + 1)
	}

	s.resizeData(total)
	parallel.For(s.cfg.numThreads, len(s.shards), len(s.shards), func(_, start, end int) {
		for i := start; i < end; i++ {
			n := bufLen(i + 1)
			copy(s.data[offsets[i]:offsets[i]+n], s.shards[i][:n])
		}
	})
}

// resizeData sets len(data) to n, preserving the current prefix when a
// larger backing array is needed.
func (s *Sparse[T]) resizeData(n int) {
	if cap(s.data) >= n {
		s.data = s.data[:n]
		return
	}
	grown := make([]T, n)
	copy(grown, s.data)
	s.data = grown
}
