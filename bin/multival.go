package bin

// Value constrains the storage width of bucket ids. The caller picks the
// narrowest width that represents numBin-1; wider pushed values are
// truncated on store.
type Value interface {
	~uint8 | ~uint16 | ~uint32
}

// MultiValBin is the width-polymorphic surface of a sparse multi-value bin
// store. All implementations share the same lifecycle: parallel PushOneRow
// calls, one FinishLoad barrier, then read-only histogram construction and
// derivation into new stores.
//
// Operations that combine two stores (CopySubset, CopySubFeature) require
// both operands to be the same concrete width variant and panic otherwise.
type MultiValBin interface {
	// NumRows returns the logical row count.
	NumRows() int

	// NumBin returns the bucket-id space size; every stored value lies in
	// [0, NumBin).
	NumBin() int

	// IsSparse reports whether the store uses the sparse multi-value layout.
	IsSparse() bool

	// PushOneRow appends the bucket ids of one row into the shard owned by
	// thread tid. Each row must be pushed exactly once across the whole
	// construction; tid must be in [0, numThreads). Rows must be assigned
	// to threads in contiguous index blocks ordered by tid, and pushed in
	// increasing row order within each thread, so that shard concatenation
	// reproduces global row order.
	PushOneRow(tid, row int, values []uint32)

	// FinishLoad merges all shards into the flat array and seals the store.
	// No reads are valid before it returns.
	FinishLoad()

	// ReSize adjusts the logical row count only; stored content is not
	// touched. Valid only when followed by a full rebuild if content must
	// change.
	ReSize(numRows int)

	// ConstructHistogram accumulates gradients and hessians of the rows
	// named by indices[start:end] into out (length 2*NumBin).
	ConstructHistogram(indices []int, start, end int, gradients, hessians []float32, out []float64)

	// ConstructHistogramRange is ConstructHistogram over the contiguous row
	// range [start, end) without an index list.
	ConstructHistogramRange(start, end int, gradients, hessians []float32, out []float64)

	// ConstructHistogramNoHessian treats every hessian as 1.0.
	ConstructHistogramNoHessian(indices []int, start, end int, gradients []float32, out []float64)

	// ConstructHistogramRangeNoHessian treats every hessian as 1.0 over the
	// contiguous row range [start, end).
	ConstructHistogramRangeNoHessian(start, end int, gradients []float32, out []float64)

	// CopySubset rebuilds the receiver to contain exactly the rows of full
	// named by usedIndices, in that order.
	CopySubset(full MultiValBin, usedIndices []int)

	// CreateLike allocates an empty store with the same row count, the
	// given bucket count, and a density estimate scaled by fraction.
	CreateLike(numBin, numFeatures int, fraction float64) MultiValBin

	// ReSizeForSubFeature re-tags the receiver with a new bucket count
	// before a CopySubFeature pass.
	ReSizeForSubFeature(numBin, numFeatures int)

	// CopySubFeature rebuilds the receiver from full, keeping only values
	// inside the sub-ranges [lower[k], upper[k]) and renumbering each kept
	// value v to v-delta[k]. Sub-ranges must be ordered and non-overlapping
	// and within-row values non-decreasing.
	CopySubFeature(full MultiValBin, lower, upper, delta []uint32)

	// Clone returns an independent deep copy of the finalized content.
	Clone() MultiValBin

	// Checksum returns an xxHash64 fingerprint of the offsets and flat
	// data. Two finalized stores with identical content hash identically.
	Checksum() uint64
}
