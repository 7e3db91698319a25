package bin

import (
	"github.com/kuoorczp/LightGBM/internal/parallel"
	"github.com/kuoorczp/LightGBM/internal/pool"
)

// Rows per block below which CopySubFeature stops splitting work further.
const minSubFeatureBlock = 1024

// CopySubset rebuilds the receiver to contain exactly the rows of full
// named by usedIndices, in that order, preserving intra-row entry order.
// Offsets are recomputed from scratch; usedIndices is trusted to be
// in-range and is not deduplicated. full must be the same concrete width
// variant as the receiver (the type assertion panics otherwise) and the
// receiver's row count must equal len(usedIndices).
func (s *Sparse[T]) CopySubset(full MultiValBin, usedIndices []int) {
	other := full.(*Sparse[T])

	s.rowPtr = make([]int, s.numRows+1)
	estimate := int(float64(s.numRows) * s.elementsPerRow * s.cfg.capacityFactor)
	if cap(s.data) < estimate {
		s.data = make([]T, 0, estimate)
	} else {
		s.data = s.data[:0]
	}

	for i, src := range usedIndices {
		jStart, jEnd := other.rowPtr[src], other.rowPtr[src+1]
		s.data = append(s.data, other.data[jStart:jEnd]...)
		s.rowPtr[i+1] = s.rowPtr[i] + (jEnd - jStart)
	}
}

// CreateLike allocates an empty store with the receiver's row count and
// configuration, the given bucket count, and the receiver's density
// estimate scaled by fraction. It is the destination factory for
// feature-bundle decomposition.
func (s *Sparse[T]) CreateLike(numBin, numFeatures int, fraction float64) MultiValBin {
	dst := newSparse[T](s.numRows, numBin, s.elementsPerRow*fraction, s.cfg)
	dst.ReSizeForSubFeature(numBin, numFeatures)

	return dst
}

// ReSizeForSubFeature re-tags the receiver with a new bucket count before a
// CopySubFeature pass. Buffer capacity from construction is kept; the block
// writers grow it on demand.
func (s *Sparse[T]) ReSizeForSubFeature(numBin, _ int) {
	s.numBin = numBin
}

// CopySubFeature rebuilds the receiver from full, keeping only values that
// fall inside one of the K ordered, non-overlapping sub-ranges
// [lower[k], upper[k]) and renumbering each kept value v to v-delta[k].
//
// Work is split into contiguous row blocks: block 0 writes the primary
// buffer, block b writes shard b-1, and the construction merge consolidates
// them with explicitly recorded per-block sizes. Within a row the sub-range
// pointer only advances, which assumes within-row values are non-decreasing
// and sub-ranges are supplied in increasing bucket order; the pointer is
// clamped at the last sub-range, so values beyond every upper bound are
// dropped rather than read out of range.
//
// full must be the same concrete width variant as the receiver and share
// its row count.
func (s *Sparse[T]) CopySubFeature(full MultiValBin, lower, upper, delta []uint32) {
	other := full.(*Sparse[T])

	numBlocks := parallel.NumBlocks(s.cfg.numThreads, s.numRows, minSubFeatureBlock)
	sizes, release := pool.GetIntSlice(len(s.shards) + 1)
	defer release()

	parallel.For(s.cfg.numThreads, numBlocks, s.numRows, func(block, start, end int) {
		buf := &s.data
		if block > 0 {
			buf = &s.shards[block-1]
		}
		*buf = (*buf)[:0]

		for i := start; i < end; i++ {
			jStart, jEnd := other.rowPtr[i], other.rowPtr[i+1]
			k := 0
			count := 0
			for j := jStart; j < jEnd; j++ {
				val := uint32(other.data[j])
				for k < len(upper) && val >= upper[k] {
					k++
				}
				if k < len(upper) && val >= lower[k] {
					count++
					*buf = append(*buf, T(val-delta[k]))
				}
			}
			s.rowPtr[i+1] = count
		}
		sizes[block] = len(*buf)
	})

	s.moveData(sizes)
}
