// Package lightgbm provides the sparse multi-value bin storage and histogram
// construction engine of a gradient-boosted decision tree trainer.
//
// Training data is discretized per feature into small integer buckets. This
// package stores, for each training row, the sparse list of non-zero bucket
// ids of a feature bundle in a compressed row format and computes per-bucket
// gradient/hessian aggregates that the tree-split search consumes.
//
// # Basic Usage
//
// Building a store and constructing a histogram:
//
//	import "github.com/kuoorczp/LightGBM"
//
//	// 3 rows, 5 buckets, ~2 non-zero entries per row expected.
//	store, _ := lightgbm.NewMultiValSparseBin(3, 5, 2.0)
//	store.PushOneRow(0, 0, []uint32{1, 3})
//	store.PushOneRow(0, 1, nil)
//	store.PushOneRow(0, 2, []uint32{2, 4, 1})
//	store.FinishLoad()
//
//	hist := make([]float64, 2*store.NumBin())
//	store.ConstructHistogramRange(0, store.NumRows(),
//	    []float32{1, 2, 3}, []float32{1, 1, 1}, hist)
//
// The store is immutable after FinishLoad and safe for concurrent histogram
// construction, one histogram buffer per goroutine. For fine-grained control
// over storage width and options use the bin package directly.
package lightgbm

import (
	"github.com/kuoorczp/LightGBM/bin"
	"github.com/kuoorczp/LightGBM/internal/parallel"
	"github.com/kuoorczp/LightGBM/internal/pool"
)

// Rows per block below which ConstructHistogramParallel falls back to a
// single serial pass.
const minHistogramBlock = 512

// NewMultiValSparseBin creates a sparse multi-value bin store with the
// narrowest storage width that represents numBin-1: one byte up to 256
// buckets, two bytes up to 65536, four bytes beyond.
//
// Parameters:
//   - numRows: number of training rows
//   - numBin: bucket-id space size; stored values lie in [0, numBin)
//   - elementsPerRow: expected average non-zero entries per row, used only
//     for capacity pre-allocation
//   - opts: optional configuration (bin.WithNumThreads, bin.WithPrefetch,
//     bin.WithCapacityFactor)
func NewMultiValSparseBin(numRows, numBin int, elementsPerRow float64, opts ...bin.Option) (bin.MultiValBin, error) {
	switch {
	case numBin <= 1<<8:
		return bin.New[uint8](numRows, numBin, elementsPerRow, opts...)
	case numBin <= 1<<16:
		return bin.New[uint16](numRows, numBin, elementsPerRow, opts...)
	default:
		return bin.New[uint32](numRows, numBin, elementsPerRow, opts...)
	}
}

// MergeHistograms adds each part into dst slot by slot. The histogram kernel
// defines no reduction step of its own; callers running one buffer per
// thread combine them with this helper.
func MergeHistograms(dst []float64, parts ...[]float64) {
	for _, part := range parts {
		for i, v := range part {
			dst[i] += v
		}
	}
}

// ConstructHistogramParallel partitions the rows named by indices (or all
// rows of b when indices is nil) into contiguous blocks, accumulates each
// block into its own pooled histogram buffer on a separate goroutine, and
// merges the results into out. nil hessians means an implicit 1.0 per row.
// out must have length 2*b.NumBin and is added to, not cleared.
func ConstructHistogramParallel(b bin.MultiValBin, indices []int, gradients, hessians []float32, numThreads int, out []float64) {
	n := len(indices)
	if indices == nil {
		n = b.NumRows()
	}
	if numThreads <= 0 {
		numThreads = parallel.DefaultNumThreads()
	}

	numBlocks := parallel.NumBlocks(numThreads, n, minHistogramBlock)
	if numBlocks == 1 {
		constructHistogramInto(b, indices, 0, n, gradients, hessians, out)
		return
	}

	bufs := make([][]float64, numBlocks)
	for i := range bufs {
		buf, release := pool.GetHistogram(b.NumBin())
		defer release()
		bufs[i] = buf
	}

	parallel.For(numThreads, numBlocks, n, func(block, start, end int) {
		constructHistogramInto(b, indices, start, end, gradients, hessians, bufs[block])
	})

	MergeHistograms(out, bufs...)
}

func constructHistogramInto(b bin.MultiValBin, indices []int, start, end int, gradients, hessians []float32, out []float64) {
	switch {
	case indices != nil && hessians != nil:
		b.ConstructHistogram(indices, start, end, gradients, hessians, out)
	case indices != nil:
		b.ConstructHistogramNoHessian(indices, start, end, gradients, out)
	case hessians != nil:
		b.ConstructHistogramRange(start, end, gradients, hessians, out)
	default:
		b.ConstructHistogramRangeNoHessian(start, end, gradients, out)
	}
}
