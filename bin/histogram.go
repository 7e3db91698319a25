package bin

import (
	"runtime"
	"unsafe"
)

// Lookahead distance for the warming path, expressed in bytes of stored
// elements. Matches half a cache line of bucket ids.
const prefetchBytes = 32

// ConstructHistogram accumulates the rows named by indices[start:end] into
// out: for every bucket id b stored for row idx, out[2*b] gains
// gradients[idx] and out[2*b+1] gains hessians[idx]. out must have length
// 2*NumBin and is not cleared first; gradients and hessians are indexed by
// row, not by position in indices.
func (s *Sparse[T]) ConstructHistogram(indices []int, start, end int, gradients, hessians []float32, out []float64) {
	s.constructHistogram(indices, start, end, gradients, hessians, out)
}

// ConstructHistogramRange accumulates the contiguous row range [start, end)
// into out.
func (s *Sparse[T]) ConstructHistogramRange(start, end int, gradients, hessians []float32, out []float64) {
	s.constructHistogram(nil, start, end, gradients, hessians, out)
}

// ConstructHistogramNoHessian accumulates the rows named by
// indices[start:end] into out with an implicit hessian of 1.0 per row.
func (s *Sparse[T]) ConstructHistogramNoHessian(indices []int, start, end int, gradients []float32, out []float64) {
	s.constructHistogram(indices, start, end, gradients, nil, out)
}

// ConstructHistogramRangeNoHessian accumulates the contiguous row range
// [start, end) into out with an implicit hessian of 1.0 per row.
func (s *Sparse[T]) ConstructHistogramRangeNoHessian(start, end int, gradients []float32, out []float64) {
	s.constructHistogram(nil, start, end, gradients, nil, out)
}

// constructHistogram is the shared kernel. nil indices means direct range
// iteration, nil hessians means implicit 1.0. The indexed path warms the
// locations of the element a fixed lookahead ahead of the current one: Go
// has no portable prefetch intrinsic, so plain loads kept live past the
// loop stand in for it. The warming path never changes results.
func (s *Sparse[T]) constructHistogram(indices []int, start, end int, gradients, hessians []float32, out []float64) {
	i := start

	if s.cfg.prefetch && indices != nil {
		var zero T
		pfOffset := prefetchBytes / int(unsafe.Sizeof(zero))
		pfEnd := end - pfOffset

		var warmVal T
		var warmScore float32
		for ; i < pfEnd; i++ {
			idx := indices[i]
			pfIdx := indices[i+pfOffset]
			warmScore += gradients[pfIdx]
			if hessians != nil {
				warmScore += hessians[pfIdx]
			}
			if off := s.rowPtr[pfIdx]; off < len(s.data) {
				warmVal |= s.data[off]
			}
			s.accumulateRow(idx, gradients, hessians, out)
		}
		// Keep the warming loads live so they are not optimized away.
		runtime.KeepAlive(warmVal)
		runtime.KeepAlive(warmScore)
	}

	for ; i < end; i++ {
		idx := i
		if indices != nil {
			idx = indices[i]
		}
		s.accumulateRow(idx, gradients, hessians, out)
	}
}

func (s *Sparse[T]) accumulateRow(idx int, gradients, hessians []float32, out []float64) {
	g := float64(gradients[idx])
	h := 1.0
	if hessians != nil {
		h = float64(hessians[idx])
	}
	for j := s.rowPtr[idx]; j < s.rowPtr[idx+1]; j++ {
		slot := int(s.data[j]) << 1
		out[slot] += g
		out[slot+1] += h
	}
}
