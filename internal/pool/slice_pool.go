// Package pool provides typed sync.Pool-backed slices for hot-path scratch
// buffers: per-thread histogram buffers and merge bookkeeping arrays.
package pool

import "sync"

var (
	float64SlicePool = sync.Pool{
		New: func() any { return &[]float64{} },
	}
	intSlicePool = sync.Pool{
		New: func() any { return &[]int{} },
	}
)

// GetHistogram retrieves a zeroed histogram buffer for numBin buckets
// (length 2*numBin: gradient and hessian slot per bucket).
//
// The caller must call the returned cleanup function, typically with defer,
// to return the buffer to the pool.
func GetHistogram(numBin int) ([]float64, func()) {
	return GetFloat64Slice(2 * numBin)
}

// GetFloat64Slice retrieves a zeroed float64 slice of the given length from
// the pool. If the pooled slice has insufficient capacity a new one is
// allocated. The caller must call the returned cleanup function to return
// the slice to the pool.
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)
	slice := *ptr

	if cap(slice) < size {
		slice = make([]float64, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
		for i := range slice {
			slice[i] = 0
		}
	}

	return slice, func() { float64SlicePool.Put(ptr) }
}

// GetIntSlice retrieves a zeroed int slice of the given length from the
// pool. The caller must call the returned cleanup function to return the
// slice to the pool.
func GetIntSlice(size int) ([]int, func()) {
	ptr, _ := intSlicePool.Get().(*[]int)
	slice := *ptr

	if cap(slice) < size {
		slice = make([]int, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
		for i := range slice {
			slice[i] = 0
		}
	}

	return slice, func() { intSlicePool.Put(ptr) }
}
