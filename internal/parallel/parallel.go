// Package parallel provides block-partitioned parallel loops for CPU-bound
// work over contiguous index ranges. Blocks receive disjoint ranges, so
// callers that write only block-owned destinations need no locking.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultNumThreads returns the worker count used when a caller does not
// configure one explicitly.
func DefaultNumThreads() int {
	return runtime.GOMAXPROCS(0)
}

// NumBlocks returns how many blocks a loop over n items should use so that
// no block shrinks below minBlockSize, capped at numThreads. Always at
// least 1.
func NumBlocks(numThreads, n, minBlockSize int) int {
	nb := numThreads
	if minBlockSize > 0 && n/minBlockSize < nb {
		nb = n / minBlockSize
	}
	if nb < 1 {
		nb = 1
	}

	return nb
}

// BlockRange returns the half-open range [start, end) owned by the given
// block when n items are split into numBlocks contiguous blocks.
func BlockRange(block, numBlocks, n int) (start, end int) {
	blockSize := (n + numBlocks - 1) / numBlocks
	start = block * blockSize
	end = start + blockSize
	if end > n {
		end = n
	}
	if start > n {
		start = n
	}

	return start, end
}

// For runs fn for every block in [0, numBlocks) with that block's range of
// [0, n), at most numThreads blocks concurrently. It returns once every
// block has completed. When numBlocks is 1 the loop body runs on the
// calling goroutine.
func For(numThreads, numBlocks, n int, fn func(block, start, end int)) {
	if numBlocks <= 1 {
		fn(0, 0, n)
		return
	}

	var g errgroup.Group
	g.SetLimit(numThreads)
	for block := 0; block < numBlocks; block++ {
		block := block
		start, end := BlockRange(block, numBlocks, n)
		g.Go(func() error {
			fn(block, start, end)
			return nil
		})
	}
	// Workers cannot fail; Wait is only the completion barrier.
	_ = g.Wait()
}
