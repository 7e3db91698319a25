// Package bin implements the sparse multi-value bin store used during
// gradient-boosted tree training, together with its histogram construction
// kernel.
//
// A store holds, for every training row, the non-zero discretized bucket ids
// of a feature bundle in a CSR-like layout: one flat data array of bucket
// ids plus an offset array of length numRows+1. Construction is lock-free:
// each producer thread appends into its own shard, and FinishLoad merges the
// shards into the flat array with a prefix-sum over per-row counts followed
// by a block-parallel copy into disjoint destination ranges.
//
// Once finalized a store is immutable. The histogram kernel reads it
// concurrently from any number of goroutines, each accumulating summed
// gradients and hessians per bucket into its own caller-owned buffer of
// length 2*NumBin (slot 2*b holds the gradient sum for bucket b, slot 2*b+1
// the hessian sum). Derivation operations always build a new store:
// CopySubset realizes row-level bagging, CopySubFeature decomposes a bundle
// into renumbered bucket sub-ranges.
//
// Contracts are preconditions, not errors: out-of-range indices, duplicate
// row pushes, bucket values wider than the storage type, or unsorted
// within-row bucket ids during CopySubFeature leave the store in an
// unspecified state. Constructors validate options only.
package bin
