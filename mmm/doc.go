// Package mmm implements a lane-parallel Montgomery multiplication kernel.
//
// Given limb vectors X, Y and an odd modulus M (n limbs of wordBits bits each, most significant limb first)
// and the precomputed constant -M^-1 mod r with r = 2^wordBits, [Kernel.Mul] computes Z with
//
//	Z == X*Y*R^-1 (mod M),   R = r^n,   0 <= Z < 2M.
//
// Instead of the classical O(n^2) scalar double loop, every step of the reduction loop is expressed as a
// handful of operations on whole vectors of lanes (one limb per lane): a broadcast multiply-accumulate,
// a lane-wise shift and mask, and a slide by one lane that moves carries (or, for the Montgomery shift,
// the whole accumulator) between neighbouring lanes. These lane operations are hidden behind the [LaneOps] interface,
// so the reduction loop itself does not care whether they are realized by a plain per-lane loop or anything else.
//
// If n exceeds the number of lanes of one vector (the "way" of the [Params]), the operands are split into
// ceil(n/way) tiles that are processed in order of increasing significance, with a single scalar carry passed from one
// tile to the next.
//
// The result is NOT fully reduced: Mul returns n limbs plus a carry word (0 or 1) of weight R, and the
// represented value carry*R + Z is only guaranteed to be < 2M. Callers that need a canonical result use [ReduceOnce].
//
// Deriving the Montgomery constant ([MinusInverseModR]) and finding a sensible lane width ([DetectLaneWidth]) are
// provided for convenience; the kernel never calls them itself. Conversion into and out of Montgomery form
// lives in the separate montform package.
package mmm
