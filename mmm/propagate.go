package mmm

// This file contains the carry handling shared by the single-tile and the tiled engine.
//
// Between carry propagations, accumulator lanes hold more than WordBits bits (a lane may receive a full product of two limbs).
// Propagation splits each lane into its low WordBits bits and the overflow above, and adds the overflow to the next more
// significant lane. One pass is not enough for canonical limbs (a lane may end up at up to 2r-2),
// but it is enough to make room for the next multiply-accumulate, which is all the loop needs.

// propagate performs one carry propagation pass on acc, using overflow (same length) as scratch space.
//
// in is added to lane 0 (it is the carry coming from a less significant tile, or 0);
// the overflow of the most significant lane cannot be stored in any lane and is returned instead.
// acc's value is preserved: acc_before + in == acc_after + out * r^len(acc).
func (k *Kernel) propagate(acc, overflow []uint64, in uint64) (out uint64) {
	IncrementCallCounter("Propagate")
	ops := k.ops
	ops.ShiftRight(overflow, acc, k.params.WordBits)
	out = ops.SlideUp(overflow, overflow, in)
	ops.And(acc, k.mask)
	ops.Add(acc, overflow)
	return
}

// propagateShift performs a carry propagation pass fused with the Montgomery shift, i.e. division by r.
//
// Lane j receives the low bits of lane j+1 and the overflow of lane j; the top lane receives in (the carry
// extracted by the previous propagation) plus its own overflow. The low bits of lane 0 are dropped.
// Correctness relies on those bits being 0, which is what the choice of the quotient digit guarantees.
func (k *Kernel) propagateShift(acc, scratch []uint64, in uint64) {
	IncrementCallCounter("PropagateShift")
	ops := k.ops
	ops.SlideDown(scratch, acc, in)
	ops.And(scratch, k.mask)
	ops.ShiftRight(acc, acc, k.params.WordBits)
	ops.Add(acc, scratch)
}

// settle turns an accumulator whose lanes are already small (after a propagation pass) into canonical limbs < r
// by an ordinary ripple carry. It returns the carry out of the top lane.
//
// This runs exactly once per multiplication and is data-independent in its control flow.
func settle(acc []uint64, wordBits uint, mask uint64) (carry uint64) {
	for i := range acc {
		t := acc[i] + carry
		acc[i] = t & mask
		carry = t >> wordBits
	}
	return
}

// loadLanes stores the most-significant-first limb vector src into lanes (lane 0 = least significant limb).
// If lanes is longer than src, the remaining lanes are zeroed.
func loadLanes(lanes, src []uint64) {
	n := len(src)
	for i := 0; i < n; i++ {
		lanes[i] = src[n-1-i]
	}
	for i := n; i < len(lanes); i++ {
		lanes[i] = 0
	}
}

// storeLanes writes the first len(dst) lanes into dst, most significant limb first.
func storeLanes(dst, lanes []uint64) {
	n := len(dst)
	for i := 0; i < n; i++ {
		dst[n-1-i] = lanes[i]
	}
}
