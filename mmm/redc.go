package mmm

import (
	"github.com/pkg/errors"
)

// MulSingleTile is [Kernel.Mul] restricted to operands that fit into one vector, i.e. N <= Way.
// It panics with an error wrapping [ErrCapacity] otherwise.
//
// The accumulator Z has one lane per limb. For each digit y_i of y, starting at the least significant one:
//
//	Z += x * y_i                           broadcast multiply-accumulate
//	carryMsb = propagate(Z)                carry out of the top lane is kept as a scalar
//	q = Z[0] * minusMInvModR mod r         now Z + q*m == 0 mod r
//	Z += m * q                             broadcast multiply-accumulate
//	Z = (Z + carryMsb*r^N) / r             propagation fused with a one-lane slide
//
// followed by a final propagation. That is O(N) lane operations instead of O(N^2) limb operations.
func (k *Kernel) MulSingleTile(z, x, y, m []uint64, minusMInvModR uint64) (carry uint64) {
	k.checkLengths(z, x, y, m)
	n := k.params.N
	if n > k.params.Way {
		panic(errors.Wrapf(ErrCapacity, "single-tile path needs at most %d limbs, got %d", k.params.Way, n))
	}
	IncrementCallCounter("MulSingleTile")

	ops := k.ops
	mask := k.mask

	// Everything is loaded before z is written, so z may alias x or y.
	buf := make([]uint64, 4*n)
	xLanes := buf[0:n:n]
	mLanes := buf[n : 2*n : 2*n]
	acc := buf[2*n : 3*n : 3*n]
	scratch := buf[3*n : 4*n : 4*n]
	loadLanes(xLanes, x)
	loadLanes(mLanes, m)

	// Bounds (r = 2^WordBits): at the start of each iteration every lane is <= 2r-2, so after a multiply-accumulate
	// a lane is <= 2r-2 + (r-1)^2 = r^2-1 < 2^64, and after propagate it is back to <= 2r-2 with carryMsb <= r-1.
	for i := 0; i < n; i++ {
		yi := y[n-1-i]
		ops.MulAccBroadcast(acc, xLanes, yi)
		carryMsb := k.propagate(acc, scratch, 0)

		// lane 0 got no incoming overflow, so z0 < r and z0 * minusMInvModR < 2^64
		z0 := ops.Lane(acc, 0)
		q := (z0 * minusMInvModR) & mask

		ops.MulAccBroadcast(acc, mLanes, q)
		k.propagateShift(acc, scratch, carryMsb)
	}

	carry = k.propagate(acc, scratch, 0)
	carry += settle(acc, k.params.WordBits, mask)
	storeLanes(z, acc)
	return
}
