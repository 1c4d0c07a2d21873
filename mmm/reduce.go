package mmm

import (
	"github.com/pkg/errors"
)

// ReduceOnce performs the optional final conditional subtraction after [Kernel.Mul]:
// given z and carry with carry*R + z < 2m, it sets z to (carry*R + z) mod m, i.e. subtracts m once if needed.
//
// z and m are most-significant-first limb vectors in base 2^wordBits of equal length; carry must be 0 or 1.
// The kernel deliberately does not do this itself, since Montgomery-form arithmetic often tolerates results in [0, 2m).
//
// This runs in constant time: both the subtraction and the selection happen unconditionally.
func ReduceOnce(z, m []uint64, carry uint64, wordBits uint) {
	n := len(z)
	if len(m) != n {
		panic(errors.Wrapf(ErrLengthMismatch, "ReduceOnce: len(z) = %d, len(m) = %d", n, len(m)))
	}
	mask := uint64(1)<<wordBits - 1

	d := make([]uint64, n)
	var borrow uint64
	for i := n - 1; i >= 0; i-- {
		// limbs are at most 32 bits, so a negative difference shows up in the top bit
		t := z[i] - m[i] - borrow
		d[i] = t & mask
		borrow = t >> 63
	}

	// carry*R + z >= m iff there was a carry or z - m did not borrow.
	// (If carry == 1, z - m borrows and the borrow cancels the carry, so d is the right result in both cases.)
	needSubtraction := (carry | (borrow ^ 1)) & 1
	selectD := -needSubtraction
	for i := range z {
		z[i] ^= selectD & (z[i] ^ d[i])
	}
}
