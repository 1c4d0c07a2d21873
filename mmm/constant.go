package mmm

import (
	"github.com/pkg/errors"
)

// MinusInverseModR computes -m0^-1 mod 2^wordBits for odd m0, the constant the kernel needs as minusMInvModR.
// Only the least significant limb m0 of the modulus matters.
//
// The kernel never calls this; callers compute it once per modulus and cache it.
// It panics with an error wrapping [ErrInvalidParams] if m0 is even or wordBits is out of range.
func MinusInverseModR(m0 uint64, wordBits uint) uint64 {
	if m0&1 == 0 {
		panic(errors.Wrapf(ErrInvalidParams, "modulus must be odd, least significant limb is %#x", m0))
	}
	if wordBits < 1 || wordBits > MaxWordBits {
		panic(errors.Wrapf(ErrInvalidParams, "word size must be in [1, %d], got %d", MaxWordBits, wordBits))
	}
	// Newton iteration: every step doubles the number of correct low bits of y.
	// Odd numbers are their own inverse mod 8, so we start with 3 correct bits; 5 steps give 96 > 64 bits.
	y := m0
	for i := 0; i < 5; i++ {
		y *= 2 - m0*y
	}
	mask := uint64(1)<<wordBits - 1
	return -y & mask
}
