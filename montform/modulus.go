// Package montform converts between ordinary residues and their Montgomery form and builds
// modular multiplication and exponentiation on top of the lane-parallel kernel of package mmm.
//
// All limb vectors handled by this package are most significant limb first, have exactly [Modulus.N] limbs
// and are fully reduced (< M). The kernel itself only guarantees results < 2M; every multiplication here
// is followed by [mmm.ReduceOnce], so results can be fed back in indefinitely.
package montform

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/SharzyL/rvv-mmm/internal/utils"
	"github.com/SharzyL/rvv-mmm/mmm"
)

// Modulus holds an odd modulus M together with everything needed for Montgomery arithmetic modulo M:
// the kernel, -M^-1 mod r and the Montgomery forms of 1 and R (i.e. R mod M and R^2 mod M), where R = r^N.
//
// A Modulus is immutable after creation and safe for concurrent use.
type Modulus struct {
	m        *big.Int
	limbs    []uint64 // M, most significant first
	wordBits uint
	mInv     uint64 // -M^-1 mod r
	rModM    []uint64
	rrModM   []uint64
	kernel   *mmm.Kernel
}

// NewModulus prepares Montgomery arithmetic modulo m, using limbs of wordBits bits, vectors of way lanes and the given
// lane backend (nil means [mmm.GenericLanes]). The number of limbs N is the minimal one that can hold m.
//
// The returned error wraps [ErrModulusTooSmall], [ErrEvenModulus] or (for unusable word sizes or lane counts)
// [mmm.ErrInvalidParams].
func NewModulus(m *big.Int, wordBits uint, way int, ops mmm.LaneOps) (*Modulus, error) {
	if m == nil || m.Cmp(big.NewInt(3)) < 0 {
		return nil, errors.Wrapf(ErrModulusTooSmall, "got %v", m)
	}
	if m.Bit(0) == 0 {
		return nil, errors.Wrapf(ErrEvenModulus, "got %v", m)
	}
	if wordBits < 1 || wordBits > mmm.MaxWordBits {
		// checked here already, because utils.LimbCount would misbehave
		return nil, errors.Wrapf(mmm.ErrInvalidParams, "word size must be in [1, %d], got %d", mmm.MaxWordBits, wordBits)
	}
	n := utils.LimbCount(m, wordBits)
	params, err := mmm.NewParams(wordBits, n, way)
	if err != nil {
		return nil, errors.WithMessagef(err, "cannot use modulus of %d bits", m.BitLen())
	}
	kernel, err := mmm.NewKernel(params, ops)
	if err != nil {
		return nil, err
	}

	mod := &Modulus{
		m:        new(big.Int).Set(m),
		limbs:    utils.BigIntToLimbs(m, n, wordBits),
		wordBits: wordBits,
		kernel:   kernel,
	}
	mod.mInv = mmm.MinusInverseModR(mod.limbs[n-1], wordBits)

	R := params.Radix()
	mod.rModM = utils.BigIntToLimbs(new(big.Int).Mod(R, m), n, wordBits)
	RR := new(big.Int).Mul(R, R)
	mod.rrModM = utils.BigIntToLimbs(RR.Mod(RR, m), n, wordBits)
	return mod, nil
}

// N returns the number of limbs of all vectors modulo mod.
func (mod *Modulus) N() int {
	return len(mod.limbs)
}

// Params returns the kernel parameters in use.
func (mod *Modulus) Params() mmm.Params {
	return mod.kernel.Params()
}

// Modulus returns (a copy of) M.
func (mod *Modulus) Modulus() *big.Int {
	return new(big.Int).Set(mod.m)
}

// MinusInverse returns -M^-1 mod r, the constant passed to the kernel.
func (mod *Modulus) MinusInverse() uint64 {
	return mod.mInv
}

// Limbs converts 0 <= x < M to a limb vector. The returned error wraps [ErrOutOfRange].
func (mod *Modulus) Limbs(x *big.Int) ([]uint64, error) {
	if x.Sign() < 0 || x.Cmp(mod.m) >= 0 {
		return nil, errors.Wrapf(ErrOutOfRange, "%v is not in [0, modulus)", x)
	}
	return utils.BigIntToLimbs(x, mod.N(), mod.wordBits), nil
}

// BigInt converts a limb vector back to a [*big.Int].
func (mod *Modulus) BigInt(z []uint64) *big.Int {
	return utils.LimbsToBigInt(z, mod.wordBits)
}

// Mul sets z = x*y*R^-1 mod M, fully reduced. z may alias x or y.
//
// If x and y are in Montgomery form, so is z, and z represents the product of what x and y represent.
func (mod *Modulus) Mul(z, x, y []uint64) {
	carry := mod.kernel.Mul(z, x, y, mod.limbs, mod.mInv)
	mmm.ReduceOnce(z, mod.limbs, carry, mod.wordBits)
}

// ToMontgomery sets z = x*R mod M. z may alias x.
func (mod *Modulus) ToMontgomery(z, x []uint64) {
	mod.Mul(z, x, mod.rrModM)
}

// FromMontgomery sets z = x*R^-1 mod M, undoing [Modulus.ToMontgomery]. z may alias x.
func (mod *Modulus) FromMontgomery(z, x []uint64) {
	one := make([]uint64, mod.N())
	one[len(one)-1] = 1
	mod.Mul(z, x, one)
}

// One returns the Montgomery form of 1, i.e. R mod M.
func (mod *Modulus) One() []uint64 {
	return append([]uint64(nil), mod.rModM...)
}
