package mmm

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/SharzyL/rvv-mmm/internal/callcounters"
	"github.com/SharzyL/rvv-mmm/internal/testutils"
	"github.com/SharzyL/rvv-mmm/internal/utils"
)

// This file contains code that is shared by a lot of benchmarking and testing code:
// sampling of (pseudo-)random valid kernel inputs together with an independent big.Int reference result,
// and setup code integrating call counters into go's benchmarking framework.

// size of Dump slices used in benchmarks.
const dumpSizeBench = 1 << 8

const benchS = 1 << 8

// benchmark functions write to DumpXXX variables.
// These are exported package-level variables to prevent the compiler from optimizing away the computation.
var (
	DumpLimbs [dumpSizeBench][]uint64
	DumpWord  [dumpSizeBench]uint64
)

// sampleKey selects a stream of random kernel inputs. The seed is derived from all fields.
type sampleKey struct {
	seed     int64
	wordBits uint
	n        int
	// if bigModulus is set, the modulus is sampled close to R, so that carry*R + Z >= R actually happens.
	bigModulus bool
}

// mulSample is one valid input to the kernel, together with its expected result.
type mulSample struct {
	x, y, m []uint64 // limb vectors, most significant first
	mInv    uint64   // -m^-1 mod r

	X, Y, M  *big.Int
	Expected *big.Int // X*Y*R^-1 mod M
}

func (s mulSample) clone() mulSample {
	ret := s
	ret.x = append([]uint64(nil), s.x...)
	ret.y = append([]uint64(nil), s.y...)
	ret.m = append([]uint64(nil), s.m...)
	ret.X = new(big.Int).Set(s.X)
	ret.Y = new(big.Int).Set(s.Y)
	ret.M = new(big.Int).Set(s.M)
	ret.Expected = new(big.Int).Set(s.Expected)
	return ret
}

// referenceMontgomery computes x*y*R^-1 mod m with R = 2^(wordBits*n) using only big.Int.
func referenceMontgomery(x, y, m *big.Int, wordBits uint, n int) *big.Int {
	R := new(big.Int).Lsh(big.NewInt(1), wordBits*uint(n))
	RInv := new(big.Int).ModInverse(R, m)
	ret := new(big.Int).Mul(x, y)
	ret.Mul(ret, RInv)
	return ret.Mod(ret, m)
}

func newMulSample(rng *rand.Rand, key sampleKey) (s mulSample) {
	R := new(big.Int).Lsh(big.NewInt(1), key.wordBits*uint(key.n))
	M := new(big.Int)
	switch {
	case key.bigModulus && rng.Intn(4) == 0:
		M.Sub(R, big.NewInt(1)) // largest possible modulus
	case key.bigModulus:
		half := new(big.Int).Rsh(R, 1)
		M.Rand(rng, half)
		M.Add(M, half)
	default:
		M.Rand(rng, R)
	}
	M.SetBit(M, 0, 1)

	X := new(big.Int).Rand(rng, M)
	Y := new(big.Int).Rand(rng, M)
	if rng.Intn(8) == 0 {
		// extreme operands
		X.Sub(M, big.NewInt(1))
		Y.Sub(M, big.NewInt(1))
	}

	s.X, s.Y, s.M = X, Y, M
	s.x = utils.BigIntToLimbs(X, key.n, key.wordBits)
	s.y = utils.BigIntToLimbs(Y, key.n, key.wordBits)
	s.m = utils.BigIntToLimbs(M, key.n, key.wordBits)

	r := new(big.Int).Lsh(big.NewInt(1), key.wordBits)
	mInv := new(big.Int).ModInverse(new(big.Int).Mod(M, r), r)
	mInv.Sub(r, mInv)
	mInv.Mod(mInv, r)
	s.mInv = mInv.Uint64()
	testutils.Assert(MinusInverseModR(s.m[key.n-1], key.wordBits) == s.mInv, "Montgomery constant disagrees with big.Int")

	s.Expected = referenceMontgomery(X, Y, M, key.wordBits, key.n)
	return
}

// CachedMulSamples hands out (copies of) random kernel inputs. Computing the reference result is the expensive part.
var CachedMulSamples = testutils.MakePrecomputedCache[sampleKey, mulSample](
	func(key sampleKey) int64 {
		ret := key.seed*1_000_003 + int64(key.wordBits)*1009 + int64(key.n)
		if key.bigModulus {
			ret = -ret
		}
		return ret
	},
	newMulSample,
	mulSample.clone,
)

// mustKernel creates a kernel for the given shape or fails the test.
func mustKernel(t testing.TB, wordBits uint, n int, way int, ops LaneOps) *Kernel {
	t.Helper()
	params, err := NewParams(wordBits, n, way)
	testutils.FatalUnless(t, err == nil, "NewParams(%v, %v, %v) failed: %v", wordBits, n, way, err)
	k, err := NewKernel(params, ops)
	testutils.FatalUnless(t, err == nil, "NewKernel failed: %v", err)
	return k
}

// resultToBigInt interprets the kernel output carry*R + z.
func resultToBigInt(z []uint64, carry uint64, wordBits uint) *big.Int {
	ret := new(big.Int).SetUint64(carry)
	ret.Lsh(ret, wordBits*uint(len(z)))
	return ret.Add(ret, utils.LimbsToBigInt(z, wordBits))
}

// prepareBenchmarkMMM runs some setup code and should be called in every (sub-)benchmark before the actual code that is to be benchmarked.
// Note that it resets all counters.
func prepareBenchmarkMMM(b *testing.B) {
	b.Cleanup(func() { BenchmarkWithCallCounters(b) })
	callcounters.ResetAllCounters()
	b.ResetTimer()
}
