package utils

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/SharzyL/rvv-mmm/internal/testutils"
)

func TestLimbConversionRoundtrip(t *testing.T) {
	drng := rand.New(rand.NewSource(771))
	for _, wordBits := range []uint{1, 7, 16, 31, 32} {
		for n := 1; n < 12; n++ {
			bound := new(big.Int).Lsh(big.NewInt(1), uint(n)*wordBits)
			for i := 0; i < 20; i++ {
				x := new(big.Int).Rand(drng, bound)
				limbs := BigIntToLimbs(x, n, wordBits)
				testutils.FatalUnless(t, len(limbs) == n, "wrong number of limbs")
				for _, l := range limbs {
					testutils.FatalUnless(t, l < 1<<wordBits, "limb out of range")
				}
				testutils.FatalUnless(t, LimbsToBigInt(limbs, wordBits).Cmp(x) == 0, "roundtrip failed for %v", x)
			}
		}
	}
}

func TestLimbsAreMostSignificantFirst(t *testing.T) {
	limbs := BigIntToLimbs(big.NewInt(0x0102_0304), 4, 8)
	testutils.FatalUnless(t, testutils.SlicesEqual(limbs, []uint64{1, 2, 3, 4}), "unexpected limb order %v", limbs)
	testutils.FatalUnless(t, LimbCount(big.NewInt(0x0102_0304), 8) == 4, "")
	testutils.FatalUnless(t, LimbCount(big.NewInt(0), 8) == 1, "")
}

func TestLimbConversionRejectsBadInput(t *testing.T) {
	testutils.FatalUnless(t, testutils.CheckPanic(func() { BigIntToLimbs(big.NewInt(-1), 2, 16) }), "negative input accepted")
	testutils.FatalUnless(t, testutils.CheckPanic(func() { BigIntToLimbs(big.NewInt(1<<32), 2, 16) }), "too large input accepted")
}
