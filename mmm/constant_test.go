package mmm

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/SharzyL/rvv-mmm/internal/testutils"
)

func TestMinusInverseModR(t *testing.T) {
	testutils.FatalUnless(t, MinusInverseModR(0x13a3, 16) == 0x47f5, "wrong constant for 0x13a3")
	testutils.FatalUnless(t, MinusInverseModR(1, 32) == 0xffff_ffff, "-1^-1 should be -1")
	testutils.FatalUnless(t, MinusInverseModR(1, 1) == 1, "wordBits 1")

	rng := rand.New(rand.NewSource(1))
	for _, wordBits := range []uint{1, 2, 7, 16, 31, 32} {
		r := new(big.Int).Lsh(big.NewInt(1), wordBits)
		for i := 0; i < 200; i++ {
			m0 := rng.Uint64() | 1
			got := MinusInverseModR(m0, wordBits)
			testutils.FatalUnless(t, got < 1<<wordBits, "result not reduced")

			// got * m0 == -1 mod r
			prod := new(big.Int).Mul(new(big.Int).SetUint64(got), new(big.Int).SetUint64(m0))
			prod.Add(prod, big.NewInt(1))
			prod.Mod(prod, r)
			testutils.FatalUnless(t, prod.Sign() == 0, "MinusInverseModR(%#x, %v) = %#x is wrong", m0, wordBits, got)
		}
	}
}

func TestMinusInverseModRRejects(t *testing.T) {
	testutils.FatalUnless(t, testutils.CheckPanicIs(func() { MinusInverseModR(0x1234, 16) }, ErrInvalidParams), "even m0 accepted")
	testutils.FatalUnless(t, testutils.CheckPanicIs(func() { MinusInverseModR(3, 0) }, ErrInvalidParams), "wordBits 0 accepted")
	testutils.FatalUnless(t, testutils.CheckPanicIs(func() { MinusInverseModR(3, 33) }, ErrInvalidParams), "wordBits 33 accepted")
}
