package utils

import (
	"math/big"
)

const ErrorPrefix = "rvv-mmm / internal / utils: "

// LimbsToBigInt converts a most-significant-first limb vector in base 2^wordBits to a big.Int.
// Limbs are assumed to be < 2^wordBits; larger values are not rejected but simply added in at their position.
func LimbsToBigInt(limbs []uint64, wordBits uint) *big.Int {
	ret := new(big.Int)
	var limb big.Int
	for _, l := range limbs {
		ret.Lsh(ret, wordBits)
		ret.Add(ret, limb.SetUint64(l))
	}
	return ret
}

// BigIntToLimbs converts x into a most-significant-first vector of n limbs in base 2^wordBits.
// We assume 0 <= x < 2^(n*wordBits).
func BigIntToLimbs(x *big.Int, n int, wordBits uint) []uint64 {
	// As this is an internal function, panic is OK for error handling.
	if x.Sign() < 0 {
		panic(ErrorPrefix + "BigIntToLimbs: Trying to convert negative big Int")
	}
	if x.BitLen() > n*int(wordBits) {
		panic(ErrorPrefix + "BigIntToLimbs: big Int too large to fit into the requested number of limbs")
	}
	ret := make([]uint64, n)
	mask := new(big.Int).SetUint64(1<<wordBits - 1)
	var rest, limb big.Int
	rest.Set(x)
	for i := n - 1; i >= 0; i-- {
		limb.And(&rest, mask)
		ret[i] = limb.Uint64()
		rest.Rsh(&rest, wordBits)
	}
	return ret
}

// LimbCount returns the minimal number of limbs of size wordBits needed to hold x (at least 1).
func LimbCount(x *big.Int, wordBits uint) int {
	n := (x.BitLen() + int(wordBits) - 1) / int(wordBits)
	if n == 0 {
		n = 1
	}
	return n
}
