package montform

// Exp sets z = x^e mod M, where x (and z) are ordinary residues, not in Montgomery form.
// The exponent e is big-endian. z may alias x.
//
// Exp uses a fixed 4-bit window and selects table entries in constant time, so the sequence of multiplications
// only depends on len(e), not on the bits of e.
func (mod *Modulus) Exp(z, x []uint64, e []byte) {
	n := mod.N()

	// table[k] = x^k in Montgomery form
	var table [1 << 4][]uint64
	table[0] = mod.One()
	table[1] = make([]uint64, n)
	mod.ToMontgomery(table[1], x)
	for k := 2; k < len(table); k++ {
		table[k] = make([]uint64, n)
		mod.Mul(table[k], table[k-1], table[1])
	}

	acc := mod.One()
	t := make([]uint64, n)
	for _, b := range e {
		for _, j := range []uint{4, 0} {
			mod.Mul(acc, acc, acc)
			mod.Mul(acc, acc, acc)
			mod.Mul(acc, acc, acc)
			mod.Mul(acc, acc, acc)

			k := uint64(b>>j) & 0b1111
			for i := range table {
				assign(t, table[i], ctEq(k, uint64(i)))
			}
			// multiplying by table[0] (the Montgomery one) is a no-op, so there is no need to discard anything
			mod.Mul(acc, acc, t)
		}
	}
	mod.FromMontgomery(z, acc)
}

// ctEq returns 1 if x == y and 0 otherwise, without branching.
func ctEq(x, y uint64) uint64 {
	d := x ^ y
	// d | -d has its top bit set iff d != 0
	return ((d | -d) >> 63) ^ 1
}

// assign sets dst = src if on == 1 and leaves dst unchanged if on == 0, without branching.
func assign(dst, src []uint64, on uint64) {
	mask := -on
	src = src[:len(dst)]
	for i := range dst {
		dst[i] ^= mask & (dst[i] ^ src[i])
	}
}
