package mmm

import (
	"github.com/pkg/errors"
)

// MulTiled is [Kernel.Mul] for operands that may span several vectors.
//
// The operands are split into S tiles of Way lanes, tile 0 holding the least significant limbs; lanes beyond N are zero.
// For each digit y_i of y, the tiles are visited in order of increasing significance:
//
//   - tile 0 accumulates x*y_i, propagates, determines the quotient digit q from its lane 0,
//     accumulates m*q and propagates again. The two carries out of its top lane are summed.
//   - every further tile accumulates both x*y_i and m*q and then propagates once, with the carry of the previous tile
//     entering its lane 0. Its own top carry goes to the next tile.
//
// After the last tile, the whole accumulator is shifted down by one lane (a division by r): every tile slides down,
// taking the lane 0 of the next tile as its new top lane; the top tile takes the last scalar carry.
// Only one scalar carry is ever in flight, which is why tiles have to be visited strictly in order.
//
// For N <= Way (a single tile), the result is identical to [Kernel.MulSingleTile].
// MulTiled panics with an error wrapping [ErrCapacity] if N > Way*S.
func (k *Kernel) MulTiled(z, x, y, m []uint64, minusMInvModR uint64) (carry uint64) {
	k.checkLengths(z, x, y, m)
	n, way, s := k.params.N, k.params.Way, k.params.S
	lanes := way * s
	if n > lanes {
		panic(errors.Wrapf(ErrCapacity, "%d tiles of %d lanes cannot hold %d limbs", s, way, n))
	}
	IncrementCallCounter("MulTiled")

	ops := k.ops
	mask := k.mask
	wordBits := k.params.WordBits

	buf := make([]uint64, 4*lanes)
	xLanes := buf[0:lanes:lanes]
	mLanes := buf[lanes : 2*lanes : 2*lanes]
	acc := buf[2*lanes : 3*lanes : 3*lanes]
	scratch := buf[3*lanes : 4*lanes : 4*lanes]
	loadLanes(xLanes, x)
	loadLanes(mLanes, m)

	tile := func(v []uint64, t int) []uint64 {
		return v[t*way : (t+1)*way : (t+1)*way]
	}

	// Bounds: lanes stay below 4r between iterations; tiles after the first take two products before propagating,
	// so a lane may reach about 2r^2, which needs WordBits <= MaxTiledWordBits (checked by Params.Validate).
	for i := 0; i < n; i++ {
		yi := y[n-1-i]

		acc0, scratch0 := tile(acc, 0), tile(scratch, 0)
		ops.MulAccBroadcast(acc0, tile(xLanes, 0), yi)
		c := k.propagate(acc0, scratch0, 0)
		q := (ops.Lane(acc0, 0) * minusMInvModR) & mask
		ops.MulAccBroadcast(acc0, tile(mLanes, 0), q)
		c += k.propagate(acc0, scratch0, 0)

		for t := 1; t < s; t++ {
			accT := tile(acc, t)
			ops.MulAccBroadcast(accT, tile(xLanes, t), yi)
			ops.MulAccBroadcast(accT, tile(mLanes, t), q)
			c = k.propagate(accT, tile(scratch, t), c)
		}

		k.shiftTiles(acc, c)
	}

	var c uint64
	for t := 0; t < s; t++ {
		c = k.propagate(tile(acc, t), tile(scratch, t), c)
	}
	c += settle(acc, wordBits, mask)
	storeLanes(z, acc[:n])

	// Whatever sits above the n-th limb is the carry word. For valid inputs this is 0 or 1.
	for j := lanes - 1; j >= n; j-- {
		c = c<<wordBits | acc[j]
	}
	return c
}

// shiftTiles divides the tiled accumulator by r: every tile slides down by one lane,
// refilling its top lane from lane 0 of the next tile, or from top for the most significant tile.
// The lane that drops out of tile 0 is zero by the choice of the quotient digit.
func (k *Kernel) shiftTiles(acc []uint64, top uint64) {
	IncrementCallCounter("TileShift")
	way, s := k.params.Way, k.params.S
	for t := 0; t < s; t++ {
		cur := acc[t*way : (t+1)*way : (t+1)*way]
		in := top
		if t+1 < s {
			// tile t+1 has not been shifted yet, so its lane 0 is still the one we need
			in = k.ops.Lane(acc[(t+1)*way:(t+2)*way], 0)
		}
		k.ops.SlideDown(cur, cur, in)
	}
}
