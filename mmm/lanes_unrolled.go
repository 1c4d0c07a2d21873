package mmm

// unrolledLanes realizes [LaneOps] by processing blocks of four lanes per loop iteration,
// with a scalar tail for the remaining lanes. Slides are done with copy, which is a memmove.
//
// The re-slicing with explicit capacity (a := acc[i : i+4 : i+4]) lets the compiler drop the bounds checks inside a block.
type unrolledLanes struct{}

func (unrolledLanes) Name() string { return "unrolled" }

func (unrolledLanes) MulAccBroadcast(acc, x []uint64, y uint64) {
	n := len(acc)
	x = x[:n]
	i := 0
	for ; i+4 <= n; i += 4 {
		a := acc[i : i+4 : i+4]
		b := x[i : i+4 : i+4]
		a[0] += b[0] * y
		a[1] += b[1] * y
		a[2] += b[2] * y
		a[3] += b[3] * y
	}
	for ; i < n; i++ {
		acc[i] += x[i] * y
	}
}

func (unrolledLanes) ShiftRight(dst, src []uint64, k uint) {
	n := len(dst)
	src = src[:n]
	i := 0
	for ; i+4 <= n; i += 4 {
		d := dst[i : i+4 : i+4]
		s := src[i : i+4 : i+4]
		d[0] = s[0] >> k
		d[1] = s[1] >> k
		d[2] = s[2] >> k
		d[3] = s[3] >> k
	}
	for ; i < n; i++ {
		dst[i] = src[i] >> k
	}
}

func (unrolledLanes) And(v []uint64, mask uint64) {
	n := len(v)
	i := 0
	for ; i+4 <= n; i += 4 {
		w := v[i : i+4 : i+4]
		w[0] &= mask
		w[1] &= mask
		w[2] &= mask
		w[3] &= mask
	}
	for ; i < n; i++ {
		v[i] &= mask
	}
}

func (unrolledLanes) Add(dst, src []uint64) {
	n := len(dst)
	src = src[:n]
	i := 0
	for ; i+4 <= n; i += 4 {
		d := dst[i : i+4 : i+4]
		s := src[i : i+4 : i+4]
		d[0] += s[0]
		d[1] += s[1]
		d[2] += s[2]
		d[3] += s[3]
	}
	for ; i < n; i++ {
		dst[i] += src[i]
	}
}

func (unrolledLanes) SlideUp(dst, src []uint64, in uint64) (out uint64) {
	n := len(dst)
	out = src[n-1]
	copy(dst[1:], src[:n-1])
	dst[0] = in
	return
}

func (unrolledLanes) SlideDown(dst, src []uint64, in uint64) (out uint64) {
	n := len(dst)
	out = src[0]
	copy(dst[:n-1], src[1:n])
	dst[n-1] = in
	return
}

func (unrolledLanes) Lane(v []uint64, i int) uint64 {
	return v[i]
}
