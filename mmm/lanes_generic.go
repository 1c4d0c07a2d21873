package mmm

// genericLanes is the scalar fallback for [LaneOps]: each operation is an explicit per-lane loop.
type genericLanes struct{}

func (genericLanes) Name() string { return "generic" }

func (genericLanes) MulAccBroadcast(acc, x []uint64, y uint64) {
	x = x[:len(acc)]
	for i := range acc {
		acc[i] += x[i] * y
	}
}

func (genericLanes) ShiftRight(dst, src []uint64, k uint) {
	src = src[:len(dst)]
	for i := range dst {
		dst[i] = src[i] >> k
	}
}

func (genericLanes) And(v []uint64, mask uint64) {
	for i := range v {
		v[i] &= mask
	}
}

func (genericLanes) Add(dst, src []uint64) {
	src = src[:len(dst)]
	for i := range dst {
		dst[i] += src[i]
	}
}

func (genericLanes) SlideUp(dst, src []uint64, in uint64) (out uint64) {
	n := len(dst)
	src = src[:n]
	out = src[n-1]
	// top-down, so that dst == src works
	for i := n - 1; i > 0; i-- {
		dst[i] = src[i-1]
	}
	dst[0] = in
	return
}

func (genericLanes) SlideDown(dst, src []uint64, in uint64) (out uint64) {
	n := len(dst)
	src = src[:n]
	out = src[0]
	for i := 0; i < n-1; i++ {
		dst[i] = src[i+1]
	}
	dst[n-1] = in
	return
}

func (genericLanes) Lane(v []uint64, i int) uint64 {
	return v[i]
}
