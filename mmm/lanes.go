package mmm

import (
	"github.com/pkg/errors"
)

// LaneOps is the set of data-parallel operations the reduction loop is written against.
//
// A vector is a []uint64 with one lane per entry, lane 0 being the least significant limb.
// All vector arguments of one call have the same length; operations act on all lanes of dst (resp. acc, v).
// Where an operation takes both dst and src, the two must either be identical or not overlap.
//
// Implementations must not retain the slices and must not depend on lane values for control flow.
type LaneOps interface {
	// Name is a short identifier, used by [BackendByName].
	Name() string

	// MulAccBroadcast sets acc[i] += x[i] * y for every lane (y is broadcast to all lanes).
	MulAccBroadcast(acc, x []uint64, y uint64)

	// ShiftRight sets dst[i] = src[i] >> k for every lane.
	ShiftRight(dst, src []uint64, k uint)

	// And sets v[i] &= mask for every lane.
	And(v []uint64, mask uint64)

	// Add sets dst[i] += src[i] for every lane.
	Add(dst, src []uint64)

	// SlideUp moves every lane one position towards the most significant end: dst[i] = src[i-1], dst[0] = in.
	// The lane pushed out at the top, src[len-1], is returned.
	SlideUp(dst, src []uint64, in uint64) (out uint64)

	// SlideDown moves every lane one position towards lane 0: dst[i] = src[i+1], dst[len-1] = in.
	// The lane pushed out at the bottom, src[0], is returned.
	SlideDown(dst, src []uint64, in uint64) (out uint64)

	// Lane extracts lane i of v.
	Lane(v []uint64, i int) uint64
}

var (
	// GenericLanes realizes [LaneOps] with a plain loop over the lanes. This is the reference backend.
	GenericLanes LaneOps = genericLanes{}

	// UnrolledLanes realizes [LaneOps] with loops that process four lanes per iteration.
	UnrolledLanes LaneOps = unrolledLanes{}
)

// Backends returns all available lane backends. The first entry is the default.
func Backends() []LaneOps {
	return []LaneOps{GenericLanes, UnrolledLanes}
}

// BackendByName looks up a lane backend by its Name(). The returned error wraps [ErrUnknownBackend].
func BackendByName(name string) (LaneOps, error) {
	for _, ops := range Backends() {
		if ops.Name() == name {
			return ops, nil
		}
	}
	return nil, errors.Wrapf(ErrUnknownBackend, "no backend named %q", name)
}
