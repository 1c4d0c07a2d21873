package mmm

import (
	"github.com/pkg/errors"

	"github.com/SharzyL/rvv-mmm/internal/callcounters"
)

var _ = callcounters.CreateCallCounter("Mul", "Montgomery multiplications", "")
var _ = callcounters.CreateCallCounter("MulSingleTile", "single-tile", "Mul")
var _ = callcounters.CreateCallCounter("MulTiled", "tiled", "Mul")
var _ = callcounters.CreateCallCounter("Propagate", "carry propagations", "Mul")
var _ = callcounters.CreateCallCounter("PropagateShift", "propagations with Montgomery shift", "Mul")
var _ = callcounters.CreateCallCounter("TileShift", "cross-tile Montgomery shifts", "Mul")

// Kernel performs Montgomery multiplications for one fixed set of [Params] using one lane backend.
//
// A Kernel is immutable after creation and may be used concurrently from multiple goroutines:
// every call allocates its own accumulator and keeps no reference to the caller's slices after returning.
type Kernel struct {
	params Params
	ops    LaneOps
	mask   uint64
}

// NewKernel creates a kernel for the given parameters. A nil ops selects [GenericLanes].
// The returned error wraps [ErrInvalidParams] if params do not satisfy [Params.Validate].
func NewKernel(params Params, ops LaneOps) (*Kernel, error) {
	if err := params.Validate(); err != nil {
		return nil, errors.WithMessage(err, "cannot create kernel")
	}
	if ops == nil {
		ops = GenericLanes
	}
	return &Kernel{params: params, ops: ops, mask: params.Mask()}, nil
}

// Params returns the parameters the kernel was created with.
func (k *Kernel) Params() Params {
	return k.params
}

// Backend returns the lane backend used by the kernel.
func (k *Kernel) Backend() LaneOps {
	return k.ops
}

// Mul computes z = x*y*R^-1 mod M in Montgomery's sense, where R = 2^(WordBits*N):
// on return, carry*R + z is congruent to x*y/R modulo m and < 2m.
//
// x, y, m and z are most-significant-first limb vectors of exactly N limbs each; z may alias x or y.
// minusMInvModR must be -m^-1 mod 2^WordBits (see [MinusInverseModR]).
// The caller guarantees m odd and x, y < m; this is not checked. Violating it gives meaningless results, not a panic.
//
// Mul uses the single-tile engine if N <= Way and the tiled engine otherwise.
// It panics with an error wrapping [ErrLengthMismatch] if a vector does not have N limbs.
func (k *Kernel) Mul(z, x, y, m []uint64, minusMInvModR uint64) (carry uint64) {
	IncrementCallCounter("Mul")
	if k.params.SingleTile() {
		return k.MulSingleTile(z, x, y, m, minusMInvModR)
	}
	return k.MulTiled(z, x, y, m, minusMInvModR)
}

// checkLengths panics unless all given limb vectors have exactly N limbs.
func (k *Kernel) checkLengths(z, x, y, m []uint64) {
	n := k.params.N
	if len(z) != n || len(x) != n || len(y) != n || len(m) != n {
		panic(errors.Wrapf(ErrLengthMismatch, "expected %d limbs, got len(z)=%d, len(x)=%d, len(y)=%d, len(m)=%d", n, len(z), len(x), len(y), len(m)))
	}
}
