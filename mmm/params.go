package mmm

import (
	"math/big"

	"github.com/pkg/errors"
)

const (
	// MaxWordBits is the largest supported limb size.
	// Lanes are 64 bits wide and the single-tile path needs one full product (< r^2) plus a small carry to fit into a lane.
	MaxWordBits = 32

	// MaxTiledWordBits is the largest limb size supported if the operands span more than one tile.
	// The tiled path accumulates two products per lane before propagating carries, which costs one bit of headroom.
	MaxTiledWordBits = 31

	// DefaultWay is the lane count used if nothing better is known about the processor.
	DefaultWay = 4
)

// Params describes the shape of the operands the kernel works on.
//
// The limb base is r = 2^WordBits, operands have N limbs, so the Montgomery radix is R = r^N.
// Way is the number of lanes of one vector; operands are processed in S = ceil(N/Way) tiles of Way lanes each.
// Params are created with [NewParams], which derives S and validates everything; the zero value is invalid.
type Params struct {
	WordBits uint // limb size in bits, 1 <= WordBits <= MaxWordBits
	N        int  // number of limbs of each operand
	Way      int  // number of lanes per vector (tile)
	S        int  // number of tiles, ceil(N/Way)
}

// NewParams returns validated parameters for n-limb operands in base 2^wordBits and vectors of way lanes.
// The returned error wraps [ErrInvalidParams].
func NewParams(wordBits uint, n int, way int) (Params, error) {
	if way < 1 {
		return Params{}, errors.Wrapf(ErrInvalidParams, "lane count must be positive, got %d", way)
	}
	p := Params{WordBits: wordBits, N: n, Way: way, S: (n + way - 1) / way}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate checks the invariants documented on [Params]. The returned error wraps [ErrInvalidParams].
func (p Params) Validate() error {
	switch {
	case p.WordBits < 1 || p.WordBits > MaxWordBits:
		return errors.Wrapf(ErrInvalidParams, "word size must be in [1, %d], got %d", MaxWordBits, p.WordBits)
	case p.N < 1:
		return errors.Wrapf(ErrInvalidParams, "limb count must be positive, got %d", p.N)
	case p.Way < 1:
		return errors.Wrapf(ErrInvalidParams, "lane count must be positive, got %d", p.Way)
	case p.S < 1 || p.Way*p.S < p.N:
		return errors.Wrapf(ErrInvalidParams, "%d tiles of %d lanes cannot hold %d limbs", p.S, p.Way, p.N)
	case (p.S-1)*p.Way >= p.N:
		return errors.Wrapf(ErrInvalidParams, "%d tiles of %d lanes leave a tile empty for %d limbs", p.S, p.Way, p.N)
	case p.S > 1 && p.WordBits > MaxTiledWordBits:
		return errors.Wrapf(ErrInvalidParams, "word size %d is too large for %d tiles (at most %d)", p.WordBits, p.S, MaxTiledWordBits)
	}
	return nil
}

// Mask returns r-1, i.e. a word with the low WordBits bits set.
func (p Params) Mask() uint64 {
	return 1<<p.WordBits - 1
}

// Radix returns the Montgomery radix R = 2^(WordBits*N) as a fresh [*big.Int].
func (p Params) Radix() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), p.WordBits*uint(p.N))
}

// Lanes returns the total number of lanes Way*S of the accumulator used by the tiled path.
func (p Params) Lanes() int {
	return p.Way * p.S
}

// SingleTile reports whether the operands fit into one vector, in which case [Kernel.Mul] uses the single-tile engine.
func (p Params) SingleTile() bool {
	return p.N <= p.Way
}
