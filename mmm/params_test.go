package mmm

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/SharzyL/rvv-mmm/internal/testutils"
)

func TestNewParams(t *testing.T) {
	p, err := NewParams(16, 4, 4)
	testutils.FatalUnless(t, err == nil, "valid params rejected: %v", err)
	testutils.FatalUnless(t, p.S == 1 && p.SingleTile(), "n == way must give a single tile")
	testutils.FatalUnless(t, p.Mask() == 0xffff, "wrong mask %x", p.Mask())
	testutils.FatalUnless(t, p.Radix().BitLen() == 65, "R must be 2^64")

	p, err = NewParams(16, 16, 4)
	testutils.FatalUnless(t, err == nil, "valid params rejected: %v", err)
	testutils.FatalUnless(t, p.S == 4 && !p.SingleTile() && p.Lanes() == 16, "wrong tiling %+v", p)

	p, err = NewParams(16, 17, 4)
	testutils.FatalUnless(t, err == nil, "valid params rejected: %v", err)
	testutils.FatalUnless(t, p.S == 5 && p.Lanes() >= p.N, "wrong tiling %+v", p)

	p, err = NewParams(32, 3, 8)
	testutils.FatalUnless(t, err == nil && p.Mask() == 0xffff_ffff, "32-bit limbs must work on a single tile")
}

func TestNewParamsRejects(t *testing.T) {
	for _, c := range []struct {
		wordBits uint
		n, way   int
	}{
		{0, 4, 4},
		{33, 4, 4},
		{16, 0, 4},
		{16, 4, 0},
		{16, 4, -1},
		{32, 5, 4}, // tiled with 32-bit limbs
	} {
		_, err := NewParams(c.wordBits, c.n, c.way)
		testutils.FatalUnless(t, err != nil, "invalid params %+v accepted", c)
		testutils.FatalUnless(t, errors.Is(err, ErrInvalidParams), "error does not wrap ErrInvalidParams: %v", err)
	}
	bad := Params{WordBits: 16, N: 9, Way: 4, S: 2}
	testutils.FatalUnless(t, errors.Is(bad.Validate(), ErrInvalidParams), "too few tiles accepted")
	bad = Params{WordBits: 16, N: 4, Way: 4, S: 2}
	testutils.FatalUnless(t, errors.Is(bad.Validate(), ErrInvalidParams), "empty tile accepted")

	_, err := NewKernel(Params{}, nil)
	testutils.FatalUnless(t, errors.Is(err, ErrInvalidParams), "NewKernel accepted zero Params")
}
