package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SharzyL/rvv-mmm/mmm"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestMulGoldenVector(t *testing.T) {
	out, _, err := run(t, "mul", "--word-bits", "16", "--way", "4", "b13e117a2de93bd1", "383a338e3f19a39b", "0xc1257b23e38a13a3")
	require.NoError(t, err)
	require.Equal(t, "z: 77cc 219f 3140 185a\ncarry: 0\n", out)
}

func TestMulTiledMatchesSingleTile(t *testing.T) {
	args := []string{"b13e117a2de93bd1", "383a338e3f19a39b", "c1257b23e38a13a3"}
	single, _, err := run(t, append([]string{"mul", "--word-bits", "16", "--way", "4"}, args...)...)
	require.NoError(t, err)
	tiled, _, err := run(t, append([]string{"mul", "--word-bits", "16", "--way", "3", "--backend", "unrolled"}, args...)...)
	require.NoError(t, err)
	require.Equal(t, single, tiled)
}

func TestMulReduce(t *testing.T) {
	// 2*2*R^-1 mod 7 with R = 2^3: R^-1 = 1 mod 7, so the result is 4.
	out, _, err := run(t, "mul", "--word-bits", "3", "--way", "1", "--reduce", "2", "2", "7")
	require.NoError(t, err)
	require.Equal(t, "z: 4\ncarry: 0\n", out)
}

func TestMulRejectsBadInput(t *testing.T) {
	_, _, err := run(t, "mul", "--way", "4", "1", "2", "10")
	require.Error(t, err)
	require.Contains(t, err.Error(), "even")

	_, _, err = run(t, "mul", "--way", "4", "20", "2", "11")
	require.Error(t, err)

	_, _, err = run(t, "mul", "--way", "4", "xyz", "2", "11")
	require.Error(t, err)
	require.Contains(t, err.Error(), "hexadecimal")

	_, _, err = run(t, "mul", "--way", "4", "--word-bits", "40", "1", "2", "11")
	require.ErrorIs(t, err, mmm.ErrInvalidParams)

	_, _, err = run(t, "mul", "--way", "4", "--backend", "nope", "1", "2", "11")
	require.ErrorIs(t, err, mmm.ErrUnknownBackend)

	_, _, err = run(t, "mul", "1", "2")
	require.Error(t, err)
}

func TestConstant(t *testing.T) {
	out, _, err := run(t, "constant", "c1257b23e38a13a3")
	require.NoError(t, err)
	require.Equal(t, "0x47f5\n", out)

	_, _, err = run(t, "constant", "100")
	require.Error(t, err)
}

func TestWordBitsFromEnvironment(t *testing.T) {
	t.Setenv("MMM_WORD_BITS", "8")
	out, _, err := run(t, "constant", "c1257b23e38a13a3")
	require.NoError(t, err)
	// -0xa3^-1 mod 2^8
	require.Equal(t, "0xf5\n", out)

	// flags take precedence over the environment
	out, _, err = run(t, "constant", "--word-bits", "16", "c1257b23e38a13a3")
	require.NoError(t, err)
	require.Equal(t, "0x47f5\n", out)
}

func TestExp(t *testing.T) {
	// 3^10 mod 1001 = 59049 mod 1001 = 991
	out, _, err := run(t, "exp", "--word-bits", "4", "--way", "2", "3", "a", "3e9")
	require.NoError(t, err)
	require.Equal(t, "3df\n", out)

	_, _, err = run(t, "exp", "--way", "2", "3", "a", "3e8")
	require.Error(t, err)
}

func TestCaps(t *testing.T) {
	out, _, err := run(t, "caps")
	require.NoError(t, err)
	require.Contains(t, out, "arch: ")
	require.Contains(t, out, "lane width: ")
	require.Contains(t, out, "backends: generic, unrolled")
}

func TestVerboseLogging(t *testing.T) {
	_, errOut, err := run(t, "mul", "--verbose", "--way", "4", "2", "3", "b")
	require.NoError(t, err)
	require.Contains(t, errOut, "kernel ready")

	_, errOut, err = run(t, "mul", "--way", "4", "2", "3", "b")
	require.NoError(t, err)
	require.NotContains(t, errOut, "kernel ready")
}
