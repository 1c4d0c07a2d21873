package main

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SharzyL/rvv-mmm/internal/utils"
	"github.com/SharzyL/rvv-mmm/mmm"
	"github.com/SharzyL/rvv-mmm/montform"
)

// parseHex parses a non-negative hexadecimal number, with or without 0x prefix.
func parseHex(name, s string) (*big.Int, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	x, ok := new(big.Int).SetString(digits, 16)
	if !ok || x.Sign() < 0 {
		return nil, errors.Errorf("%s: %q is not a non-negative hexadecimal number", name, s)
	}
	return x, nil
}

// parseOperands parses hexadecimal arguments in order, named by names.
func parseOperands(names []string, args []string) ([]*big.Int, error) {
	ret := make([]*big.Int, len(args))
	for i, arg := range args {
		x, err := parseHex(names[i], arg)
		if err != nil {
			return nil, err
		}
		ret[i] = x
	}
	return ret, nil
}

func printLimbs(out io.Writer, label string, limbs []uint64) {
	parts := make([]string, len(limbs))
	for i, l := range limbs {
		parts[i] = fmt.Sprintf("%x", l)
	}
	fmt.Fprintf(out, "%s: %s\n", label, strings.Join(parts, " "))
}

func mulCmd(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mul X Y M",
		Short: "Montgomery product X*Y*R^-1 mod M",
		Long: `Computes the Montgomery product X*Y*R^-1 mod M with R = 2^(word-bits * n),
where n is the number of limbs of M. X, Y and M are hexadecimal, M must be odd and X, Y < M.

Without --reduce, the output is the raw kernel result: n limbs and a carry, with carry*R + z < 2M.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := parseOperands([]string{"X", "Y", "M"}, args)
			if err != nil {
				return err
			}
			X, Y, M := ops[0], ops[1], ops[2]
			if M.Bit(0) == 0 {
				return errors.Errorf("modulus %x is even", M)
			}
			if X.Cmp(M) >= 0 || Y.Cmp(M) >= 0 {
				return errors.New("operands must be smaller than the modulus")
			}

			wordBits, way, backend, err := cfg.kernelSettings()
			if err != nil {
				return err
			}
			if wordBits < 1 || wordBits > mmm.MaxWordBits {
				return errors.Wrapf(mmm.ErrInvalidParams, "word size must be in [1, %d], got %d", mmm.MaxWordBits, wordBits)
			}
			n := utils.LimbCount(M, wordBits)
			params, err := mmm.NewParams(wordBits, n, way)
			if err != nil {
				return err
			}
			kernel, err := mmm.NewKernel(params, backend)
			if err != nil {
				return err
			}

			m := utils.BigIntToLimbs(M, n, wordBits)
			mInv := mmm.MinusInverseModR(m[n-1], wordBits)
			cfg.logger.Debug("kernel ready",
				zap.Uint("wordBits", params.WordBits), zap.Int("n", params.N), zap.Int("way", params.Way),
				zap.Int("tiles", params.S), zap.String("backend", backend.Name()), zap.Uint64("minusMInvModR", mInv))

			z := make([]uint64, n)
			carry := kernel.Mul(z, utils.BigIntToLimbs(X, n, wordBits), utils.BigIntToLimbs(Y, n, wordBits), m, mInv)
			if cfg.v.GetBool(keyReduce) {
				mmm.ReduceOnce(z, m, carry, wordBits)
				carry = 0
			}

			out := cmd.OutOrStdout()
			printLimbs(out, "z", z)
			fmt.Fprintf(out, "carry: %d\n", carry)
			return nil
		},
	}
	cmd.Flags().Bool(keyReduce, false, "subtract M once if needed, giving the canonical result")
	_ = cfg.v.BindPFlag(keyReduce, cmd.Flags().Lookup(keyReduce))
	return cmd
}

func constantCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "constant M",
		Short: "Print -M^-1 mod 2^word-bits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			M, err := parseHex("M", args[0])
			if err != nil {
				return err
			}
			if M.Bit(0) == 0 {
				return errors.Errorf("modulus %x is even", M)
			}
			wordBits := cfg.v.GetUint(keyWordBits)
			if wordBits < 1 || wordBits > mmm.MaxWordBits {
				return errors.Wrapf(mmm.ErrInvalidParams, "word size must be in [1, %d], got %d", mmm.MaxWordBits, wordBits)
			}
			m0 := new(big.Int).And(M, new(big.Int).SetUint64(1<<wordBits-1)).Uint64()
			fmt.Fprintf(cmd.OutOrStdout(), "%#x\n", mmm.MinusInverseModR(m0, wordBits))
			return nil
		},
	}
}

func expCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "exp X E M",
		Short: "Modular exponentiation X^E mod M",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := parseOperands([]string{"X", "E", "M"}, args)
			if err != nil {
				return err
			}
			X, E, M := ops[0], ops[1], ops[2]

			wordBits, way, backend, err := cfg.kernelSettings()
			if err != nil {
				return err
			}
			mod, err := montform.NewModulus(M, wordBits, way, backend)
			if err != nil {
				return err
			}
			x, err := mod.Limbs(X)
			if err != nil {
				return errors.WithMessage(err, "X")
			}
			cfg.logger.Debug("modulus ready", zap.Int("n", mod.N()), zap.Int("tiles", mod.Params().S), zap.Int("exponentBits", E.BitLen()))

			z := make([]uint64, mod.N())
			mod.Exp(z, x, E.Bytes())
			fmt.Fprintf(cmd.OutOrStdout(), "%x\n", mod.BigInt(z))
			return nil
		},
	}
}

func capsCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "caps",
		Short: "Show the detected vector unit and the available lane backends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := mmm.DetectCPUFeatures()
			extension := f.Extension
			if extension == "" {
				extension = "none"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "arch: %s\n", f.Arch)
			fmt.Fprintf(out, "vector extension: %s\n", extension)
			fmt.Fprintf(out, "vector bits: %d\n", f.VectorBits)
			fmt.Fprintf(out, "lane width: %d\n", f.LaneWidth())
			fmt.Fprintf(out, "backends: %s\n", strings.Join(backendNames(), ", "))
			cfg.logger.Debug("capabilities", zap.String("arch", f.Arch), zap.String("extension", f.Extension))
			return nil
		},
	}
}
