package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/SharzyL/rvv-mmm/mmm"
)

const cmdRoot = "mmm"

const (
	keyWordBits = "word-bits"
	keyWay      = "way"
	keyBackend  = "backend"
	keyVerbose  = "verbose"
	keyReduce   = "reduce"
)

// config is the per-invocation state shared by all subcommands.
type config struct {
	v      *viper.Viper
	logger *zap.Logger
}

// newRootCmd builds the full command tree. Every call gets its own viper instance, so tests can run it repeatedly.
func newRootCmd() *cobra.Command {
	cfg := &config{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           cmdRoot,
		Short:         "Lane-parallel Montgomery multiplication",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.logger = newLogger(cfg.v.GetBool(keyVerbose), cmd.ErrOrStderr())
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cfg.logger != nil {
				_ = cfg.logger.Sync()
			}
		},
	}

	// For environment variables.
	cfg.v.SetEnvPrefix(cmdRoot)
	cfg.v.AutomaticEnv()
	cfg.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	addKernelFlags(rootCmd.PersistentFlags())
	_ = cfg.v.BindPFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(mulCmd(cfg))
	rootCmd.AddCommand(constantCmd(cfg))
	rootCmd.AddCommand(expCmd(cfg))
	rootCmd.AddCommand(capsCmd(cfg))
	return rootCmd
}

func addKernelFlags(flags *pflag.FlagSet) {
	flags.Uint(keyWordBits, 16, "limb size in bits (1 to 32)")
	flags.Int(keyWay, 0, "lanes per vector; 0 detects the vector width of this processor")
	flags.String(keyBackend, mmm.GenericLanes.Name(), "lane backend")
	flags.BoolP(keyVerbose, "v", false, "enable debug logging")
}

// kernelSettings resolves the configured word size, lane count and backend.
func (cfg *config) kernelSettings() (wordBits uint, way int, ops mmm.LaneOps, err error) {
	wordBits = cfg.v.GetUint(keyWordBits)
	way = cfg.v.GetInt(keyWay)
	if way == 0 {
		way = mmm.DetectLaneWidth()
		cfg.logger.Debug("detected lane width", zap.Int("way", way))
	}
	ops, err = mmm.BackendByName(cfg.v.GetString(keyBackend))
	if err != nil {
		return 0, 0, nil, errors.WithMessagef(err, "available backends are %s", strings.Join(backendNames(), ", "))
	}
	return
}

func backendNames() []string {
	var names []string
	for _, ops := range mmm.Backends() {
		names = append(names, ops.Name())
	}
	return names
}
