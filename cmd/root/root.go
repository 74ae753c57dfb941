package root

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fathom-framework/fathom/cmd/bench"
	"github.com/fathom-framework/fathom/cmd/knapsack"
	"github.com/fathom-framework/fathom/cmd/maxsat"
	"github.com/fathom-framework/fathom/internal/config"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fathom",
		Short: "Fathom is a best-first branch-and-bound search framework",
		Long: `A generic best-first branch-and-bound search engine written in Go.
Concrete problem families plug into the engine through a small extension
contract; this binary ships solvers for binary knapsack and weighted
partial MaxSAT instances.`,
	}

	flags := rootCmd.PersistentFlags()
	flags.Float64(config.KeyAbsoluteTolerance, 0, "fathom subproblems within this absolute distance of the incumbent")
	flags.Float64(config.KeyRelativeTolerance, 0, "fathom subproblems within this fraction of the bound's magnitude")
	flags.Int(config.KeyPrintInterval, 0, "emit a status line every N processed nodes (0 disables)")
	flags.Bool(config.KeyDebug, false, "enable per-node trace events and extra contract assertions")
	flags.String(config.KeyVerbosity, "info", "log level (debug, info, warn, error)")
	for _, key := range []string{
		config.KeyAbsoluteTolerance,
		config.KeyRelativeTolerance,
		config.KeyPrintInterval,
		config.KeyDebug,
		config.KeyVerbosity,
	} {
		if err := viper.BindPFlag(key, flags.Lookup(key)); err != nil {
			panic(err)
		}
	}

	cobra.OnInitialize(initConfig)

	// add sub-commands
	rootCmd.AddCommand(knapsack.NewKnapsackCommand())
	rootCmd.AddCommand(maxsat.NewMaxSatCommand())
	rootCmd.AddCommand(bench.NewBenchCommand())

	return rootCmd
}

func initConfig() {
	viper.SetConfigName("fathom")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("FATHOM")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// the config file is optional
	_ = viper.ReadInConfig()
}
