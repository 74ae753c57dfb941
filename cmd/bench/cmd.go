package bench

import (
	"fmt"
	"math/rand"
	"runtime"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fathom-framework/fathom/cmd/knapsack"
	"github.com/fathom-framework/fathom/internal/bench"
	"github.com/fathom-framework/fathom/internal/config"
	"github.com/fathom-framework/fathom/pkg/fathom"
)

// NewBenchCommand returns the subcommand that benchmarks tolerance
// settings on families of random knapsack instances.
func NewBenchCommand() *cobra.Command {
	var (
		out   string
		sizes string
		runs  int
		seed  int64
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark tolerance settings on random knapsack instances",
		Long: `Solve families of random knapsack instances and report how many nodes
and how much time each configuration needs. An exact configuration is
always measured; setting --absolute-tolerance or --relative-tolerance
adds a tolerant configuration for comparison.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, out, sizes, runs, seed)
		},
	}
	cmd.Flags().StringVar(&out, "out", "artifacts/bench.csv", "path of the CSV report")
	cmd.Flags().StringVar(&sizes, "sizes", "12,16,20", "instance sizes in items, comma separated")
	cmd.Flags().IntVar(&runs, "runs", 20, "instances per size and configuration")
	cmd.Flags().Int64Var(&seed, "seed", 1, "base seed for instance generation")
	return cmd
}

func run(cmd *cobra.Command, out, sizes string, runs int, seed int64) error {
	params, err := config.SearchParams()
	if err != nil {
		return err
	}
	if runs < 1 {
		return fmt.Errorf("runs must be at least 1, got %d", runs)
	}
	cases, err := parseSizes(sizes, seed)
	if err != nil {
		return err
	}

	configs := []bench.Config{{Name: "exact", Params: quiet(fathom.Params{})}}
	if params.AbsoluteTolerance > 0 || params.RelativeTolerance > 0 {
		configs = append(configs, bench.Config{Name: "tolerant", Params: quiet(params)})
	}

	logger := config.NewLogger()
	runID := uuid.NewString()
	runner := bench.Runner{Runs: runs, BaseSeed: seed}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.NumCPU())

	records := make([]bench.Record, len(cases)*len(configs))
	for ci, c := range cases {
		for fi, cfg := range configs {
			ci, c, fi, cfg := ci, c, fi, cfg
			g.Go(func() error {
				logger.WithFields(logrus.Fields{
					"run_id": runID,
					"config": cfg.Name,
					"size":   c.Size,
					"runs":   runner.Runs,
				}).Info("benchmark case started")

				rec, err := runner.RunCase(ctx, c, cfg, newKnapsackFactory())
				if err != nil {
					return fmt.Errorf("size %d config %s: %w", c.Size, cfg.Name, err)
				}
				records[ci*len(configs)+fi] = rec

				logger.WithFields(logrus.Fields{
					"run_id":       runID,
					"config":       cfg.Name,
					"size":         c.Size,
					"nodes_mean":   rec.NodesMean,
					"time_mean_ms": rec.TimeMeanMs,
					"value_mean":   rec.ValueMean,
				}).Info("benchmark case finished")
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := bench.WriteCSV(out, records); err != nil {
		return fmt.Errorf("error writing report (%s): %w", out, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "report saved to %s\n", out)
	return nil
}

func newKnapsackFactory() bench.Factory {
	return func(size int, seed int64, params fathom.Params) fathom.Problem {
		rng := rand.New(rand.NewSource(seed))
		return knapsack.New(knapsack.RandomInstance(size, rng), params)
	}
}

// quiet strips reporting from a parameter set so benchmark runs stay
// silent.
func quiet(p fathom.Params) fathom.Params {
	p.PrintInterval = 0
	p.Debug = false
	return p
}

func parseSizes(s string, baseSeed int64) ([]bench.Case, error) {
	var cases []bench.Case
	for i, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		size, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid size %q: %w", part, err)
		}
		if size < 1 {
			return nil, fmt.Errorf("invalid size %d: must be at least 1", size)
		}
		cases = append(cases, bench.Case{
			Size: size,
			Seed: baseSeed + int64(i)*10_000 + int64(size),
		})
	}
	if len(cases) == 0 {
		return nil, fmt.Errorf("no sizes given")
	}
	return cases, nil
}
