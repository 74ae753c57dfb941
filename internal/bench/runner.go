// Package bench measures how tolerance settings trade solution quality
// for search effort, over families of random instances.
package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/fathom-framework/fathom/pkg/fathom"
	"github.com/fathom-framework/fathom/pkg/fathom/solver"
)

// Config names one parameter set under comparison.
type Config struct {
	Name   string
	Params fathom.Params
}

// Case identifies one family of random instances by size and the seed
// its instances derive from.
type Case struct {
	Size int
	Seed int64
}

// Factory builds the problem for one run. Every call must return an
// independent problem so cases can run in parallel.
type Factory func(size int, seed int64, params fathom.Params) fathom.Problem

// Record aggregates one config over one case. Best times and node
// counts are minima; solved values only have a meaningful spread since
// each run solves a different instance.
type Record struct {
	Config string
	Size   int
	Runs   int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	NodesBest int
	NodesMean float64
	NodesStd  float64

	ValueMean float64
	ValueStd  float64
}

// Runner drives repeated searches and aggregates their outcomes.
type Runner struct {
	Runs     int
	BaseSeed int64
}

// RunCase solves Runs random instances of the case under the config
// and aggregates value, node and time statistics.
func (r Runner) RunCase(ctx context.Context, c Case, cfg Config, factory Factory) (Record, error) {
	nodes := make([]int, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)
	values := make([]float64, 0, r.Runs)

	so, err := solver.New(solver.WithTracer(fathom.DiscardTracer{}))
	if err != nil {
		return Record{}, fmt.Errorf("error creating solver: %w", err)
	}

	for i := 0; i < r.Runs; i++ {
		if err := ctx.Err(); err != nil {
			return Record{}, err
		}
		seed := r.BaseSeed + c.Seed + int64(i)
		problem := factory(c.Size, seed, cfg.Params)

		start := time.Now()
		solution, err := so.Solve(problem)
		dur := time.Since(start)
		if err != nil {
			return Record{}, fmt.Errorf("run %d: %w", i, err)
		}
		if err := solution.Error(); err != nil {
			return Record{}, fmt.Errorf("run %d: %w", i, err)
		}

		nodes = append(nodes, solution.Processed())
		timesMs = append(timesMs, float64(dur.Microseconds())/1000.0)
		values = append(values, solution.Value())
	}

	nStats := CalcIntStats(nodes)
	tStats := CalcFloatStats(timesMs)
	vStats := CalcFloatStats(values)

	return Record{
		Config: cfg.Name,
		Size:   c.Size,
		Runs:   r.Runs,

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		NodesBest: nStats.Best,
		NodesMean: nStats.Mean,
		NodesStd:  nStats.Std,

		ValueMean: vStats.Mean,
		ValueStd:  vStats.Std,
	}, nil
}

// WriteCSV writes the records to path, creating parent directories as
// needed.
func WriteCSV(path string, records []Record) error {
	if dir := dirOf(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"config", "size", "runs",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"nodes_best", "nodes_mean", "nodes_std",
		"value_mean", "value_std",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Config,
			itoa(r.Size),
			itoa(r.Runs),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			itoa(r.NodesBest),
			ftoa(r.NodesMean),
			ftoa(r.NodesStd),

			ftoa(r.ValueMean),
			ftoa(r.ValueStd),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
