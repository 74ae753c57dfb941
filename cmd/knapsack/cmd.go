package knapsack

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fathom-framework/fathom/internal/config"
	"github.com/fathom-framework/fathom/pkg/fathom/solver"
)

func NewKnapsackCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "knapsack <path>",
		Short: "Solves a binary knapsack instance",
		Long: `Solves a binary knapsack instance to optimality within the configured
tolerances. The text format:
c
c this is a comment
c header: p knapsack <capacity> <number of items>
p knapsack 10 4
c one line per item: <name> <weight> <value>
bolt 5 10
nut 4 40
washer 6 30
screw 3 50

Files ending in .yaml or .yml use the equivalent YAML schema with
capacity and items keys.
`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return solve(cmd, args[0])
		},
	}
}

func solve(cmd *cobra.Command, path string) error {
	params, err := config.SearchParams()
	if err != nil {
		return err
	}

	inst, err := LoadInstance(path)
	if err != nil {
		return fmt.Errorf("error parsing knapsack file (%s): %w", path, err)
	}

	so, err := solver.New(solver.WithTracer(config.NewTracer()))
	if err != nil {
		return fmt.Errorf("error creating solver: %w", err)
	}

	solution, err := so.Solve(New(inst, params))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if serr := solution.Error(); serr != nil {
		fmt.Fprintf(out, "no solution found: %s\n", serr)
		return nil
	}

	best := solution.Best().(*Solution)
	fmt.Fprintf(out, "best value %s after %d nodes\n",
		color.GreenString("%g", best.Value()), solution.Processed())
	var weight float64
	for _, idx := range best.Chosen {
		item := inst.Items[idx]
		weight += item.Weight
		fmt.Fprintf(out, "%s weight %g value %g\n", color.CyanString(item.Name), item.Weight, item.Value)
	}
	fmt.Fprintf(out, "total weight %g of %g\n", weight, inst.Capacity)
	return nil
}
