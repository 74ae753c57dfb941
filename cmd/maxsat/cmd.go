package maxsat

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fathom-framework/fathom/internal/config"
	"github.com/fathom-framework/fathom/pkg/fathom/solver"
)

// NewMaxSatCommand returns the subcommand that solves weighted partial
// MaxSAT instances in WCNF format.
func NewMaxSatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "maxsat <path>",
		Short: "Solve a weighted partial MaxSAT problem",
		Long: `Minimize the total weight of falsified soft clauses subject to the
hard clauses, for an instance in the WCNF format, e.g.:

	c header: p wcnf <variables> <clauses> <top>
	p wcnf 2 4 100
	c weight top marks a hard clause
	100 1 2 0
	5 -1 0
	3 -2 0
	4 1 0
`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(_ *cobra.Command, args []string) error {
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

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening wcnf file (%s): %w", path, err)
	}
	defer file.Close()

	wcnf, err := NewWCNF(file)
	if err != nil {
		return fmt.Errorf("error parsing wcnf file (%s): %w", path, err)
	}

	so, err := solver.New(solver.WithTracer(config.NewTracer()))
	if err != nil {
		return fmt.Errorf("error creating solver: %w", err)
	}

	solution, err := so.Solve(New(wcnf, params))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if serr := solution.Error(); serr != nil {
		fmt.Fprintf(out, "no solution found: %s\n", serr)
		return nil
	}

	best := solution.Best().(*Solution)
	fmt.Fprintf(out, "optimum cost %s after %d nodes\n",
		color.GreenString("%g", best.Value()), solution.Processed())
	fmt.Fprintf(out, "assignment: %s\n", color.CyanString(formatAssignment(best.Assignment)))
	return nil
}

// formatAssignment renders an assignment as DIMACS literals, one per
// variable.
func formatAssignment(assignment []bool) string {
	lits := make([]string, len(assignment))
	for i, value := range assignment {
		lit := i + 1
		if !value {
			lit = -lit
		}
		lits[i] = fmt.Sprintf("%d", lit)
	}
	return strings.Join(lits, " ")
}
