package e2e

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fathom-framework/fathom/cmd/root"
)

func TestE2E(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "E2E Suite")
}

const knapsackText = "p knapsack 10 4\nbolt 5 10\nnut 4 40\nwasher 6 30\nscrew 3 50\n"

const knapsackYAML = `capacity: 10
items:
  - name: bolt
    weight: 5
    value: 10
  - name: nut
    weight: 4
    value: 40
  - name: washer
    weight: 6
    value: 30
  - name: screw
    weight: 3
    value: 50
`

const weightedWCNF = "p wcnf 2 4 100\n100 1 2 0\n5 -1 0\n3 -2 0\n4 1 0\n"

const contradictionWCNF = "p wcnf 1 2 10\n10 1 0\n10 -1 0\n"

// execute runs the root command with args, returning everything it
// wrote. Each call builds a fresh command so flag values never leak
// between specs.
func execute(args ...string) (string, error) {
	cmd := root.NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(dir, name, content string) string {
	path := filepath.Join(dir, name)
	Expect(os.WriteFile(path, []byte(content), 0o600)).To(Succeed())
	return path
}

var _ = Describe("fathom", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	When("solving a knapsack instance", func() {
		It("should report the optimal packing", func() {
			path := writeFile(dir, "hardware.txt", knapsackText)
			out, err := execute("knapsack", path)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(ContainSubstring("best value 90 after 7 nodes"))
			Expect(out).To(ContainSubstring("nut weight 4 value 40"))
			Expect(out).To(ContainSubstring("screw weight 3 value 50"))
			Expect(out).To(ContainSubstring("total weight 7 of 10"))
		})

		It("should accept the yaml format", func() {
			path := writeFile(dir, "hardware.yaml", knapsackYAML)
			out, err := execute("knapsack", path)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(ContainSubstring("best value 90 after 7 nodes"))
		})

		It("should honor the absolute tolerance flag", func() {
			path := writeFile(dir, "hardware.txt", knapsackText)
			out, err := execute("knapsack", "--absolute-tolerance", "7", path)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(ContainSubstring("best value 90 after 6 nodes"))
		})

		It("should fail on a missing file", func() {
			_, err := execute("knapsack", filepath.Join(dir, "missing.txt"))
			Expect(err).To(MatchError(ContainSubstring("not found")))
		})

		It("should fail on a malformed instance", func() {
			path := writeFile(dir, "broken.txt", "bolt 5 10\n")
			_, err := execute("knapsack", path)
			Expect(err).To(MatchError(ContainSubstring("error parsing knapsack file")))
		})
	})

	When("solving a maxsat instance", func() {
		It("should report the minimum cost and its assignment", func() {
			path := writeFile(dir, "weighted.wcnf", weightedWCNF)
			out, err := execute("maxsat", path)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(ContainSubstring("optimum cost 5 after"))
			Expect(out).To(ContainSubstring("assignment: 1 -2"))
		})

		It("should report unsatisfiable hard clauses as infeasible", func() {
			path := writeFile(dir, "contradiction.wcnf", contradictionWCNF)
			out, err := execute("maxsat", path)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(ContainSubstring("no solution found"))
		})
	})

	When("benchmarking", func() {
		It("should write a csv report", func() {
			report := filepath.Join(dir, "artifacts", "bench.csv")
			out, err := execute("bench", "--sizes", "6,8", "--runs", "2", "--out", report, "--verbosity", "error")
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(ContainSubstring("report saved to"))

			f, err := os.Open(report)
			Expect(err).ToNot(HaveOccurred())
			defer f.Close()
			rows, err := csv.NewReader(f).ReadAll()
			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(HaveLen(3))
			Expect(rows[0][0]).To(Equal("config"))
			Expect(rows[1][0]).To(Equal("exact"))
			Expect(rows[1][1]).To(Equal("6"))
			Expect(rows[2][1]).To(Equal("8"))
		})

		It("should measure a tolerant configuration when tolerances are set", func() {
			report := filepath.Join(dir, "bench.csv")
			_, err := execute("bench", "--sizes", "6", "--runs", "2", "--out", report,
				"--relative-tolerance", "0.1", "--verbosity", "error")
			Expect(err).ToNot(HaveOccurred())

			f, err := os.Open(report)
			Expect(err).ToNot(HaveOccurred())
			defer f.Close()
			rows, err := csv.NewReader(f).ReadAll()
			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(HaveLen(3))
			Expect(rows[1][0]).To(Equal("exact"))
			Expect(rows[2][0]).To(Equal("tolerant"))
		})
	})
})
