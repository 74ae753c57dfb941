package maxsat_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fathom-framework/fathom/cmd/maxsat"
)

var _ = Describe("WCNF", func() {
	It("should fail if there is no header", func() {
		problem := "100 1 2 0\n"
		_, err := maxsat.NewWCNF(bytes.NewReader([]byte(problem)))
		Expect(err).To(HaveOccurred())
	})

	It("should fail on a header without a top weight", func() {
		problem := "p wcnf 2 3\n100 1 2 0\n"
		_, err := maxsat.NewWCNF(bytes.NewReader([]byte(problem)))
		Expect(err).To(HaveOccurred())
	})

	It("should fail on a duplicate header", func() {
		problem := "p wcnf 2 1 100\np wcnf 2 1 100\n100 1 2 0\n"
		_, err := maxsat.NewWCNF(bytes.NewReader([]byte(problem)))
		Expect(err).To(HaveOccurred())
	})

	It("should fail on a top weight below one", func() {
		problem := "p wcnf 1 1 0\n1 1 0\n"
		_, err := maxsat.NewWCNF(bytes.NewReader([]byte(problem)))
		Expect(err).To(HaveOccurred())
	})

	It("should fail on a clause weight below one", func() {
		problem := "p wcnf 1 1 5\n0 1 0\n"
		_, err := maxsat.NewWCNF(bytes.NewReader([]byte(problem)))
		Expect(err).To(HaveOccurred())
	})

	It("should fail on a clause weight above top", func() {
		problem := "p wcnf 1 1 5\n6 1 0\n"
		_, err := maxsat.NewWCNF(bytes.NewReader([]byte(problem)))
		Expect(err).To(HaveOccurred())
	})

	It("should fail on a literal outside the declared variables", func() {
		problem := "p wcnf 1 1 5\n3 2 0\n"
		_, err := maxsat.NewWCNF(bytes.NewReader([]byte(problem)))
		Expect(err).To(HaveOccurred())
	})

	It("should fail when the clause count does not match the header", func() {
		problem := "p wcnf 2 2 100\n100 1 2 0\n"
		_, err := maxsat.NewWCNF(bytes.NewReader([]byte(problem)))
		Expect(err).To(HaveOccurred())
	})

	It("should parse a valid instance", func() {
		problem := "c example\n\np wcnf 2 3 100\n100 1 2 0\n5 -1 0\n3 -2 0\n"
		wcnf, err := maxsat.NewWCNF(bytes.NewReader([]byte(problem)))
		Expect(err).ToNot(HaveOccurred())
		Expect(wcnf.Variables()).To(Equal(2))
		Expect(wcnf.Clauses()).To(Equal([]maxsat.Clause{
			{Weight: 100, Hard: true, Lits: []int{1, 2}},
			{Weight: 5, Hard: false, Lits: []int{-1}},
			{Weight: 3, Hard: false, Lits: []int{-2}},
		}))
		Expect(wcnf.Hard()).To(HaveLen(1))
		Expect(wcnf.Soft()).To(HaveLen(2))
	})

	It("should parse an instance with no clauses", func() {
		problem := "p wcnf 3 0 10\n"
		wcnf, err := maxsat.NewWCNF(bytes.NewReader([]byte(problem)))
		Expect(err).ToNot(HaveOccurred())
		Expect(wcnf.Variables()).To(Equal(3))
		Expect(wcnf.Clauses()).To(BeEmpty())
	})
})
