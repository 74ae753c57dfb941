package maxsat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Clause is one weighted clause. Lits are signed DIMACS literals,
// negative for negated variables. Hard clauses must hold in every
// solution; soft clauses contribute Weight to the cost when falsified.
type Clause struct {
	Weight int64
	Hard   bool
	Lits   []int
}

// WCNF is a weighted partial MaxSAT instance in WCNF form.
// see: https://maxsat-evaluations.github.io/
type WCNF struct {
	variables int
	clauses   []Clause
}

// Variables returns the number of variables declared in the header.
func (w *WCNF) Variables() int {
	return w.variables
}

// Clauses returns all clauses, hard and soft, in input order.
func (w *WCNF) Clauses() []Clause {
	return w.clauses
}

// Soft returns the soft clauses in input order.
func (w *WCNF) Soft() []Clause {
	var soft []Clause
	for _, c := range w.clauses {
		if !c.Hard {
			soft = append(soft, c)
		}
	}
	return soft
}

// Hard returns the hard clauses in input order.
func (w *WCNF) Hard() []Clause {
	var hard []Clause
	for _, c := range w.clauses {
		if c.Hard {
			hard = append(hard, c)
		}
	}
	return hard
}

// NewWCNF parses the WCNF text format:
//
//	c
//	c this is a comment
//	c header: p wcnf <variables> <clauses> <top>
//	p wcnf 2 3 100
//	c clauses start with a weight and end in zero; weight top marks a
//	c hard clause
//	100 1 2 0
//	5 -1 0
//	3 -2 0
func NewWCNF(r io.Reader) (*WCNF, error) {
	reader := bufio.NewScanner(r)

	commentLine := regexp.MustCompile(`^c(\s.*)?$`)
	headerLine := regexp.MustCompile(`^p wcnf\s+\d+\s+\d+\s+\d+\s*$`)
	clauseLine := regexp.MustCompile(`^\d+(\s+-?\d+)+\s+0$`)
	cleanInput := regexp.MustCompile(`\s\s+`)

	numVariables := 0
	numClauses := 0
	var top int64
	var clauses []Clause

	for reader.Scan() {
		line := strings.TrimSpace(reader.Text())
		if line == "" || commentLine.MatchString(line) {
			continue
		}

		if headerLine.MatchString(line) {
			if clauses != nil {
				return nil, errors.New("invalid format: duplicate header")
			}
			line = cleanInput.ReplaceAllString(line, " ")
			header := strings.Split(line, " ")
			var err error
			numVariables, err = strconv.Atoi(header[2])
			if err != nil {
				return nil, fmt.Errorf("invalid number (%s) in header (%s)", header[2], line)
			}
			numClauses, err = strconv.Atoi(header[3])
			if err != nil {
				return nil, fmt.Errorf("invalid number (%s) in header (%s)", header[3], line)
			}
			top, err = strconv.ParseInt(header[4], 10, 64)
			if err != nil || top < 1 {
				return nil, fmt.Errorf("invalid top weight (%s) in header (%s)", header[4], line)
			}
			clauses = make([]Clause, 0, numClauses)
			continue
		}

		if strings.HasPrefix(line, "p ") {
			return nil, fmt.Errorf("invalid header (%s): valid format is p wcnf <variables> <clauses> <top>", line)
		}

		if clauseLine.MatchString(line) {
			if clauses == nil {
				return nil, errors.New("invalid format: missing header 'p wcnf <variables> <clauses> <top>'")
			}
			line = cleanInput.ReplaceAllString(line, " ")
			clause, err := parseClause(strings.Split(line, " "), numVariables, top)
			if err != nil {
				return nil, fmt.Errorf("invalid clause (%s): %w", line, err)
			}
			clauses = append(clauses, clause)
			continue
		}

		return nil, fmt.Errorf("invalid wcnf statement: %s", line)
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("error reading wcnf data: %w", err)
	}

	if clauses == nil {
		return nil, errors.New("invalid format: no header found")
	}
	if len(clauses) != numClauses {
		return nil, fmt.Errorf("invalid format: header declares %d clauses but %d were found", numClauses, len(clauses))
	}
	return &WCNF{variables: numVariables, clauses: clauses}, nil
}

func parseClause(fields []string, numVariables int, top int64) (Clause, error) {
	weight, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Clause{}, fmt.Errorf("%s is not a valid weight", fields[0])
	}
	if weight < 1 || weight > top {
		return Clause{}, fmt.Errorf("weight %d outside [1, top]", weight)
	}

	fields = fields[1:]
	if fields[len(fields)-1] != "0" {
		return Clause{}, errors.New("does not end with 0")
	}
	fields = fields[:len(fields)-1]

	lits := make([]int, 0, len(fields))
	for _, field := range fields {
		lit, err := strconv.Atoi(field)
		if err != nil {
			return Clause{}, fmt.Errorf("%s is not a number", field)
		}
		if lit == 0 {
			return Clause{}, errors.New("0 is not a valid literal")
		}
		if lit > numVariables || -lit > numVariables {
			return Clause{}, fmt.Errorf("%d is not a valid literal", lit)
		}
		lits = append(lits, lit)
	}
	return Clause{Weight: weight, Hard: weight == top, Lits: lits}, nil
}
