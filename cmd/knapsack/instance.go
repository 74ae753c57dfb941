package knapsack

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Item is one object that may be packed.
type Item struct {
	Name   string  `yaml:"name"`
	Weight float64 `yaml:"weight"`
	Value  float64 `yaml:"value"`
}

// Instance is a binary knapsack instance: a capacity and the items
// competing for it.
type Instance struct {
	Capacity float64 `yaml:"capacity"`
	Items    []Item  `yaml:"items"`
}

// LoadInstance reads an instance from path, choosing the YAML format
// for .yaml/.yml files and the knapsack text format otherwise.
func LoadInstance(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening instance file (%s): %w", path, err)
	}
	defer f.Close()

	if ext := filepath.Ext(path); ext == ".yaml" || ext == ".yml" {
		return NewInstanceYAML(f)
	}
	return NewInstance(f)
}

// NewInstance parses the knapsack text format:
//
//	c this is a comment
//	c header: p knapsack <capacity> <number of items>
//	p knapsack 10 4
//	c one line per item: <name> <weight> <value>
//	bolt 5 10
//
// Zero items is a valid instance; the search then certifies the empty
// packing.
func NewInstance(r io.Reader) (*Instance, error) {
	reader := bufio.NewScanner(r)

	commentLine := regexp.MustCompile(`^c(\s.*)?$`)
	headerLine := regexp.MustCompile(`^p knapsack\s+\S+\s+\d+\s*$`)
	itemLine := regexp.MustCompile(`^(\S+)\s+(\S+)\s+(\S+)\s*$`)
	cleanInput := regexp.MustCompile(`\s\s+`)

	var inst *Instance
	numItems := 0

	for reader.Scan() {
		line := strings.TrimSpace(reader.Text())
		if line == "" || commentLine.MatchString(line) {
			continue
		}

		if headerLine.MatchString(line) {
			if inst != nil {
				return nil, errors.New("invalid format: duplicate header")
			}
			line = cleanInput.ReplaceAllString(line, " ")
			header := strings.Split(line, " ")
			capacity, err := strconv.ParseFloat(header[2], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid capacity (%s) in header (%s)", header[2], line)
			}
			if capacity < 0 {
				return nil, fmt.Errorf("invalid capacity (%s): must not be negative", header[2])
			}
			numItems, err = strconv.Atoi(header[3])
			if err != nil {
				return nil, fmt.Errorf("invalid item count (%s) in header (%s)", header[3], line)
			}
			inst = &Instance{Capacity: capacity, Items: make([]Item, 0, numItems)}
			continue
		}

		if strings.HasPrefix(line, "p ") {
			return nil, fmt.Errorf("invalid header (%s): valid format is p knapsack <capacity> <items>", line)
		}

		if m := itemLine.FindStringSubmatch(line); m != nil {
			if inst == nil {
				return nil, errors.New("invalid format: missing header 'p knapsack <capacity> <items>'")
			}
			item, err := parseItem(m[1], m[2], m[3])
			if err != nil {
				return nil, fmt.Errorf("invalid item (%s): %w", line, err)
			}
			inst.Items = append(inst.Items, item)
			continue
		}

		return nil, fmt.Errorf("invalid knapsack statement: %s", line)
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("error reading knapsack data: %w", err)
	}

	if inst == nil {
		return nil, errors.New("invalid format: no header found")
	}
	if len(inst.Items) != numItems {
		return nil, fmt.Errorf("invalid format: header declares %d items but %d were found", numItems, len(inst.Items))
	}
	if err := inst.validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// NewInstanceYAML parses the YAML instance format:
//
//	capacity: 10
//	items:
//	  - name: bolt
//	    weight: 5
//	    value: 10
func NewInstanceYAML(r io.Reader) (*Instance, error) {
	var inst Instance
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&inst); err != nil {
		return nil, fmt.Errorf("error parsing yaml instance: %w", err)
	}
	if inst.Capacity < 0 {
		return nil, fmt.Errorf("invalid capacity (%g): must not be negative", inst.Capacity)
	}
	if err := inst.validate(); err != nil {
		return nil, err
	}
	return &inst, nil
}

func parseItem(name, weight, value string) (Item, error) {
	w, err := strconv.ParseFloat(weight, 64)
	if err != nil {
		return Item{}, fmt.Errorf("%s is not a number", weight)
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return Item{}, fmt.Errorf("%s is not a number", value)
	}
	return Item{Name: name, Weight: w, Value: v}, nil
}

func (inst *Instance) validate() error {
	seen := make(map[string]struct{}, len(inst.Items))
	for _, item := range inst.Items {
		if item.Name == "" {
			return errors.New("invalid item: empty name")
		}
		if _, ok := seen[item.Name]; ok {
			return fmt.Errorf("invalid item (%s): duplicate name", item.Name)
		}
		seen[item.Name] = struct{}{}
		if item.Weight <= 0 {
			return fmt.Errorf("invalid item (%s): weight %g must be positive", item.Name, item.Weight)
		}
		if item.Value < 0 {
			return fmt.Errorf("invalid item (%s): value %g must not be negative", item.Name, item.Value)
		}
	}
	return nil
}
