package knapsack

import (
	"fmt"
	"math"
	"math/rand"
)

// RandomInstance builds a uniform random instance with the given number
// of items. Weights and values are drawn from [1, 99] and the capacity
// is half the total weight, so roughly half of the items fit.
func RandomInstance(items int, rng *rand.Rand) *Instance {
	inst := &Instance{Items: make([]Item, items)}
	var total float64
	for i := range inst.Items {
		weight := float64(rng.Intn(99) + 1)
		inst.Items[i] = Item{
			Name:   fmt.Sprintf("item%03d", i+1),
			Weight: weight,
			Value:  float64(rng.Intn(99) + 1),
		}
		total += weight
	}
	inst.Capacity = math.Floor(total / 2)
	return inst
}
