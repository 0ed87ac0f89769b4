package sim

import (
	"fmt"
	"math/rand/v2"
)

// Selector chooses k distinct citizen indices out of a population of n.
// Implemented by UniformSelector (production) and testutil.FixedSelector
// (tests).
type Selector interface {
	Select(n, k int) ([]int, error)
}

// UniformSelector draws without replacement by building a uniform random
// permutation of all indices (Fisher-Yates shuffle via rand.Perm) and
// taking its prefix. Every k-subset and every ordering of it is equally
// likely.
type UniformSelector struct {
	Rng *rand.Rand
}

// Select returns the first k indices of a fresh permutation of 0..n-1.
func (s UniformSelector) Select(n, k int) ([]int, error) {
	if k > n {
		return nil, fmt.Errorf("cannot select %d citizens from population of %d", k, n)
	}
	return s.Rng.Perm(n)[:k], nil
}
