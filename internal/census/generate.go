package census

import "fmt"

// Generate builds a population of n citizens with sequential ids 1..n,
// each in default unvaccinated state. Generation is deterministic - no
// randomness is involved.
//
// n == 0 yields an empty population. Returns an error for negative n.
func Generate(n int) ([]*Citizen, error) {
	if n < 0 {
		return nil, fmt.Errorf("population size must be non-negative, got %d", n)
	}

	pop := make([]*Citizen, n)
	for i := range pop {
		pop[i] = &Citizen{
			ID:   i + 1,
			Name: fmt.Sprintf("Citizen %d", i+1),
		}
	}
	return pop, nil
}
