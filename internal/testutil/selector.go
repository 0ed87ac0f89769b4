package testutil

// FixedSelector returns a preset selection regardless of population size.
//
// This lets tests pin exactly which citizens each vaccine arm receives,
// removing the selection shuffle from the equation. The simulator still
// verifies the selection, so a FixedSelector with duplicate or
// out-of-range indices exercises the failure paths too.
type FixedSelector struct {
	Indices []int
}

// Select returns the preset indices, ignoring n and k.
func (s FixedSelector) Select(n, k int) ([]int, error) {
	return s.Indices, nil
}
