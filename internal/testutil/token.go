package testutil

// FixedTokens returns predetermined run tokens in order.
//
// This enables deterministic ledger records and golden report comparison.
// Tests provide a known sequence of tokens and verify exact output.
type FixedTokens struct {
	tokens []string
	idx    int
}

// NewFixedTokens creates a generator that returns tokens in order.
//
// Example:
//
//	gen := testutil.NewFixedTokens("run-1", "run-2")
//	gen.Generate() // "run-1"
//	gen.Generate() // "run-2"
//	gen.Generate() // panic: all tokens exhausted
func NewFixedTokens(tokens ...string) *FixedTokens {
	return &FixedTokens{tokens: tokens}
}

// Generate returns the next predetermined token.
//
// Panics if all tokens have been consumed. This is a fail-fast approach
// to catch test misconfiguration (test ran more simulations than expected).
func (g *FixedTokens) Generate() string {
	if g.idx >= len(g.tokens) {
		panic("FixedTokens: all tokens exhausted")
	}
	token := g.tokens[g.idx]
	g.idx++
	return token
}
