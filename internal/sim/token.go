package sim

import (
	"github.com/google/uuid"
)

// RunTokenGenerator generates unique run tokens for ledger correlation.
// Implemented by UUIDv7Generator (production) and testutil.FixedTokens
// (tests).
type RunTokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run tokens.
//
// UUIDv7 embeds a timestamp in the most significant bits, making tokens
// sortable by creation time. This is helpful when auditing a ledger that
// accumulated several runs.
//
// Uses github.com/google/uuid for RFC 4122 compliant UUIDs.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
