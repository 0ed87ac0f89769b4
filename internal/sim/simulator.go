// Package sim applies vaccine doses to a generated population.
//
// The simulator selects distinct citizens uniformly at random without
// replacement, partitions the selection into consecutive prefixes (one per
// vaccine arm, in declaration order), and applies dosing: first dose plus
// vaccine type deterministically, second dose by an independent Bernoulli
// draw per citizen.
//
// All mutation happens in a single pass over the selection - no
// concurrency, no retained state between runs. Every random element
// (selection, second-dose draws, run tokens) is injectable so tests and
// scenarios can be fully deterministic.
package sim

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/roach88/vaxsim/internal/campaign"
	"github.com/roach88/vaxsim/internal/census"
)

// Recorder receives run and dose events as they happen.
// Implemented by ledger.Ledger (production); nil disables recording.
//
// RecordRun is called once per run, after validation and before any dose
// is applied, so dose events always reference an existing run.
type Recorder interface {
	RecordRun(ctx context.Context, runID string, population, vaccinated int) error
	RecordDose(ctx context.Context, runID string, seq int64, citizenID int, vaccine string, doses int) error
}

// ArmCount summarizes dosing for one vaccine arm.
type ArmCount struct {
	Name        string `json:"name"`
	FirstDoses  int    `json:"first_doses"`
	SecondDoses int    `json:"second_doses"`
}

// Result summarizes one simulation run.
type Result struct {
	// RunID is the unique token for this run (UUIDv7 in production).
	RunID string `json:"run_id"`

	// Vaccinated is the number of citizens that received a first dose.
	Vaccinated int `json:"vaccinated"`

	// ByArm lists per-arm counts in campaign declaration order.
	ByArm []ArmCount `json:"by_arm"`
}

// Simulator runs vaccination campaigns over a population.
//
// The zero value is ready for production use: entropy-seeded RNG, uniform
// shuffle selection, UUIDv7 run tokens, no event recording. Fields may be
// overridden for determinism (tests, scenarios) or to attach a ledger.
type Simulator struct {
	// Rng drives selection shuffles and second-dose draws.
	// If nil, an entropy-seeded PCG source is used.
	Rng *rand.Rand

	// Selector overrides citizen selection (for testing).
	// If nil, defaults to UniformSelector over Rng.
	Selector Selector

	// TokenGen overrides run token generation (for testing).
	// If nil, defaults to UUIDv7Generator.
	TokenGen RunTokenGenerator

	// Recorder receives dose events. If nil, events are not recorded.
	Recorder Recorder
}

// Run mutates the population in place according to the campaign and
// returns a per-arm summary.
//
// Fails fast with a *ConfigError before touching any citizen when the
// campaign is invalid or its total doses exceed the population size. The
// selection itself is also verified (distinct, in range, correct length)
// so a misbehaving Selector cannot silently corrupt the run.
func (s *Simulator) Run(ctx context.Context, pop []*census.Citizen, c campaign.Campaign) (*Result, error) {
	if errs := c.Validate(); len(errs) > 0 {
		return nil, &ConfigError{Violations: errs}
	}

	total := c.TotalDoses()
	if total > len(pop) {
		return nil, &ConfigError{Violations: []campaign.ValidationError{{
			Field:   "arms",
			Message: fmt.Sprintf("total doses %d exceed population %d", total, len(pop)),
			Code:    campaign.ErrCodeDosesExceedPop,
		}}}
	}

	rng := s.Rng
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	selector := s.Selector
	if selector == nil {
		selector = UniformSelector{Rng: rng}
	}
	tokenGen := s.TokenGen
	if tokenGen == nil {
		tokenGen = UUIDv7Generator{}
	}

	picks, err := selector.Select(len(pop), total)
	if err != nil {
		return nil, fmt.Errorf("select citizens: %w", err)
	}
	if err := verifySelection(picks, len(pop), total); err != nil {
		return nil, fmt.Errorf("select citizens: %w", err)
	}

	result := &Result{
		RunID:      tokenGen.Generate(),
		Vaccinated: total,
	}

	if s.Recorder != nil {
		if err := s.Recorder.RecordRun(ctx, result.RunID, len(pop), total); err != nil {
			return nil, fmt.Errorf("record run: %w", err)
		}
	}

	clock := NewClock()
	offset := 0
	for _, arm := range c.Arms {
		count := ArmCount{Name: arm.Name, FirstDoses: arm.Doses}

		for _, idx := range picks[offset : offset+arm.Doses] {
			citizen := pop[idx]
			citizen.FirstDose = true
			citizen.Vaccine = arm.Name

			doses := 1
			if rng.Float64() < c.SecondDoseRate {
				citizen.SecondDose = true
				count.SecondDoses++
				doses = 2
			}

			if s.Recorder != nil {
				if err := s.Recorder.RecordDose(ctx, result.RunID, clock.Next(), citizen.ID, arm.Name, doses); err != nil {
					return nil, fmt.Errorf("record dose: %w", err)
				}
			}
		}

		offset += arm.Doses
		result.ByArm = append(result.ByArm, count)
	}

	return result, nil
}

// verifySelection checks that a selection holds exactly k distinct indices
// within [0, n). An out-of-contract Selector is a programming error, but a
// silent duplicate would corrupt arm disjointness, so it is rejected here.
func verifySelection(picks []int, n, k int) error {
	if len(picks) != k {
		return fmt.Errorf("selector returned %d indices, want %d", len(picks), k)
	}
	seen := make(map[int]bool, len(picks))
	for _, idx := range picks {
		if idx < 0 || idx >= n {
			return fmt.Errorf("selector returned index %d out of range [0, %d)", idx, n)
		}
		if seen[idx] {
			return fmt.Errorf("selector returned duplicate index %d", idx)
		}
		seen[idx] = true
	}
	return nil
}
