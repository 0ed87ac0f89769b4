package harness

import (
	"context"
	"fmt"

	"github.com/roach88/vaxsim/internal/census"
	"github.com/roach88/vaxsim/internal/ledger"
	"github.com/roach88/vaxsim/internal/report"
	"github.com/roach88/vaxsim/internal/sim"
	"github.com/roach88/vaxsim/internal/stats"
	"github.com/roach88/vaxsim/internal/testutil"
)

// Result holds the outcome of one scenario execution.
type Result struct {
	// Pass is true when every expectation held.
	Pass bool

	// Errors lists failed expectations in evaluation order.
	Errors []string

	// Summary is the report payload of the run (empty when the
	// scenario expects the simulation to fail).
	Summary report.Summary
}

// NewResult creates an empty passing result. Failed assertions flip it.
func NewResult() *Result {
	return &Result{Pass: true}
}

// fail records one failed expectation.
func (r *Result) fail(format string, args ...any) {
	r.Pass = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Run executes a scenario end to end and evaluates its expectations.
//
// Each scenario runs against a fresh in-memory ledger for isolation.
// Deterministic helpers (seeded RNG, fixed selection, fixed run token)
// ensure reproducible results.
//
// Execution flow:
//  1. Generate the population
//  2. Simulate the campaign, recording to an in-memory ledger
//  3. Partition into categories and summarize
//  4. Evaluate expectations against categories, statuses, and ledger
//
// The returned error covers harness mechanics (ledger setup, generation
// failures outside the scenario's control); expectation failures land in
// Result.Errors with Pass == false.
func Run(scenario *Scenario) (*Result, error) {
	ctx := context.Background()
	result := NewResult()

	led, err := ledger.Open(ledger.InMemory)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory ledger: %w", err)
	}
	defer led.Close()

	c := scenario.toCampaign()

	pop, err := census.Generate(c.Population)
	if err != nil {
		if scenario.Expect.Error != "" {
			assertExpectedError(result, scenario.Expect.Error, err)
			return result, nil
		}
		return nil, fmt.Errorf("generate population: %w", err)
	}

	seed := uint64(1)
	if scenario.Seed != nil {
		seed = *scenario.Seed
	}

	simulator := &sim.Simulator{
		Rng:      testutil.Rng(seed),
		TokenGen: testutil.NewFixedTokens("scenario-" + scenario.Name),
		Recorder: led,
	}
	if scenario.Selection != nil {
		simulator.Selector = testutil.FixedSelector{Indices: scenario.Selection}
	}

	simResult, err := simulator.Run(ctx, pop, c)
	if scenario.Expect.Error != "" {
		assertExpectedError(result, scenario.Expect.Error, err)
		return result, nil
	}
	if err != nil {
		result.fail("simulation failed: %v", err)
		return result, nil
	}

	categories := stats.Partition(pop, c.Arms)
	result.Summary = report.Summarize(categories, report.DefaultSampleSize)

	assertCategories(result, scenario.Expect.Categories, categories)
	assertStatuses(result, scenario.Expect.Statuses, pop)
	assertLedger(ctx, result, led, simResult)

	return result, nil
}
