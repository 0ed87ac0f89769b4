package harness

import (
	"context"
	"strings"

	"github.com/roach88/vaxsim/internal/census"
	"github.com/roach88/vaxsim/internal/ledger"
	"github.com/roach88/vaxsim/internal/sim"
	"github.com/roach88/vaxsim/internal/stats"
)

// assertExpectedError checks that the simulation failed with an error
// containing the expected substring.
func assertExpectedError(result *Result, want string, err error) {
	if err == nil {
		result.fail("expected error containing %q, but simulation succeeded", want)
		return
	}
	if !strings.Contains(err.Error(), want) {
		result.fail("expected error containing %q, got %q", want, err.Error())
	}
}

// assertCategories checks expected member counts per category label.
// Subset match - categories the scenario doesn't mention are ignored.
func assertCategories(result *Result, want map[string]int, categories []stats.Category) {
	byLabel := make(map[string]int, len(categories))
	for _, cat := range categories {
		byLabel[cat.Label] = len(cat.Citizens)
	}

	for label, count := range want {
		got, ok := byLabel[label]
		if !ok {
			result.fail("category %q not present in partition", label)
			continue
		}
		if got != count {
			result.fail("category %q has %d citizens, want %d", label, got, count)
		}
	}
}

// assertStatuses checks individual citizens' rendered status strings.
func assertStatuses(result *Result, want []StatusExpect, pop []*census.Citizen) {
	for _, expect := range want {
		if expect.ID < 1 || expect.ID > len(pop) {
			result.fail("status assertion references citizen %d outside population of %d", expect.ID, len(pop))
			continue
		}
		// ids are 1..N in generation order
		got := pop[expect.ID-1].Status()
		if got != expect.Status {
			result.fail("citizen %d has status %q, want %q", expect.ID, got, expect.Status)
		}
	}
}

// assertLedger cross-checks the recorded dose events against the
// simulation result: one event per first dose, per-vaccine counts equal
// to the arm summaries.
func assertLedger(ctx context.Context, result *Result, led *ledger.Ledger, simResult *sim.Result) {
	events, err := led.DoseEvents(ctx, simResult.RunID)
	if err != nil {
		result.fail("read ledger events: %v", err)
		return
	}
	if len(events) != simResult.Vaccinated {
		result.fail("ledger holds %d dose events, want %d", len(events), simResult.Vaccinated)
	}

	counts, err := led.CountByVaccine(ctx, simResult.RunID)
	if err != nil {
		result.fail("read ledger counts: %v", err)
		return
	}
	byVaccine := make(map[string]ledger.VaccineCount, len(counts))
	for _, c := range counts {
		byVaccine[c.Vaccine] = c
	}
	for _, arm := range simResult.ByArm {
		if arm.FirstDoses == 0 {
			continue
		}
		got, ok := byVaccine[arm.Name]
		if !ok {
			result.fail("ledger has no events for vaccine %q", arm.Name)
			continue
		}
		if got.FirstDoses != arm.FirstDoses || got.SecondDoses != arm.SecondDoses {
			result.fail("ledger counts for %q are %d/%d, want %d/%d",
				arm.Name, got.FirstDoses, got.SecondDoses, arm.FirstDoses, arm.SecondDoses)
		}
	}
}
