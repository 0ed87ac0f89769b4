// Package stats partitions a population into reporting categories.
//
// Categories are a derived view, recomputed from scratch on every call.
// They are disjoint by construction: each citizen lands in exactly one
// category, so the category sizes always sum to the population size.
package stats

import (
	"fmt"

	"github.com/roach88/vaxsim/internal/campaign"
	"github.com/roach88/vaxsim/internal/census"
)

// Fixed category labels.
const (
	LabelUnvaccinated = "Unvaccinated"
	LabelBothDoses    = "Both doses"
)

// OneDoseLabel returns the label of the partial-vaccination category for
// a vaccine arm.
func OneDoseLabel(vaccine string) string {
	return fmt.Sprintf("%s, one dose only", vaccine)
}

// Category is a named list of citizens satisfying the category predicate
// at partition time.
type Category struct {
	Label    string            `json:"label"`
	Citizens []*census.Citizen `json:"citizens"`
}

// Partition splits the population into categories, in fixed order:
//
//  1. Unvaccinated (no first dose)
//  2. Both doses (vaccine-type-agnostic)
//  3. One "{arm}, one dose only" category per arm, in declaration order
//
// Empty categories are kept in place so reports always show the full
// breakdown. An empty population yields all-empty categories.
func Partition(pop []*census.Citizen, arms []campaign.Arm) []Category {
	categories := make([]Category, 0, 2+len(arms))
	categories = append(categories,
		Category{Label: LabelUnvaccinated, Citizens: []*census.Citizen{}},
		Category{Label: LabelBothDoses, Citizens: []*census.Citizen{}},
	)

	// arm name -> category index for the one-dose-only buckets
	armIndex := make(map[string]int, len(arms))
	for _, arm := range arms {
		armIndex[arm.Name] = len(categories)
		categories = append(categories, Category{
			Label:    OneDoseLabel(arm.Name),
			Citizens: []*census.Citizen{},
		})
	}

	for _, c := range pop {
		idx := 0
		switch {
		case !c.FirstDose:
			idx = 0
		case c.SecondDose:
			idx = 1
		default:
			i, ok := armIndex[c.Vaccine]
			if !ok {
				// Vaccinated with a type outside the campaign arms.
				// Cannot happen when the simulator produced the
				// population; skip rather than misfile.
				continue
			}
			idx = i
		}
		categories[idx].Citizens = append(categories[idx].Citizens, c)
	}

	return categories
}
