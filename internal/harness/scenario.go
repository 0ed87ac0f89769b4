// Package harness provides a conformance testing framework for the
// vaccination pipeline.
//
// Scenarios are YAML files that pin every source of randomness (the RNG
// seed or an explicit selection) and assert on the resulting category
// counts and citizen statuses. Each scenario runs the real pipeline -
// generator, simulator, in-memory ledger, statistics - end to end, so a
// passing scenario exercises the same code paths as a production run.
package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/vaxsim/internal/campaign"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Campaign holds the campaign parameters for the run.
	Campaign CampaignSpec `yaml:"campaign"`

	// Seed seeds the RNG. Defaults to 1 so scenarios are deterministic
	// even when the author forgets to set it.
	Seed *uint64 `yaml:"seed,omitempty"`

	// Selection fixes the citizen selection (population indices in
	// arm-prefix order). When set, the selection shuffle is bypassed
	// entirely; the seed then only drives second-dose draws.
	Selection []int `yaml:"selection,omitempty"`

	// Expect holds the assertions to evaluate after the run.
	Expect Expectations `yaml:"expect"`
}

// CampaignSpec mirrors campaign.Campaign in YAML form.
type CampaignSpec struct {
	Population     int       `yaml:"population"`
	Arms           []ArmSpec `yaml:"arms"`
	SecondDoseRate *float64  `yaml:"second_dose_rate,omitempty"`
}

// ArmSpec is one vaccine arm in YAML form.
type ArmSpec struct {
	Name  string `yaml:"name"`
	Doses int    `yaml:"doses"`
}

// Expectations validate the outcome of a scenario run.
type Expectations struct {
	// Categories maps category labels to expected member counts.
	// Subset match - only listed categories are checked.
	Categories map[string]int `yaml:"categories,omitempty"`

	// Statuses asserts individual citizens' status strings.
	Statuses []StatusExpect `yaml:"statuses,omitempty"`

	// Error, when non-empty, expects the simulation itself to fail
	// with an error containing this substring (e.g. configuration
	// errors for dose counts exceeding the population).
	Error string `yaml:"error,omitempty"`
}

// StatusExpect asserts one citizen's rendered status.
type StatusExpect struct {
	ID     int    `yaml:"id"`
	Status string `yaml:"status"`
}

// LoadScenario reads and parses a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if len(s.Campaign.Arms) == 0 {
		return nil, fmt.Errorf("scenario %s: campaign.arms is required", path)
	}

	return &s, nil
}

// toCampaign converts the YAML form to a campaign.Campaign, applying the
// same defaults as the CUE compiler.
func (s *Scenario) toCampaign() campaign.Campaign {
	c := campaign.Campaign{
		Population:     s.Campaign.Population,
		SecondDoseRate: 0.5,
	}
	if s.Campaign.SecondDoseRate != nil {
		c.SecondDoseRate = *s.Campaign.SecondDoseRate
	}
	for _, arm := range s.Campaign.Arms {
		c.Arms = append(c.Arms, campaign.Arm{Name: arm.Name, Doses: arm.Doses})
	}
	return c
}
