// Package campaign defines vaccination campaign parameters and compiles
// campaign definition files written in CUE.
//
// A campaign names the population size, the vaccine arms (name plus number
// of first doses to administer), and the probability that a vaccinated
// citizen returns for the second dose. The built-in default campaign is
// compiled in; a CUE file can replace it per run.
package campaign

// Arm is a single vaccine arm of the campaign: a vaccine name and the
// number of citizens that receive a first dose of it.
type Arm struct {
	Name  string `json:"name"`
	Doses int    `json:"doses"`
}

// Campaign holds the full parameter set for one simulation run.
type Campaign struct {
	// Population is the number of citizens to generate.
	Population int `json:"population"`

	// Arms lists the vaccine arms in declaration order. Order matters:
	// selection prefixes and report categories follow it.
	Arms []Arm `json:"arms"`

	// SecondDoseRate is the per-citizen probability of completing the
	// regimen with a second dose. Must be within [0, 1].
	SecondDoseRate float64 `json:"second_dose_rate"`
}

// Default returns the built-in reference campaign: 500 citizens,
// 75 Pfizer and 75 AstraZeneca first doses, and a fair coin flip for
// the second dose.
func Default() Campaign {
	return Campaign{
		Population: 500,
		Arms: []Arm{
			{Name: "Pfizer", Doses: 75},
			{Name: "AstraZeneca", Doses: 75},
		},
		SecondDoseRate: 0.5,
	}
}

// TotalDoses returns the number of first doses across all arms, i.e. the
// number of distinct citizens the campaign will vaccinate.
func (c Campaign) TotalDoses() int {
	total := 0
	for _, arm := range c.Arms {
		total += arm.Doses
	}
	return total
}
