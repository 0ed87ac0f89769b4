// Package census provides the synthetic population model.
//
// This package contains the Citizen record and the population generator
// only. All other internal packages import census; census imports nothing
// internal. This keeps the population model the foundational layer with
// no circular dependencies.
package census

import "fmt"

// Citizen is a simulated individual with identity and vaccination state.
//
// Identity fields (ID, Name) are assigned once at generation and never
// change. Dose fields are mutated in place by the simulator:
//   - SecondDose is only ever set after FirstDose (enforced by assignment
//     order, not checked).
//   - Vaccine is non-empty iff FirstDose is true.
type Citizen struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	FirstDose  bool   `json:"first_dose"`
	SecondDose bool   `json:"second_dose"`
	Vaccine    string `json:"vaccine,omitempty"`
}

// Status renders the citizen's dose state for reports.
//
// Returns one of:
//   - "Not vaccinated"
//   - "1 dose of {vaccine}"
//   - "2 doses of {vaccine}"
func (c *Citizen) Status() string {
	switch {
	case !c.FirstDose:
		return "Not vaccinated"
	case !c.SecondDose:
		return fmt.Sprintf("1 dose of %s", c.Vaccine)
	default:
		return fmt.Sprintf("2 doses of %s", c.Vaccine)
	}
}
