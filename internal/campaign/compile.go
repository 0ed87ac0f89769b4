package campaign

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// CompileFile reads and compiles a CUE campaign definition from disk.
//
// The file must contain a top-level "campaign" struct, e.g.:
//
//	campaign: {
//		population: 500
//		arms: [
//			{ name: "Pfizer", doses: 75 },
//			{ name: "AstraZeneca", doses: 75 },
//		]
//		second_dose_rate: 0.5
//	}
//
// second_dose_rate is optional and defaults to 0.5.
func CompileFile(path string) (*Campaign, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read campaign file: %w", err)
	}

	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	campaignVal := value.LookupPath(cue.ParsePath("campaign"))
	if !campaignVal.Exists() {
		return nil, &CompileError{
			Field:   "campaign",
			Message: "top-level campaign struct is required",
			Pos:     value.Pos(),
		}
	}

	return Compile(campaignVal)
}

// Compile parses a CUE value into a Campaign.
// Uses the CUE SDK's Go API directly (not a CLI subprocess).
//
// The CUE value should be the campaign struct itself:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`campaign: { ... }`)
//	c, err := Compile(v.LookupPath(cue.ParsePath("campaign")))
func Compile(v cue.Value) (*Campaign, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	c := &Campaign{SecondDoseRate: 0.5}

	// Parse population (required)
	popVal := v.LookupPath(cue.ParsePath("population"))
	if !popVal.Exists() {
		return nil, &CompileError{
			Field:   "population",
			Message: "population is required",
			Pos:     v.Pos(),
		}
	}
	pop, err := popVal.Int64()
	if err != nil {
		return nil, formatCUEError(err)
	}
	c.Population = int(pop)

	// Parse arms (required, at least one)
	arms, err := parseArms(v)
	if err != nil {
		return nil, err
	}
	if len(arms) == 0 {
		return nil, &CompileError{
			Field:   "arms",
			Message: "at least one vaccine arm is required",
			Pos:     v.Pos(),
		}
	}
	c.Arms = arms

	// Parse second_dose_rate (optional)
	rateVal := v.LookupPath(cue.ParsePath("second_dose_rate"))
	if rateVal.Exists() {
		rate, err := rateVal.Float64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		c.SecondDoseRate = rate
	}

	return c, nil
}

// parseArms parses the arms list from a campaign CUE value.
func parseArms(v cue.Value) ([]Arm, error) {
	armsVal := v.LookupPath(cue.ParsePath("arms"))
	if !armsVal.Exists() {
		return nil, &CompileError{
			Field:   "arms",
			Message: "arms list is required",
			Pos:     v.Pos(),
		}
	}

	iter, err := armsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var arms []Arm
	for iter.Next() {
		arm, err := parseArm(iter.Value())
		if err != nil {
			return nil, err
		}
		arms = append(arms, arm)
	}

	return arms, nil
}

// parseArm parses a single vaccine arm.
func parseArm(v cue.Value) (Arm, error) {
	var arm Arm

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return arm, &CompileError{
			Field:   "arms.name",
			Message: "arm name is required",
			Pos:     v.Pos(),
		}
	}
	name, err := nameVal.String()
	if err != nil {
		return arm, formatCUEError(err)
	}
	arm.Name = name

	dosesVal := v.LookupPath(cue.ParsePath("doses"))
	if !dosesVal.Exists() {
		return arm, &CompileError{
			Field:   "arms.doses",
			Message: "arm doses is required",
			Pos:     v.Pos(),
		}
	}
	doses, err := dosesVal.Int64()
	if err != nil {
		return arm, formatCUEError(err)
	}
	arm.Doses = int(doses)

	return arm, nil
}
