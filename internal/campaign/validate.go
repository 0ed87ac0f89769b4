package campaign

import "fmt"

// Validate checks a campaign against its schema rules.
// Returns all errors found (does not fail-fast).
//
// Rules:
//   - population >= 0
//   - at least one arm, with unique non-empty names
//   - doses >= 0 per arm
//   - total doses <= population (selection without replacement requires it)
//   - second_dose_rate within [0, 1]
func (c Campaign) Validate() []ValidationError {
	var errs []ValidationError

	if c.Population < 0 {
		errs = append(errs, ValidationError{
			Field:   "population",
			Message: fmt.Sprintf("must be non-negative, got %d", c.Population),
			Code:    ErrCodePopulationNegative,
		})
	}

	if len(c.Arms) == 0 {
		errs = append(errs, ValidationError{
			Field:   "arms",
			Message: "at least one vaccine arm is required",
			Code:    ErrCodeNoArms,
		})
	}

	seen := make(map[string]bool, len(c.Arms))
	for i, arm := range c.Arms {
		field := fmt.Sprintf("arms[%d]", i)
		if arm.Name == "" {
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: "arm name must not be empty",
				Code:    ErrCodeArmNameEmpty,
			})
		} else if seen[arm.Name] {
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: fmt.Sprintf("duplicate arm name %q", arm.Name),
				Code:    ErrCodeArmNameDuplicate,
			})
		}
		seen[arm.Name] = true

		if arm.Doses < 0 {
			errs = append(errs, ValidationError{
				Field:   field + ".doses",
				Message: fmt.Sprintf("must be non-negative, got %d", arm.Doses),
				Code:    ErrCodeDosesNegative,
			})
		}
	}

	if total := c.TotalDoses(); c.Population >= 0 && total > c.Population {
		errs = append(errs, ValidationError{
			Field:   "arms",
			Message: fmt.Sprintf("total doses %d exceed population %d", total, c.Population),
			Code:    ErrCodeDosesExceedPop,
		})
	}

	if c.SecondDoseRate < 0 || c.SecondDoseRate > 1 {
		errs = append(errs, ValidationError{
			Field:   "second_dose_rate",
			Message: fmt.Sprintf("must be within [0, 1], got %g", c.SecondDoseRate),
			Code:    ErrCodeRateOutOfRange,
		})
	}

	return errs
}
