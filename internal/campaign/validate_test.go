package campaign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codes(errs []ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Code
	}
	return out
}

func TestValidateDefaultCampaign(t *testing.T) {
	assert.Empty(t, Default().Validate())
}

func TestValidateNegativePopulation(t *testing.T) {
	c := Campaign{Population: -1, Arms: []Arm{{Name: "Pfizer", Doses: 0}}, SecondDoseRate: 0.5}
	assert.Contains(t, codes(c.Validate()), ErrCodePopulationNegative)
}

func TestValidateNoArms(t *testing.T) {
	c := Campaign{Population: 10, SecondDoseRate: 0.5}
	assert.Contains(t, codes(c.Validate()), ErrCodeNoArms)
}

func TestValidateDosesExceedPopulation(t *testing.T) {
	c := Campaign{
		Population:     10,
		Arms:           []Arm{{Name: "Pfizer", Doses: 8}, {Name: "AstraZeneca", Doses: 5}},
		SecondDoseRate: 0.5,
	}
	errs := c.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, ErrCodeDosesExceedPop, errs[0].Code)
	assert.Contains(t, errs[0].Message, "total doses 13 exceed population 10")
}

func TestValidateDuplicateArmName(t *testing.T) {
	c := Campaign{
		Population:     100,
		Arms:           []Arm{{Name: "Pfizer", Doses: 5}, {Name: "Pfizer", Doses: 5}},
		SecondDoseRate: 0.5,
	}
	assert.Contains(t, codes(c.Validate()), ErrCodeArmNameDuplicate)
}

func TestValidateEmptyArmName(t *testing.T) {
	c := Campaign{Population: 100, Arms: []Arm{{Name: "", Doses: 5}}, SecondDoseRate: 0.5}
	assert.Contains(t, codes(c.Validate()), ErrCodeArmNameEmpty)
}

func TestValidateNegativeDoses(t *testing.T) {
	c := Campaign{Population: 100, Arms: []Arm{{Name: "Pfizer", Doses: -5}}, SecondDoseRate: 0.5}
	assert.Contains(t, codes(c.Validate()), ErrCodeDosesNegative)
}

func TestValidateRateOutOfRange(t *testing.T) {
	c := Campaign{Population: 100, Arms: []Arm{{Name: "Pfizer", Doses: 5}}, SecondDoseRate: 1.5}
	assert.Contains(t, codes(c.Validate()), ErrCodeRateOutOfRange)

	c.SecondDoseRate = -0.1
	assert.Contains(t, codes(c.Validate()), ErrCodeRateOutOfRange)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	c := Campaign{
		Population:     -1,
		Arms:           []Arm{{Name: "", Doses: -2}},
		SecondDoseRate: 2.0,
	}
	errs := c.Validate()
	assert.GreaterOrEqual(t, len(errs), 4)
}

func TestTotalDoses(t *testing.T) {
	assert.Equal(t, 150, Default().TotalDoses())
	assert.Equal(t, 0, Campaign{}.TotalDoses())
}
