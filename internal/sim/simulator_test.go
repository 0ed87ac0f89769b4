package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vaxsim/internal/campaign"
	"github.com/roach88/vaxsim/internal/census"
	"github.com/roach88/vaxsim/internal/testutil"
)

func referenceCampaign(pop, pfizer, astra int) campaign.Campaign {
	return campaign.Campaign{
		Population: pop,
		Arms: []campaign.Arm{
			{Name: "Pfizer", Doses: pfizer},
			{Name: "AstraZeneca", Doses: astra},
		},
		SecondDoseRate: 0.5,
	}
}

func TestRunDoseCounts(t *testing.T) {
	pop, err := census.Generate(500)
	require.NoError(t, err)

	s := &Simulator{Rng: testutil.Rng(1)}
	result, err := s.Run(context.Background(), pop, referenceCampaign(500, 75, 75))
	require.NoError(t, err)

	assert.Equal(t, 150, result.Vaccinated)
	require.Len(t, result.ByArm, 2)
	assert.Equal(t, "Pfizer", result.ByArm[0].Name)
	assert.Equal(t, 75, result.ByArm[0].FirstDoses)
	assert.Equal(t, "AstraZeneca", result.ByArm[1].Name)
	assert.Equal(t, 75, result.ByArm[1].FirstDoses)

	pfizer, astra, unvaccinated := 0, 0, 0
	for _, c := range pop {
		switch {
		case !c.FirstDose:
			unvaccinated++
			assert.False(t, c.SecondDose)
			assert.Empty(t, c.Vaccine)
		case c.Vaccine == "Pfizer":
			pfizer++
		case c.Vaccine == "AstraZeneca":
			astra++
		default:
			t.Fatalf("citizen %d has unexpected vaccine %q", c.ID, c.Vaccine)
		}
	}
	assert.Equal(t, 75, pfizer)
	assert.Equal(t, 75, astra)
	assert.Equal(t, 350, unvaccinated)
}

func TestRunArmsDisjoint(t *testing.T) {
	pop, err := census.Generate(100)
	require.NoError(t, err)

	s := &Simulator{Rng: testutil.Rng(7)}
	_, err = s.Run(context.Background(), pop, referenceCampaign(100, 30, 40))
	require.NoError(t, err)

	// A citizen holds exactly one vaccine type, so disjointness reduces
	// to the per-type counts adding up.
	byVaccine := map[string]int{}
	for _, c := range pop {
		if c.FirstDose {
			byVaccine[c.Vaccine]++
		}
	}
	assert.Equal(t, 30, byVaccine["Pfizer"])
	assert.Equal(t, 40, byVaccine["AstraZeneca"])
}

func TestRunFixedSelection(t *testing.T) {
	pop, err := census.Generate(10)
	require.NoError(t, err)

	s := &Simulator{
		Rng:      testutil.Rng(1),
		Selector: testutil.FixedSelector{Indices: []int{0, 1, 2, 3, 4}},
	}
	_, err = s.Run(context.Background(), pop, referenceCampaign(10, 3, 2))
	require.NoError(t, err)

	for _, c := range pop[:3] {
		assert.True(t, c.FirstDose)
		assert.Equal(t, "Pfizer", c.Vaccine)
	}
	for _, c := range pop[3:5] {
		assert.True(t, c.FirstDose)
		assert.Equal(t, "AstraZeneca", c.Vaccine)
	}
	for _, c := range pop[5:] {
		assert.False(t, c.FirstDose)
		assert.Empty(t, c.Vaccine)
	}
}

func TestRunSecondDoseRateExtremes(t *testing.T) {
	ctx := context.Background()

	pop, err := census.Generate(20)
	require.NoError(t, err)
	c := referenceCampaign(20, 5, 5)
	c.SecondDoseRate = 1.0
	s := &Simulator{Rng: testutil.Rng(3)}
	result, err := s.Run(ctx, pop, c)
	require.NoError(t, err)
	assert.Equal(t, 5, result.ByArm[0].SecondDoses)
	assert.Equal(t, 5, result.ByArm[1].SecondDoses)

	pop, err = census.Generate(20)
	require.NoError(t, err)
	c.SecondDoseRate = 0.0
	result, err = s.Run(ctx, pop, c)
	require.NoError(t, err)
	assert.Zero(t, result.ByArm[0].SecondDoses)
	assert.Zero(t, result.ByArm[1].SecondDoses)
	for _, cit := range pop {
		assert.False(t, cit.SecondDose)
	}
}

func TestRunDosesExceedPopulation(t *testing.T) {
	pop, err := census.Generate(10)
	require.NoError(t, err)

	s := &Simulator{Rng: testutil.Rng(1)}
	_, err = s.Run(context.Background(), pop, referenceCampaign(10, 8, 5))
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.Len(t, cfgErr.Violations, 1)
	assert.Equal(t, campaign.ErrCodeDosesExceedPop, cfgErr.Violations[0].Code)
}

func TestRunInvalidRate(t *testing.T) {
	pop, err := census.Generate(10)
	require.NoError(t, err)

	c := referenceCampaign(10, 2, 2)
	c.SecondDoseRate = 2.0
	s := &Simulator{Rng: testutil.Rng(1)}
	_, err = s.Run(context.Background(), pop, c)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Error(), "RATE_OUT_OF_RANGE")
}

func TestRunRejectsDuplicateSelection(t *testing.T) {
	pop, err := census.Generate(10)
	require.NoError(t, err)

	s := &Simulator{
		Rng:      testutil.Rng(1),
		Selector: testutil.FixedSelector{Indices: []int{0, 1, 1, 2, 3}},
	}
	_, err = s.Run(context.Background(), pop, referenceCampaign(10, 3, 2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate index 1")

	// Fail-fast: no citizen was mutated.
	for _, c := range pop {
		assert.False(t, c.FirstDose)
	}
}

func TestRunRejectsShortSelection(t *testing.T) {
	pop, err := census.Generate(10)
	require.NoError(t, err)

	s := &Simulator{
		Rng:      testutil.Rng(1),
		Selector: testutil.FixedSelector{Indices: []int{0, 1}},
	}
	_, err = s.Run(context.Background(), pop, referenceCampaign(10, 3, 2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "returned 2 indices, want 5")
}

func TestRunRejectsOutOfRangeSelection(t *testing.T) {
	pop, err := census.Generate(10)
	require.NoError(t, err)

	s := &Simulator{
		Rng:      testutil.Rng(1),
		Selector: testutil.FixedSelector{Indices: []int{0, 1, 2, 3, 10}},
	}
	_, err = s.Run(context.Background(), pop, referenceCampaign(10, 3, 2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestRunEmptyPopulation(t *testing.T) {
	c := campaign.Campaign{
		Population:     0,
		Arms:           []campaign.Arm{{Name: "Pfizer", Doses: 0}, {Name: "AstraZeneca", Doses: 0}},
		SecondDoseRate: 0.5,
	}
	s := &Simulator{Rng: testutil.Rng(1)}
	result, err := s.Run(context.Background(), nil, c)
	require.NoError(t, err)
	assert.Zero(t, result.Vaccinated)
}

func TestRunUsesTokenGenerator(t *testing.T) {
	pop, err := census.Generate(10)
	require.NoError(t, err)

	s := &Simulator{
		Rng:      testutil.Rng(1),
		TokenGen: testutil.NewFixedTokens("run-fixed"),
	}
	result, err := s.Run(context.Background(), pop, referenceCampaign(10, 3, 2))
	require.NoError(t, err)
	assert.Equal(t, "run-fixed", result.RunID)
}

type doseEvent struct {
	runID     string
	seq       int64
	citizenID int
	vaccine   string
	doses     int
}

type captureRecorder struct {
	runs   []string
	events []doseEvent
	err    error
}

func (r *captureRecorder) RecordRun(_ context.Context, runID string, population, vaccinated int) error {
	if r.err != nil {
		return r.err
	}
	r.runs = append(r.runs, runID)
	return nil
}

func (r *captureRecorder) RecordDose(_ context.Context, runID string, seq int64, citizenID int, vaccine string, doses int) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, doseEvent{runID, seq, citizenID, vaccine, doses})
	return nil
}

func TestRunRecordsDoseEvents(t *testing.T) {
	pop, err := census.Generate(10)
	require.NoError(t, err)

	rec := &captureRecorder{}
	s := &Simulator{
		Rng:      testutil.Rng(1),
		Selector: testutil.FixedSelector{Indices: []int{0, 1, 2, 3, 4}},
		TokenGen: testutil.NewFixedTokens("run-1"),
		Recorder: rec,
	}
	_, err = s.Run(context.Background(), pop, referenceCampaign(10, 3, 2))
	require.NoError(t, err)

	require.Equal(t, []string{"run-1"}, rec.runs)
	require.Len(t, rec.events, 5)
	for i, ev := range rec.events {
		assert.Equal(t, "run-1", ev.runID)
		assert.Equal(t, int64(i+1), ev.seq)
		assert.Equal(t, i+1, ev.citizenID)
	}
	assert.Equal(t, "Pfizer", rec.events[0].vaccine)
	assert.Equal(t, "AstraZeneca", rec.events[4].vaccine)
}

func TestRunRecorderFailure(t *testing.T) {
	pop, err := census.Generate(10)
	require.NoError(t, err)

	rec := &captureRecorder{err: errors.New("disk full")}
	s := &Simulator{Rng: testutil.Rng(1), Recorder: rec}
	_, err = s.Run(context.Background(), pop, referenceCampaign(10, 3, 2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record run")
	assert.Contains(t, err.Error(), "disk full")
}

func TestUniformSelectorTooMany(t *testing.T) {
	sel := UniformSelector{Rng: testutil.Rng(1)}
	_, err := sel.Select(5, 6)
	require.Error(t, err)
}

func TestClockMonotonic(t *testing.T) {
	c := NewClock()
	assert.Equal(t, int64(0), c.Current())
	assert.Equal(t, int64(1), c.Next())
	assert.Equal(t, int64(2), c.Next())
	assert.Equal(t, int64(2), c.Current())
}
