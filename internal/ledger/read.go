package ledger

import (
	"context"
	"fmt"
)

// Run is one recorded simulation run.
type Run struct {
	ID         string `json:"id"`
	Population int    `json:"population"`
	Vaccinated int    `json:"vaccinated"`
}

// DoseEvent is one recorded dose application.
type DoseEvent struct {
	RunID     string `json:"run_id"`
	Seq       int64  `json:"seq"`
	CitizenID int    `json:"citizen_id"`
	Vaccine   string `json:"vaccine"`
	Doses     int    `json:"doses"`
}

// VaccineCount aggregates dose events per vaccine for one run.
type VaccineCount struct {
	Vaccine     string `json:"vaccine"`
	FirstDoses  int    `json:"first_doses"`
	SecondDoses int    `json:"second_doses"`
}

// Runs returns all recorded runs. Run ids are UUIDv7, so sorting by id
// is creation order.
//
// Returns an empty slice (not nil) when the ledger holds no runs.
func (l *Ledger) Runs(ctx context.Context) ([]Run, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, population, vaccinated
		FROM runs
		ORDER BY id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Population, &r.Vaccinated); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// DoseEvents returns all dose events of a run in application order
// (ORDER BY seq ASC).
//
// Returns an empty slice (not nil) when the run has no events.
func (l *Ledger) DoseEvents(ctx context.Context, runID string) ([]DoseEvent, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT run_id, seq, citizen_id, vaccine, doses
		FROM dose_events
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query dose events: %w", err)
	}
	defer rows.Close()

	events := []DoseEvent{}
	for rows.Next() {
		var ev DoseEvent
		if err := rows.Scan(&ev.RunID, &ev.Seq, &ev.CitizenID, &ev.Vaccine, &ev.Doses); err != nil {
			return nil, fmt.Errorf("scan dose event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dose events: %w", err)
	}

	return events, nil
}

// CountByVaccine aggregates a run's dose events per vaccine, ordered by
// vaccine name for deterministic output.
func (l *Ledger) CountByVaccine(ctx context.Context, runID string) ([]VaccineCount, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT vaccine,
		       COUNT(*),
		       SUM(CASE WHEN doses = 2 THEN 1 ELSE 0 END)
		FROM dose_events
		WHERE run_id = ?
		GROUP BY vaccine
		ORDER BY vaccine COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query vaccine counts: %w", err)
	}
	defer rows.Close()

	counts := []VaccineCount{}
	for rows.Next() {
		var c VaccineCount
		if err := rows.Scan(&c.Vaccine, &c.FirstDoses, &c.SecondDoses); err != nil {
			return nil, fmt.Errorf("scan vaccine count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vaccine counts: %w", err)
	}

	return counts, nil
}
