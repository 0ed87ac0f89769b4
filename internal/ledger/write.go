package ledger

import (
	"context"
	"fmt"
)

// RecordRun inserts a run record. Uses ON CONFLICT(id) DO NOTHING for
// idempotency - a duplicate run id is silently ignored.
//
// Implements sim.Recorder.
func (l *Ledger) RecordRun(ctx context.Context, runID string, population, vaccinated int) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO runs (id, population, vaccinated)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, runID, population, vaccinated)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// RecordDose inserts a dose event. Uses ON CONFLICT DO NOTHING for
// idempotency - a duplicate (run_id, seq) pair is silently ignored.
// Other constraint violations (unknown run id, doses outside 1..2) still
// return errors.
//
// Implements sim.Recorder.
func (l *Ledger) RecordDose(ctx context.Context, runID string, seq int64, citizenID int, vaccine string, doses int) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO dose_events (run_id, seq, citizen_id, vaccine, doses)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(run_id, seq) DO NOTHING
	`, runID, seq, citizenID, vaccine, doses)
	if err != nil {
		return fmt.Errorf("record dose: %w", err)
	}
	return nil
}
