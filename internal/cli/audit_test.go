package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vaxsim/internal/ledger"
)

// seedLedger writes a small fixture ledger with one recorded run.
func seedLedger(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vaxsim.db")

	led, err := ledger.Open(path)
	require.NoError(t, err)
	defer led.Close()

	ctx := context.Background()
	require.NoError(t, led.RecordRun(ctx, "run-audit", 10, 4))
	require.NoError(t, led.RecordDose(ctx, "run-audit", 1, 3, "Pfizer", 2))
	require.NoError(t, led.RecordDose(ctx, "run-audit", 2, 7, "Pfizer", 1))
	require.NoError(t, led.RecordDose(ctx, "run-audit", 3, 1, "AstraZeneca", 1))
	require.NoError(t, led.RecordDose(ctx, "run-audit", 4, 9, "AstraZeneca", 2))

	return path
}

func TestAuditRequiresLedgerFlag(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewAuditCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ledger")
}

func TestAuditLedgerNotFound(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewAuditCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--ledger", "/nonexistent/vaxsim.db"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ledger not found")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestAuditListRuns(t *testing.T) {
	path := seedLedger(t)

	buf := &bytes.Buffer{}
	cmd := NewAuditCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--ledger", path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "1 run(s) recorded")
	assert.Contains(t, buf.String(), "run-audit  population=10 vaccinated=4")
}

func TestAuditListRunsEmptyLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	led, err := ledger.Open(path)
	require.NoError(t, err)
	require.NoError(t, led.Close())

	buf := &bytes.Buffer{}
	cmd := NewAuditCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--ledger", path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "No runs recorded.")
}

func TestAuditShowRun(t *testing.T) {
	path := seedLedger(t)

	buf := &bytes.Buffer{}
	cmd := NewAuditCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--ledger", path, "--run", "run-audit"})

	require.NoError(t, cmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "Run run-audit: population=10 vaccinated=4")
	assert.Contains(t, out, "Pfizer: 2 first dose(s), 1 completed")
	assert.Contains(t, out, "AstraZeneca: 2 first dose(s), 1 completed")
	assert.Contains(t, out, "Timeline (4 event(s)):")
	assert.Contains(t, out, "citizen 3  Pfizer  2 dose(s)")
}

func TestAuditShowRunJSON(t *testing.T) {
	path := seedLedger(t)

	buf := &bytes.Buffer{}
	cmd := NewAuditCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--ledger", path, "--run", "run-audit"})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string         `json:"status"`
		Data   AuditRunResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "run-audit", resp.Data.Run.ID)
	assert.Equal(t, 10, resp.Data.Run.Population)
	require.Len(t, resp.Data.Events, 4)
	assert.Equal(t, int64(1), resp.Data.Events[0].Seq)
	require.Len(t, resp.Data.Counts, 2)
}

func TestAuditRunNotFound(t *testing.T) {
	path := seedLedger(t)

	buf := &bytes.Buffer{}
	cmd := NewAuditCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--ledger", path, "--run", "no-such-run"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found: no-such-run")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
