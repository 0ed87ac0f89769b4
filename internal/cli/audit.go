package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/vaxsim/internal/ledger"
)

// AuditOptions holds flags for the audit command.
type AuditOptions struct {
	*RootOptions
	Ledger string
	Run    string // optional - show dose events for one run
}

// AuditRunResult holds the detailed audit output for one run.
type AuditRunResult struct {
	Run    ledger.Run            `json:"run"`
	Counts []ledger.VaccineCount `json:"counts"`
	Events []ledger.DoseEvent    `json:"events"`
}

// AuditListResult holds the run listing output.
type AuditListResult struct {
	Runs []ledger.Run `json:"runs"`
}

// NewAuditCommand creates the audit command.
func NewAuditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AuditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect a recorded dose ledger",
		Long: `Inspect the dose-event ledger written by previous runs.

Without --run, lists all recorded runs. With --run, shows the full
dose-event timeline and per-vaccine counts of that run.

Examples:
  vaxsim audit --ledger ./vaxsim.db
  vaxsim audit --ledger ./vaxsim.db --run 0190b5a0-...
  vaxsim audit --ledger ./vaxsim.db --run 0190b5a0-... --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Ledger, "ledger", "", "path to SQLite dose ledger (required)")
	_ = cmd.MarkFlagRequired("ledger")
	cmd.Flags().StringVar(&opts.Run, "run", "", "run id to inspect")

	return cmd
}

func runAudit(opts *AuditOptions, cmd *cobra.Command) error {
	// Opening a missing path would create an empty database; reject it
	// up front instead.
	if _, err := os.Stat(opts.Ledger); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("ledger not found: %s", opts.Ledger))
	}

	led, err := ledger.Open(opts.Ledger)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open ledger", err)
	}
	defer led.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if opts.Run == "" {
		return auditListRuns(ctx, led, formatter, cmd)
	}
	return auditShowRun(ctx, led, opts.Run, formatter, cmd)
}

func auditListRuns(ctx context.Context, led *ledger.Ledger, formatter *OutputFormatter, cmd *cobra.Command) error {
	runs, err := led.Runs(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read runs", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(AuditListResult{Runs: runs})
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d run(s) recorded:\n", len(runs))
	for _, r := range runs {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s  population=%d vaccinated=%d\n", r.ID, r.Population, r.Vaccinated)
	}
	return nil
}

func auditShowRun(ctx context.Context, led *ledger.Ledger, runID string, formatter *OutputFormatter, cmd *cobra.Command) error {
	runs, err := led.Runs(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read runs", err)
	}
	var run *ledger.Run
	for i := range runs {
		if runs[i].ID == runID {
			run = &runs[i]
			break
		}
	}
	if run == nil {
		return NewExitError(ExitCommandError, fmt.Sprintf("run not found: %s", runID))
	}

	events, err := led.DoseEvents(ctx, runID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read dose events", err)
	}
	counts, err := led.CountByVaccine(ctx, runID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read vaccine counts", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(AuditRunResult{Run: *run, Counts: counts, Events: events})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s: population=%d vaccinated=%d\n", run.ID, run.Population, run.Vaccinated)
	for _, c := range counts {
		fmt.Fprintf(out, "  %s: %d first dose(s), %d completed\n", c.Vaccine, c.FirstDoses, c.SecondDoses)
	}
	fmt.Fprintf(out, "Timeline (%d event(s)):\n", len(events))
	for _, ev := range events {
		fmt.Fprintf(out, "  %4d  citizen %d  %s  %d dose(s)\n", ev.Seq, ev.CitizenID, ev.Vaccine, ev.Doses)
	}
	return nil
}
