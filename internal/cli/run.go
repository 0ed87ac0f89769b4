package cli

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/vaxsim/internal/campaign"
	"github.com/roach88/vaxsim/internal/census"
	"github.com/roach88/vaxsim/internal/ledger"
	"github.com/roach88/vaxsim/internal/report"
	"github.com/roach88/vaxsim/internal/sim"
	"github.com/roach88/vaxsim/internal/stats"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	CampaignFile string
	Seed         uint64
	Ledger       string
	Sample       int

	// Simulator allows overriding simulator internals (for testing).
	// If nil, a default Simulator is built from the flags.
	Simulator *sim.Simulator
}

// RunOutput is the JSON payload of a successful run.
type RunOutput struct {
	RunID      string         `json:"run_id"`
	Vaccinated int            `json:"vaccinated"`
	ByArm      []sim.ArmCount `json:"by_arm"`
	Summary    report.Summary `json:"summary"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate a vaccination campaign and report statistics",
		Long: `Simulate a vaccination campaign over a synthetic population.

Generates the population, assigns vaccine doses at random per the
campaign definition (built-in default: 500 citizens, 75 Pfizer and
75 AstraZeneca first doses, fair coin flip for the second dose), and
prints per-category statistics with example citizens.

Runs are non-deterministic unless --seed is given. Dose events are
recorded to an in-memory ledger unless --ledger points at a file.

Examples:
  vaxsim run
  vaxsim run --seed 42
  vaxsim run --campaign ./campaign.cue --ledger ./vaxsim.db
  vaxsim run --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.CampaignFile, "campaign", "", "path to CUE campaign definition (default: built-in campaign)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "RNG seed for reproducible runs (default: entropy)")
	cmd.Flags().StringVar(&opts.Ledger, "ledger", "", "path to SQLite dose ledger (default: in-memory)")
	cmd.Flags().IntVar(&opts.Sample, "sample", report.DefaultSampleSize, "max example citizens listed per category")

	return cmd
}

func runSimulation(opts *RunOptions, cmd *cobra.Command) error {
	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	// Resolve campaign: built-in default, or compiled from a CUE file
	c := campaign.Default()
	if opts.CampaignFile != "" {
		slog.Debug("compiling campaign", "path", opts.CampaignFile)
		compiled, err := campaign.CompileFile(opts.CampaignFile)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to compile campaign", err)
		}
		c = *compiled
	}
	if errs := c.Validate(); len(errs) > 0 {
		return WrapExitError(ExitCommandError, "invalid campaign", &sim.ConfigError{Violations: errs})
	}

	// Open ledger (in-memory unless a path was given)
	ledgerPath := opts.Ledger
	if ledgerPath == "" {
		ledgerPath = ledger.InMemory
	}
	led, err := ledger.Open(ledgerPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open ledger", err)
	}
	defer func() {
		if closeErr := led.Close(); closeErr != nil {
			slog.Error("error closing ledger", "error", closeErr)
		}
	}()

	pop, err := census.Generate(c.Population)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to generate population", err)
	}
	slog.Debug("population generated", "citizens", len(pop))

	simulator := opts.Simulator
	if simulator == nil {
		simulator = &sim.Simulator{Recorder: led}
		if cmd.Flags().Changed("seed") {
			simulator.Rng = rand.New(rand.NewPCG(opts.Seed, opts.Seed))
		}
	} else if simulator.Recorder == nil {
		simulator.Recorder = led
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := simulator.Run(ctx, pop, c)
	if err != nil {
		return WrapExitError(ExitCommandError, "simulation failed", err)
	}
	slog.Info("simulation complete",
		"run_id", result.RunID,
		"population", len(pop),
		"vaccinated", result.Vaccinated)

	categories := stats.Partition(pop, c.Arms)
	summary := report.Summarize(categories, opts.Sample)

	if opts.Format == "json" {
		formatter := &OutputFormatter{
			Format:    opts.Format,
			Writer:    cmd.OutOrStdout(),
			ErrWriter: cmd.ErrOrStderr(),
			Verbose:   opts.Verbose,
		}
		return formatter.Success(RunOutput{
			RunID:      result.RunID,
			Vaccinated: result.Vaccinated,
			ByArm:      result.ByArm,
			Summary:    summary,
		})
	}

	report.WriteText(cmd.OutOrStdout(), summary)
	return nil
}
