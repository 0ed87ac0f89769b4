package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/vaxsim/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Filter string // scenario filter (glob pattern)
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run conformance scenarios",
		Long: `Run conformance scenarios against the simulation pipeline.

Each YAML scenario pins the randomness (seed or explicit selection),
runs the full pipeline, and asserts on category counts, citizen
statuses, and recorded ledger events.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  vaxsim test ./scenarios
  vaxsim test ./scenarios --filter "reference-*"
  vaxsim test ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")

	return cmd
}

func runScenarios(opts *TestOptions, scenariosDir string, cmd *cobra.Command) error {
	if _, err := os.Stat(scenariosDir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", scenariosDir))
	}

	scenarioFiles, err := findScenarioFiles(scenariosDir, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find scenarios", err)
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if len(scenarioFiles) == 0 {
		if opts.Format == "json" {
			return formatter.Success(TestResult{Scenarios: []ScenarioResult{}})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No scenarios found.")
		return nil
	}

	testResult := TestResult{Total: len(scenarioFiles)}
	for _, file := range scenarioFiles {
		sr := runOneScenario(file)
		if sr.Pass {
			testResult.Passed++
		} else {
			testResult.Failed++
		}
		testResult.Scenarios = append(testResult.Scenarios, sr)

		if opts.Format != "json" {
			status := "PASS"
			if !sr.Pass {
				status = "FAIL"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", status, sr.Name)
			for _, e := range sr.Errors {
				fmt.Fprintf(cmd.OutOrStdout(), "      %s\n", e)
			}
		}
	}

	if opts.Format == "json" {
		if err := formatter.Success(testResult); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d passed, %d failed, %d total\n",
			testResult.Passed, testResult.Failed, testResult.Total)
	}

	if testResult.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", testResult.Failed))
	}
	return nil
}

// runOneScenario loads and executes a single scenario file.
// Load and harness errors count as failures rather than aborting the batch.
func runOneScenario(path string) ScenarioResult {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return ScenarioResult{Name: name, Pass: false, Errors: []string{err.Error()}}
	}

	result, err := harness.Run(scenario)
	if err != nil {
		return ScenarioResult{Name: scenario.Name, Pass: false, Errors: []string{err.Error()}}
	}

	return ScenarioResult{Name: scenario.Name, Pass: result.Pass, Errors: result.Errors}
}

// findScenarioFiles returns YAML scenario files in a directory, sorted
// by name, optionally filtered by a glob pattern on the base name.
func findScenarioFiles(dir, filter string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		if filter != "" {
			matched, err := filepath.Match(filter, strings.TrimSuffix(name, ext))
			if err != nil {
				return nil, fmt.Errorf("invalid filter %q: %w", filter, err)
			}
			if !matched {
				continue
			}
		}
		files = append(files, filepath.Join(dir, name))
	}

	sort.Strings(files)
	return files, nil
}
