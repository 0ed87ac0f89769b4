package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/vaxsim/internal/campaign"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                       `json:"valid"`
	Errors []campaign.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <campaign.cue>",
		Short: "Validate a campaign definition without running it",
		Long: `Compile and validate a CUE campaign definition.

Checks syntax, required fields, and campaign constraints (non-negative
population, unique arm names, total doses within the population,
second-dose rate within [0, 1]) without running a simulation.

Exit codes:
  0 - Campaign is valid
  1 - Campaign is invalid
  2 - Command error (file not found, unparseable CUE)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	c, err := campaign.CompileFile(path)
	if err != nil {
		if outErr := formatter.Error("COMPILE_ERROR", err.Error(), nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitCommandError, "failed to compile campaign", err)
	}
	formatter.VerboseLog("Compiled campaign: %d citizens, %d arm(s)", c.Population, len(c.Arms))

	errs := c.Validate()
	if len(errs) > 0 {
		if opts.Format == "json" {
			if outErr := formatter.Success(ValidationResult{Valid: false, Errors: errs}); outErr != nil {
				return outErr
			}
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Campaign is invalid (%d error(s)):\n", len(errs))
			for _, e := range errs {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", e.Error())
			}
		}
		return NewExitError(ExitFailure, "campaign validation failed")
	}

	if opts.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Campaign is valid: %d citizens, %d vaccine arm(s), %d total dose(s)\n",
		c.Population, len(c.Arms), c.TotalDoses())
	return nil
}
