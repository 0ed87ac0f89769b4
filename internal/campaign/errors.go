package campaign

import (
	"fmt"

	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Validation error codes.
const (
	ErrCodePopulationNegative = "POPULATION_NEGATIVE"
	ErrCodeNoArms             = "NO_ARMS"
	ErrCodeArmNameEmpty       = "ARM_NAME_EMPTY"
	ErrCodeArmNameDuplicate   = "ARM_NAME_DUPLICATE"
	ErrCodeDosesNegative      = "DOSES_NEGATIVE"
	ErrCodeDosesExceedPop     = "DOSES_EXCEED_POPULATION"
	ErrCodeRateOutOfRange     = "RATE_OUT_OF_RANGE"
)

// ValidationError describes one violated campaign constraint.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// CompileError describes a failure to parse a campaign definition,
// with CUE position information when available.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return &CompileError{
		Field:   "cue",
		Message: firstErr.Error(),
	}
}
