package sim

import (
	"strings"

	"github.com/roach88/vaxsim/internal/campaign"
)

// ConfigError reports an invalid campaign configuration detected before
// any citizen is mutated. It carries the individual constraint violations
// so callers can report exactly which rule was broken.
type ConfigError struct {
	Violations []campaign.ValidationError
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if len(e.Violations) == 0 {
		return "invalid campaign configuration"
	}
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}
	return "invalid campaign configuration: " + strings.Join(msgs, "; ")
}
