package pipeline

import (
	"fmt"
)

// StepFailure reports that one pipeline step's collaborator call failed.
// The step name and underlying cause always travel together to the top level.
type StepFailure struct {
	Step  string
	Cause error
}

func (e *StepFailure) Error() string {
	return fmt.Sprintf("step %q failed: %v", e.Step, e.Cause)
}

func (e *StepFailure) Unwrap() error {
	return e.Cause
}

// InsufficientDataError reports that fewer than two company analyses
// succeeded, so no comparison can be produced.
type InsufficientDataError struct {
	Succeeded int
	Required  int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("need at least %d successful analyses to compare, got %d", e.Required, e.Succeeded)
}
