package params

import (
	"fmt"
	"strings"
)

// Problem is one offending parameter and why it was rejected.
type Problem struct {
	Parameter string
	Reason    string
}

// ValidationError reports every problem found in a set of raw values. It is
// fatal to a run: nothing is compiled or emitted once it is returned.
type ValidationError struct {
	Profile  string
	Problems []Problem
}

func (e *ValidationError) add(param, reason string) {
	e.Problems = append(e.Problems, Problem{Parameter: param, Reason: reason})
}

// HasProblems reports whether any problem was recorded.
func (e *ValidationError) HasProblems() bool {
	return len(e.Problems) > 0
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		p := e.Problems[0]
		return fmt.Sprintf("invalid parameters for profile %q: %s: %s", e.Profile, p.Parameter, p.Reason)
	}
	lines := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		lines[i] = p.Parameter + ": " + p.Reason
	}
	return fmt.Sprintf("invalid parameters for profile %q:\n- %s", e.Profile, strings.Join(lines, "\n- "))
}
