package timeline

import (
	"fmt"
	"strings"
)

// CycleError reports circular dependencies found during graph
// validation. It is returned as a value, never panicked: a cyclic
// graph is a data condition the host renders, not a crash.
type CycleError struct {
	// Cycles holds each detected cycle as an ordered task-ID
	// sequence, the repeated task first.
	Cycles [][]string
}

func (e *CycleError) Error() string {
	if len(e.Cycles) == 0 {
		return "dependency cycle detected"
	}
	parts := make([]string, len(e.Cycles))
	for i, c := range e.Cycles {
		parts[i] = strings.Join(c, " → ")
	}
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(parts, "; "))
}
