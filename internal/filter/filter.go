// Package filter applies attribute, search, and date predicates to an
// assembled timeline and recomputes the critical path over the
// surviving subgraph. Removing tasks changes float values, so the
// filtered view's critical set is freshly solved, never carved out of
// the unfiltered one.
package filter

import (
	"strings"
	"time"

	"github.com/papapumpkin/horizon/internal/task"
	"github.com/papapumpkin/horizon/internal/timeline"
)

// Completion buckets group tasks by how far along they are.
type Completion string

const (
	CompletionAny        Completion = ""
	CompletionDone       Completion = "completed"
	CompletionInProgress Completion = "in_progress"
	CompletionNotStarted Completion = "not_started"
)

// Spec is a conjunctive filter: a task survives only when every set
// predicate holds. Zero values leave a predicate unset.
type Spec struct {
	Assignee string
	Status   task.Status
	Priority *int
	Type     string
	// Search matches case-insensitively against name, ID, assignee,
	// and labels.
	Search string
	// OverdueOnly keeps tasks whose window closed before now without
	// the task completing.
	OverdueOnly bool
	// Window keeps tasks whose resolved window overlaps the interval.
	Window     *timeline.DateRange
	Completion Completion
}

// Match reports whether the scheduled task satisfies every set
// predicate. now anchors the overdue test.
func (s Spec) Match(t timeline.ScheduledTask, now time.Time) bool {
	if s.Assignee != "" && t.Assignee != s.Assignee {
		return false
	}
	if s.Status != "" && t.Status != s.Status {
		return false
	}
	if s.Priority != nil && t.Priority != *s.Priority {
		return false
	}
	if s.Type != "" && t.Type != s.Type {
		return false
	}
	if s.OverdueOnly && !t.Overdue(now) {
		return false
	}
	if s.Window != nil {
		if t.Start.After(s.Window.End) || t.End.Before(s.Window.Start) {
			return false
		}
	}
	switch s.Completion {
	case CompletionDone:
		if !t.Status.Terminal() {
			return false
		}
	case CompletionInProgress:
		if !t.Status.Started() {
			return false
		}
	case CompletionNotStarted:
		if t.Status.Terminal() || t.Status.Started() {
			return false
		}
	}
	if s.Search != "" && !matchSearch(t, s.Search) {
		return false
	}
	return true
}

func matchSearch(t timeline.ScheduledTask, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(t.Name), q) ||
		strings.Contains(strings.ToLower(t.ID), q) ||
		strings.Contains(strings.ToLower(t.Assignee), q) {
		return true
	}
	for _, l := range t.Labels {
		if strings.Contains(strings.ToLower(l), q) {
			return true
		}
	}
	return false
}
