// Package task defines the input data model for the scheduling engine:
// tasks, dependency records, and the normalized edge form the graph
// builder consumes. The engine never mutates these values; callers own
// them and hand over immutable snapshots per computation.
package task

import "time"

// Status is a task's workflow state. The set is ordered from least to
// most complete; StatusDone is the only terminal state.
type Status string

const (
	StatusBacklog    Status = "backlog"
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

// Terminal reports whether the status represents a completed task.
func (s Status) Terminal() bool {
	return s == StatusDone
}

// Started reports whether work on the task has begun but not finished.
func (s Status) Started() bool {
	return s == StatusInProgress || s == StatusReview
}

// Valid reports whether s is one of the recognized workflow states.
func (s Status) Valid() bool {
	switch s {
	case StatusBacklog, StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

// DependencyType describes how timing propagates across a dependency
// edge. All four standard CPM relation types are accepted and stored;
// the engine propagates every type with finish-to-start semantics (a
// documented simplification, see internal/cpm).
type DependencyType string

const (
	FinishToStart  DependencyType = "finish_to_start"
	StartToStart   DependencyType = "start_to_start"
	FinishToFinish DependencyType = "finish_to_finish"
	StartToFinish  DependencyType = "start_to_finish"
)

// Valid reports whether t is a recognized dependency type.
func (t DependencyType) Valid() bool {
	switch t {
	case FinishToStart, StartToStart, FinishToFinish, StartToFinish:
		return true
	}
	return false
}

// Task is a single unit of work as provided by the caller. Start and
// Due are optional; the duration resolver estimates a working window
// from EstimateHours when either is absent. ParentID is hierarchy
// display metadata only and plays no part in scheduling.
type Task struct {
	ID            string
	Name          string
	ProjectID     string
	Type          string
	Status        Status
	Priority      int // higher value = higher priority
	Assignee      string
	Start         *time.Time
	Due           *time.Time
	EstimateHours float64
	ActualHours   float64
	Labels        []string
	ParentID      string
	// DependsOn carries legacy inline predecessor IDs stored on the
	// task itself, merged with recorded Dependency rows at ingestion.
	DependsOn []string
	CreatedAt time.Time
}

// Overdue reports whether the task's end date has passed without the
// task reaching a terminal status. end is the resolved end of the
// task's working window.
func (t Task) Overdue(end, now time.Time) bool {
	return end.Before(now) && !t.Status.Terminal()
}

// Dependency is a recorded predecessor/successor relationship between
// two tasks. LagDays is a signed offset in days applied when timing
// propagates across the edge; negative values express lead time.
type Dependency struct {
	ID            string
	PredecessorID string
	SuccessorID   string
	Type          DependencyType
	LagDays       int
}
