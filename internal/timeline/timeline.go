// Package timeline composes the graph builder, duration resolver, and
// CPM passes into a single schedule view. The Engine is a stateless
// service: every call is a pure function of the supplied records and
// the injected clock, and nothing is retained between calls.
package timeline

import (
	"sort"
	"time"

	"github.com/papapumpkin/horizon/internal/cpm"
	"github.com/papapumpkin/horizon/internal/graph"
	"github.com/papapumpkin/horizon/internal/task"
)

// Engine computes timelines from task and dependency snapshots. Now is
// injected rather than read from the wall clock so identical inputs
// always produce identical output.
type Engine struct {
	Now               time.Time
	HoursPerDay       float64
	PadDays           int
	DefaultWindowDays int
	Epsilon           float64
}

// New returns an Engine with production defaults: 8-hour working
// days, ±7 day range padding, a 30-day fallback window, and the cpm
// package's float epsilon.
func New(now time.Time) *Engine {
	return &Engine{
		Now:               now,
		HoursPerDay:       cpm.DefaultHoursPerDay,
		PadDays:           7,
		DefaultWindowDays: 30,
		Epsilon:           cpm.Epsilon,
	}
}

// DateRange is a closed calendar interval. When used as a selection
// window, a zero End leaves the interval open-ended on the right.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Options constrains which tasks a build considers.
type Options struct {
	ProjectID string
	Window    *DateRange
}

// ScheduledTask is one task with its resolved window and computed CPM
// fields. Values are immutable once produced.
type ScheduledTask struct {
	ID        string
	Name      string
	ProjectID string
	Type      string
	Status    task.Status
	Priority  int
	Assignee  string
	Labels    []string
	ParentID  string

	Start     time.Time
	End       time.Time
	Days      float64
	Progress  float64
	Estimated bool

	EarliestStart  float64
	EarliestFinish float64
	LatestStart    float64
	LatestFinish   float64
	TotalFloat     float64
	Critical       bool
}

// Overdue reports whether the task's window has closed without the
// task completing, relative to now.
func (s ScheduledTask) Overdue(now time.Time) bool {
	return s.End.Before(now) && !s.Status.Terminal()
}

// TimelineData is the assembled schedule view. Tasks are sorted by
// resolved start date, ties broken by ID. Critical is the sorted set
// of zero-float task IDs; it is a set, not an ordered chain.
type TimelineData struct {
	Tasks        []ScheduledTask
	Edges        []task.Edge
	DroppedEdges []task.Edge
	Critical     []string
	Milestones   []Milestone
	Range        DateRange
	ProjectStart time.Time
	ProjectDays  float64
}

// Task returns the scheduled task with the given ID, or nil.
func (td *TimelineData) Task(id string) *ScheduledTask {
	for i := range td.Tasks {
		if td.Tasks[i].ID == id {
			return &td.Tasks[i]
		}
	}
	return nil
}

// CriticalSet returns the critical IDs as a membership map.
func (td *TimelineData) CriticalSet() map[string]bool {
	set := make(map[string]bool, len(td.Critical))
	for _, id := range td.Critical {
		set[id] = true
	}
	return set
}

// Build selects tasks per opts, validates the dependency graph, runs
// duration resolution and the CPM passes, and assembles the timeline.
// A cyclic graph yields a *CycleError and no timeline: no meaningful
// critical path exists, so none is fabricated.
func (e *Engine) Build(tasks []task.Task, deps []task.Dependency, opts Options) (*TimelineData, error) {
	edges := task.NormalizeEdges(tasks, deps)

	var window *graph.Range
	if opts.Window != nil {
		window = &graph.Range{Start: opts.Window.Start, End: opts.Window.End}
	}
	g := graph.Build(tasks, edges, graph.Options{ProjectID: opts.ProjectID, Window: window})

	if v := g.Validate(); !v.Acyclic {
		return nil, &CycleError{Cycles: v.Cycles}
	}

	windows := make([]cpm.Window, g.Len())
	progress := make([]float64, g.Len())
	for i := range g.Nodes {
		windows[i] = cpm.ResolveWindow(g.Nodes[i].Task, e.Now, e.HoursPerDay)
		progress[i] = cpm.ResolveProgress(g.Nodes[i].Task)
	}

	res := cpm.Solve(g, windows, progress, e.Epsilon)

	td := &TimelineData{
		Tasks:        make([]ScheduledTask, g.Len()),
		Edges:        g.Edges(),
		DroppedEdges: g.Dropped,
		Critical:     res.Critical,
		ProjectDays:  res.ProjectDays,
	}
	for i := range g.Nodes {
		td.Tasks[i] = assemble(g.Nodes[i].Task, windows[i], res.Schedules[i])
	}
	sort.Slice(td.Tasks, func(i, j int) bool {
		a, b := td.Tasks[i], td.Tasks[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		return a.ID < b.ID
	})

	if len(td.Tasks) > 0 {
		td.ProjectStart = td.Tasks[0].Start
	}
	td.Range = e.EffectiveRange(td.Tasks)
	td.Milestones = e.Milestones(td.Tasks)

	return td, nil
}

// assemble flattens a task and its computed schedule into the view row.
func assemble(t task.Task, w cpm.Window, s cpm.Schedule) ScheduledTask {
	return ScheduledTask{
		ID:        t.ID,
		Name:      t.Name,
		ProjectID: t.ProjectID,
		Type:      t.Type,
		Status:    t.Status,
		Priority:  t.Priority,
		Assignee:  t.Assignee,
		Labels:    t.Labels,
		ParentID:  t.ParentID,

		Start:     w.Start,
		End:       w.End,
		Days:      s.Days,
		Progress:  s.Progress,
		Estimated: w.Estimated,

		EarliestStart:  s.EarliestStart,
		EarliestFinish: s.EarliestFinish,
		LatestStart:    s.LatestStart,
		LatestFinish:   s.LatestFinish,
		TotalFloat:     s.TotalFloat,
		Critical:       s.Critical,
	}
}

// EffectiveRange pads the min/max task dates by PadDays on each side.
// With no tasks, it anchors a DefaultWindowDays window at now.
func (e *Engine) EffectiveRange(tasks []ScheduledTask) DateRange {
	if len(tasks) == 0 {
		return DateRange{
			Start: e.Now,
			End:   e.Now.AddDate(0, 0, e.DefaultWindowDays),
		}
	}
	minStart := tasks[0].Start
	maxEnd := tasks[0].End
	for _, t := range tasks[1:] {
		if t.Start.Before(minStart) {
			minStart = t.Start
		}
		if t.End.After(maxEnd) {
			maxEnd = t.End
		}
	}
	return DateRange{
		Start: minStart.AddDate(0, 0, -e.PadDays),
		End:   maxEnd.AddDate(0, 0, e.PadDays),
	}
}
