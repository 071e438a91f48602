package filter

import (
	"github.com/papapumpkin/horizon/internal/cpm"
	"github.com/papapumpkin/horizon/internal/graph"
	"github.com/papapumpkin/horizon/internal/task"
	"github.com/papapumpkin/horizon/internal/timeline"
)

// Stats summarizes a filter pass.
type Stats struct {
	Total    int // tasks before filtering
	Filtered int // tasks after filtering
	Overdue  int // overdue tasks among the survivors
	Done     int // completed tasks among the survivors
	Critical int // critical tasks in the recomputed subgraph
}

// Result is a filtered timeline plus its statistics.
type Result struct {
	Timeline timeline.TimelineData
	Stats    Stats
}

// Apply filters the timeline with AND semantics, restricts the edge
// list to surviving task IDs, and re-solves CPM over the induced
// subgraph. Resolved windows and progress are carried over from the
// input timeline; only the timing passes rerun, so the filtered view
// stays deterministic with respect to its source.
func Apply(e *timeline.Engine, td *timeline.TimelineData, spec Spec) *Result {
	survivors := make([]timeline.ScheduledTask, 0, len(td.Tasks))
	for _, t := range td.Tasks {
		if spec.Match(t, e.Now) {
			survivors = append(survivors, t)
		}
	}

	byID := make(map[string]*timeline.ScheduledTask, len(survivors))
	stubs := make([]task.Task, len(survivors))
	for i := range survivors {
		s := &survivors[i]
		byID[s.ID] = s
		stubs[i] = task.Task{ID: s.ID}
	}

	var edges []task.Edge
	for _, edge := range td.Edges {
		if byID[edge.PredecessorID] != nil && byID[edge.SuccessorID] != nil {
			edges = append(edges, edge)
		}
	}

	// Re-solve the induced subgraph. The source timeline was already
	// validated acyclic and filtering only removes nodes, so the
	// subgraph cannot contain a cycle.
	g := graph.Build(stubs, edges, graph.Options{})
	windows := make([]cpm.Window, g.Len())
	progress := make([]float64, g.Len())
	for i := range g.Nodes {
		s := byID[g.ID(i)]
		windows[i] = cpm.Window{Start: s.Start, End: s.End, Days: s.Days, Estimated: s.Estimated}
		progress[i] = s.Progress
	}
	res := cpm.Solve(g, windows, progress, e.Epsilon)

	for i := range res.Schedules {
		sched := res.Schedules[i]
		s := byID[sched.TaskID]
		s.EarliestStart = sched.EarliestStart
		s.EarliestFinish = sched.EarliestFinish
		s.LatestStart = sched.LatestStart
		s.LatestFinish = sched.LatestFinish
		s.TotalFloat = sched.TotalFloat
		s.Critical = sched.Critical
	}

	out := timeline.TimelineData{
		Tasks:        survivors,
		Edges:        edges,
		DroppedEdges: td.DroppedEdges,
		Critical:     res.Critical,
		ProjectDays:  res.ProjectDays,
		Range:        e.EffectiveRange(survivors),
		Milestones:   e.Milestones(survivors),
	}
	if len(survivors) > 0 {
		out.ProjectStart = survivors[0].Start
	}

	stats := Stats{
		Total:    len(td.Tasks),
		Filtered: len(survivors),
		Critical: len(res.Critical),
	}
	for _, s := range survivors {
		if s.Overdue(e.Now) {
			stats.Overdue++
		}
		if s.Status.Terminal() {
			stats.Done++
		}
	}

	return &Result{Timeline: out, Stats: stats}
}
