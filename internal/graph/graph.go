// Package graph builds the dependency graph the scheduling passes run
// on. Tasks are stored in an arena of nodes addressed by integer
// handle, with a side map from task ID to handle; traversals work on
// handles so large graphs avoid per-step map lookups and string
// hashing.
package graph

import (
	"sort"
	"time"

	"github.com/papapumpkin/horizon/internal/task"
)

// EdgeRef is one endpoint's view of a dependency edge, addressed by
// arena handle.
type EdgeRef struct {
	Node    int // handle of the node on the other end
	Type    task.DependencyType
	LagDays int
	Source  task.EdgeSource
}

// Node is one arena slot: a selected task plus its adjacency.
type Node struct {
	Task task.Task
	// Preds lists edges arriving from predecessors; Succs lists edges
	// leaving toward successors. Both are sorted by the neighbor's
	// task ID for deterministic traversal.
	Preds []EdgeRef
	Succs []EdgeRef
}

// Graph is the built dependency graph over a selected task set.
type Graph struct {
	Nodes   []Node
	Handles map[string]int // task ID → arena handle

	// Dropped records edges excluded because one or both endpoints
	// fall outside the selected task set. Dropping is accepted
	// behavior, not an error; it is surfaced so hosts can render it.
	Dropped []task.Edge
}

// Range is a closed date interval used for task selection.
type Range struct {
	Start time.Time
	End   time.Time
}

// Options narrows the task set before the graph is built.
type Options struct {
	// ProjectID, when non-empty, keeps only tasks of that project.
	ProjectID string
	// Window, when non-nil, keeps tasks whose explicit dates overlap
	// the interval. A task with both dates is kept when start ≤
	// Window.End and due ≥ Window.Start; a task with a single date is
	// kept when that date falls inside the window; a task with no
	// explicit dates is always kept, since its window is estimated
	// later and cannot be tested here. A zero Window.End keeps the
	// window open-ended on the right.
	Window *Range
}

// Build selects tasks per opts, normalizes edges restricted to the
// selection, and returns the arena graph. Node order, handle
// assignment, and adjacency order are deterministic for identical
// inputs.
func Build(tasks []task.Task, edges []task.Edge, opts Options) *Graph {
	selected := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if opts.ProjectID != "" && t.ProjectID != opts.ProjectID {
			continue
		}
		if opts.Window != nil && !overlaps(t, *opts.Window) {
			continue
		}
		selected = append(selected, t)
	}
	sort.Slice(selected, func(i, j int) bool { return selected[i].ID < selected[j].ID })

	g := &Graph{
		Nodes:   make([]Node, len(selected)),
		Handles: make(map[string]int, len(selected)),
	}
	for i, t := range selected {
		g.Nodes[i] = Node{Task: t}
		g.Handles[t.ID] = i
	}

	for _, e := range edges {
		from, okFrom := g.Handles[e.PredecessorID]
		to, okTo := g.Handles[e.SuccessorID]
		if !okFrom || !okTo {
			g.Dropped = append(g.Dropped, e)
			continue
		}
		g.Nodes[from].Succs = append(g.Nodes[from].Succs, EdgeRef{
			Node: to, Type: e.Type, LagDays: e.LagDays, Source: e.Source,
		})
		g.Nodes[to].Preds = append(g.Nodes[to].Preds, EdgeRef{
			Node: from, Type: e.Type, LagDays: e.LagDays, Source: e.Source,
		})
	}

	for i := range g.Nodes {
		sortRefs(g, g.Nodes[i].Preds)
		sortRefs(g, g.Nodes[i].Succs)
	}

	return g
}

// Len returns the number of selected tasks in the graph.
func (g *Graph) Len() int {
	return len(g.Nodes)
}

// ID returns the task ID for an arena handle.
func (g *Graph) ID(handle int) string {
	return g.Nodes[handle].Task.ID
}

// Edges flattens the adjacency back into normalized edge records,
// sorted by predecessor then successor ID.
func (g *Graph) Edges() []task.Edge {
	var out []task.Edge
	for from := range g.Nodes {
		for _, ref := range g.Nodes[from].Succs {
			out = append(out, task.Edge{
				PredecessorID: g.ID(from),
				SuccessorID:   g.ID(ref.Node),
				Type:          ref.Type,
				LagDays:       ref.LagDays,
				Source:        ref.Source,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PredecessorID != out[j].PredecessorID {
			return out[i].PredecessorID < out[j].PredecessorID
		}
		return out[i].SuccessorID < out[j].SuccessorID
	})
	return out
}

// overlaps implements the selection window test on explicit dates. A
// zero Range.End leaves the window open-ended on the right.
func overlaps(t task.Task, w Range) bool {
	switch {
	case t.Start != nil && t.Due != nil:
		return beforeEnd(*t.Start, w) && !t.Due.Before(w.Start)
	case t.Start != nil:
		return inRange(*t.Start, w)
	case t.Due != nil:
		return inRange(*t.Due, w)
	default:
		return true
	}
}

func inRange(d time.Time, w Range) bool {
	return !d.Before(w.Start) && beforeEnd(d, w)
}

func beforeEnd(d time.Time, w Range) bool {
	return w.End.IsZero() || !d.After(w.End)
}

func sortRefs(g *Graph, refs []EdgeRef) {
	sort.Slice(refs, func(i, j int) bool {
		return g.ID(refs[i].Node) < g.ID(refs[j].Node)
	})
}
