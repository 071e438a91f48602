package task

// EdgeSource tags where a dependency edge was declared. Recorded edges
// come from discrete Dependency rows; inline edges come from a task's
// legacy DependsOn list. When both declare the same predecessor/
// successor pair, the recorded edge wins.
type EdgeSource string

const (
	SourceRecorded EdgeSource = "recorded"
	SourceInline   EdgeSource = "inline"
)

// Edge is the normalized dependency form the graph builder consumes.
// Exactly one Edge survives per (predecessor, successor) pair.
type Edge struct {
	PredecessorID string
	SuccessorID   string
	Type          DependencyType
	LagDays       int
	Source        EdgeSource
}

// NormalizeEdges merges recorded Dependency rows with inline DependsOn
// lists into a single deduplicated edge set. Recorded edges take
// precedence over inline edges for the same pair; inline edges default
// to finish-to-start with zero lag. Self-edges are discarded. The
// result is not restricted to any task subset; the graph builder drops
// edges whose endpoints fall outside its selection.
func NormalizeEdges(tasks []Task, deps []Dependency) []Edge {
	type pair struct{ pred, succ string }
	seen := make(map[pair]int)
	var edges []Edge

	add := func(e Edge) {
		if e.PredecessorID == "" || e.SuccessorID == "" || e.PredecessorID == e.SuccessorID {
			return
		}
		key := pair{e.PredecessorID, e.SuccessorID}
		if i, ok := seen[key]; ok {
			// Recorded beats inline; first recorded wins otherwise.
			if edges[i].Source == SourceInline && e.Source == SourceRecorded {
				edges[i] = e
			}
			return
		}
		seen[key] = len(edges)
		edges = append(edges, e)
	}

	for _, d := range deps {
		typ := d.Type
		if !typ.Valid() {
			typ = FinishToStart
		}
		add(Edge{
			PredecessorID: d.PredecessorID,
			SuccessorID:   d.SuccessorID,
			Type:          typ,
			LagDays:       d.LagDays,
			Source:        SourceRecorded,
		})
	}

	for _, t := range tasks {
		for _, pred := range t.DependsOn {
			add(Edge{
				PredecessorID: pred,
				SuccessorID:   t.ID,
				Type:          FinishToStart,
				Source:        SourceInline,
			})
		}
	}

	return edges
}
