package task

import "testing"

func TestNormalizeEdges(t *testing.T) {
	t.Parallel()

	t.Run("recorded dependencies", func(t *testing.T) {
		t.Parallel()
		edges := NormalizeEdges(nil, []Dependency{
			{ID: "d1", PredecessorID: "a", SuccessorID: "b", Type: StartToStart, LagDays: 2},
		})
		if len(edges) != 1 {
			t.Fatalf("got %d edges, want 1", len(edges))
		}
		e := edges[0]
		if e.Source != SourceRecorded || e.Type != StartToStart || e.LagDays != 2 {
			t.Errorf("edge = %+v, want recorded start_to_start lag 2", e)
		}
	})

	t.Run("inline dependencies default to finish-to-start", func(t *testing.T) {
		t.Parallel()
		edges := NormalizeEdges([]Task{{ID: "b", DependsOn: []string{"a"}}}, nil)
		if len(edges) != 1 {
			t.Fatalf("got %d edges, want 1", len(edges))
		}
		e := edges[0]
		if e.PredecessorID != "a" || e.SuccessorID != "b" {
			t.Errorf("edge direction = %s→%s, want a→b", e.PredecessorID, e.SuccessorID)
		}
		if e.Source != SourceInline || e.Type != FinishToStart || e.LagDays != 0 {
			t.Errorf("edge = %+v, want inline finish_to_start lag 0", e)
		}
	})

	t.Run("recorded beats inline for the same pair", func(t *testing.T) {
		t.Parallel()
		tasks := []Task{{ID: "b", DependsOn: []string{"a"}}}
		deps := []Dependency{{PredecessorID: "a", SuccessorID: "b", Type: FinishToStart, LagDays: 3}}
		edges := NormalizeEdges(tasks, deps)
		if len(edges) != 1 {
			t.Fatalf("got %d edges, want 1 after dedup", len(edges))
		}
		if edges[0].Source != SourceRecorded || edges[0].LagDays != 3 {
			t.Errorf("edge = %+v, want the recorded edge to win", edges[0])
		}
	})

	t.Run("inline never downgrades an existing recorded edge", func(t *testing.T) {
		t.Parallel()
		// Order of declaration must not matter: recorded first, then inline.
		deps := []Dependency{{PredecessorID: "a", SuccessorID: "b", LagDays: 1, Type: FinishToStart}}
		tasks := []Task{{ID: "b", DependsOn: []string{"a"}}}
		edges := NormalizeEdges(tasks, deps)
		if len(edges) != 1 || edges[0].LagDays != 1 {
			t.Errorf("edges = %+v, want the single recorded edge", edges)
		}
	})

	t.Run("self and empty edges dropped", func(t *testing.T) {
		t.Parallel()
		tasks := []Task{{ID: "a", DependsOn: []string{"a", ""}}}
		deps := []Dependency{{PredecessorID: "x", SuccessorID: "x"}}
		if edges := NormalizeEdges(tasks, deps); len(edges) != 0 {
			t.Errorf("got %d edges, want 0", len(edges))
		}
	})

	t.Run("invalid recorded type falls back to finish-to-start", func(t *testing.T) {
		t.Parallel()
		deps := []Dependency{{PredecessorID: "a", SuccessorID: "b", Type: "sideways"}}
		edges := NormalizeEdges(nil, deps)
		if edges[0].Type != FinishToStart {
			t.Errorf("type = %q, want finish_to_start fallback", edges[0].Type)
		}
	})
}

func TestStatus(t *testing.T) {
	t.Parallel()

	if !StatusDone.Terminal() || StatusReview.Terminal() {
		t.Error("only done should be terminal")
	}
	if !StatusInProgress.Started() || !StatusReview.Started() || StatusTodo.Started() {
		t.Error("started set should be exactly in_progress and review")
	}
	if Status("shipped").Valid() {
		t.Error("unknown status reported valid")
	}
}
