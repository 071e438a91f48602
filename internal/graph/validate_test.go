package graph

import (
	"testing"

	"github.com/papapumpkin/horizon/internal/task"
)

// buildEdges constructs a graph from id pairs, every task dated the
// same so only structure matters.
func buildEdges(t *testing.T, ids []string, pairs [][2]string) *Graph {
	t.Helper()
	tasks := make([]task.Task, len(ids))
	for i, id := range ids {
		tasks[i] = mkTask(id, 0, 1)
	}
	edges := make([]task.Edge, len(pairs))
	for i, p := range pairs {
		edges[i] = fs(p[0], p[1])
	}
	return Build(tasks, edges, Options{})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("empty graph is acyclic", func(t *testing.T) {
		t.Parallel()
		v := Build(nil, nil, Options{}).Validate()
		if !v.Acyclic || len(v.Cycles) != 0 {
			t.Errorf("Validate() = %+v, want acyclic", v)
		}
	})

	t.Run("diamond is acyclic", func(t *testing.T) {
		t.Parallel()
		g := buildEdges(t, []string{"a", "b", "c", "d"},
			[][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}})
		if v := g.Validate(); !v.Acyclic {
			t.Errorf("diamond reported cyclic: %v", v.Cycles)
		}
	})

	t.Run("simple cycle reported in order", func(t *testing.T) {
		t.Parallel()
		g := buildEdges(t, []string{"a", "b", "c"},
			[][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})
		v := g.Validate()
		if v.Acyclic {
			t.Fatal("cycle not detected")
		}
		if len(v.Cycles) != 1 {
			t.Fatalf("got %d cycles, want 1: %v", len(v.Cycles), v.Cycles)
		}
		cycle := v.Cycles[0]
		if len(cycle) != 3 {
			t.Fatalf("cycle = %v, want 3 tasks", cycle)
		}
		// The repeated node comes first, then the path through the
		// closing edge.
		pos := make(map[string]int, len(cycle))
		for i, id := range cycle {
			pos[id] = i
		}
		for _, pair := range [][2]string{{"a", "b"}, {"b", "c"}} {
			if pos[pair[0]] > pos[pair[1]] {
				t.Errorf("cycle order %v does not follow edge %s→%s", cycle, pair[0], pair[1])
			}
		}
	})

	t.Run("disjoint cycles are all reported", func(t *testing.T) {
		t.Parallel()
		g := buildEdges(t, []string{"a", "b", "x", "y", "z"},
			[][2]string{{"a", "b"}, {"b", "a"}, {"x", "y"}, {"y", "x"}, {"y", "z"}})
		v := g.Validate()
		if v.Acyclic {
			t.Fatal("cycles not detected")
		}
		if len(v.Cycles) != 2 {
			t.Errorf("got %d cycles, want 2: %v", len(v.Cycles), v.Cycles)
		}
	})

	t.Run("acyclic component next to a cyclic one is still swept", func(t *testing.T) {
		t.Parallel()
		g := buildEdges(t, []string{"a", "b", "m", "n"},
			[][2]string{{"a", "b"}, {"b", "a"}, {"m", "n"}})
		v := g.Validate()
		if v.Acyclic || len(v.Cycles) != 1 {
			t.Errorf("Validate() = %+v, want exactly one cycle", v)
		}
	})
}
