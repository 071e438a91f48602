package graph

// Validation is the result of cycle detection. When Acyclic is false,
// Cycles holds every detected cycle as an ordered task-ID sequence
// beginning at the first repeated node. The scheduling passes must not
// run on a graph that failed validation.
type Validation struct {
	Acyclic bool
	Cycles  [][]string
}

// dfs node colors.
const (
	white = iota // unvisited
	gray         // on the active path
	black        // fully explored
)

// Validate runs depth-first cycle detection over every component. The
// traversal uses an explicit frame stack over arena handles rather
// than recursion, so arbitrarily deep graphs cannot overflow the call
// stack. Finding a cycle stops descent through its closing edge but
// the sweep continues, so disjoint cycles are all reported.
func (g *Graph) Validate() Validation {
	n := len(g.Nodes)
	color := make([]int, n)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = -1
	}

	type frame struct {
		node int
		next int // index into Succs of the next edge to explore
	}

	var cycles [][]string
	stack := make([]frame, 0, n)

	for root := 0; root < n; root++ {
		if color[root] != white {
			continue
		}
		color[root] = gray
		stack = append(stack, frame{node: root})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			succs := g.Nodes[top.node].Succs

			if top.next >= len(succs) {
				color[top.node] = black
				stack = stack[:len(stack)-1]
				continue
			}

			next := succs[top.next].Node
			top.next++

			switch color[next] {
			case white:
				parent[next] = top.node
				color[next] = gray
				stack = append(stack, frame{node: next})
			case gray:
				cycles = append(cycles, g.extractCycle(parent, top.node, next))
			}
		}
	}

	return Validation{Acyclic: len(cycles) == 0, Cycles: cycles}
}

// extractCycle walks the parent chain from the node that closed the
// cycle back to the first repeated node, then reverses into forward
// order: repeated node first, closing node last.
func (g *Graph) extractCycle(parent []int, closing, repeated int) []string {
	var rev []string
	for cur := closing; ; cur = parent[cur] {
		rev = append(rev, g.ID(cur))
		if cur == repeated {
			break
		}
	}
	cycle := make([]string, len(rev))
	for i, id := range rev {
		cycle[len(rev)-1-i] = id
	}
	return cycle
}
