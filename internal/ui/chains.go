package ui

import (
	"sort"

	"github.com/papapumpkin/horizon/internal/timeline"
)

// CriticalChains reconstructs ordered chains through the critical set
// for display. The engine deliberately reports criticality as a set —
// a graph can hold several disjoint zero-float sequences — so this
// walk is derived presentation data, not an engine result. From each
// critical task without a critical predecessor, the chain follows the
// critical successor with the latest earliest finish, ties broken by
// ID, until no critical successor remains.
func CriticalChains(td *timeline.TimelineData) [][]string {
	critical := td.CriticalSet()
	if len(critical) == 0 {
		return nil
	}

	succs := make(map[string][]string)
	hasCritPred := make(map[string]bool)
	for _, e := range td.Edges {
		if critical[e.PredecessorID] && critical[e.SuccessorID] {
			succs[e.PredecessorID] = append(succs[e.PredecessorID], e.SuccessorID)
			hasCritPred[e.SuccessorID] = true
		}
	}

	var roots []string
	for _, id := range td.Critical {
		if !hasCritPred[id] {
			roots = append(roots, id)
		}
	}
	sort.Slice(roots, func(i, j int) bool {
		a, b := td.Task(roots[i]), td.Task(roots[j])
		if a.EarliestStart != b.EarliestStart {
			return a.EarliestStart < b.EarliestStart
		}
		return a.ID < b.ID
	})

	var chains [][]string
	for _, root := range roots {
		chain := []string{root}
		seen := map[string]bool{root: true}
		cur := root
		for {
			next := ""
			var nextEF float64
			for _, s := range succs[cur] {
				if seen[s] {
					continue
				}
				ef := td.Task(s).EarliestFinish
				if next == "" || ef > nextEF || (ef == nextEF && s < next) {
					next, nextEF = s, ef
				}
			}
			if next == "" {
				break
			}
			chain = append(chain, next)
			seen[next] = true
			cur = next
		}
		chains = append(chains, chain)
	}
	return chains
}
