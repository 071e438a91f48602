package cpm

import (
	"math"
	"sort"
	"time"

	"github.com/papapumpkin/horizon/internal/graph"
)

// Schedule holds the computed timing for one task. The CPM fields
// (earliest/latest start/finish, float) are offsets in days from
// project day zero; Start and End are the resolved calendar window.
type Schedule struct {
	TaskID   string
	Start    time.Time
	End      time.Time
	Days     float64
	Progress float64

	EarliestStart  float64
	EarliestFinish float64
	LatestStart    float64
	LatestFinish   float64
	TotalFloat     float64
	Critical       bool
}

// Result is the output of one CPM solve over a validated graph.
// Schedules is arena-indexed, parallel to the graph's node arena.
type Result struct {
	Schedules []Schedule
	// Critical lists the IDs of zero-float tasks, sorted. This is a
	// set, not a chain: disjoint zero-float sequences are possible
	// and no ordering between them is implied.
	Critical    []string
	ProjectDays float64
}

// Solve runs the forward and backward passes over g using the
// arena-indexed windows and progress values. The caller must have
// validated g as acyclic; if it has not, Solve still terminates (the
// traversal skips nodes already on the active path) but float values
// are meaningless. epsilon ≤ 0 selects the package default.
//
// Only finish-to-start propagation is applied: every edge contributes
// predecessor finish plus lag to successor start, regardless of its
// stored dependency type. The other three types are carried in the
// data model for hosts that display them.
func Solve(g *graph.Graph, windows []Window, progress []float64, epsilon float64) *Result {
	if epsilon <= 0 {
		epsilon = Epsilon
	}
	n := g.Len()

	durations := make([]float64, n)
	for i, w := range windows {
		durations[i] = math.Max(1, w.Days)
	}

	ef := forwardPass(g, durations)

	projectDays := 0.0
	for _, v := range ef {
		if v > projectDays {
			projectDays = v
		}
	}

	ls := backwardPass(g, durations, projectDays)

	res := &Result{
		Schedules:   make([]Schedule, n),
		ProjectDays: projectDays,
	}
	for i := 0; i < n; i++ {
		es := ef[i] - durations[i]
		lf := ls[i] + durations[i]
		slack := ls[i] - es
		critical := math.Abs(slack) < epsilon

		res.Schedules[i] = Schedule{
			TaskID:         g.ID(i),
			Start:          windows[i].Start,
			End:            windows[i].End,
			Days:           durations[i],
			Progress:       progress[i],
			EarliestStart:  es,
			EarliestFinish: ef[i],
			LatestStart:    ls[i],
			LatestFinish:   lf,
			TotalFloat:     slack,
			Critical:       critical,
		}
		if critical {
			res.Critical = append(res.Critical, g.ID(i))
		}
	}
	sort.Strings(res.Critical)
	return res
}

// traversal states shared by both passes.
const (
	unseen = iota
	visiting
	settled
)

// forwardPass computes earliest finish per node: earliest start is the
// maximum over predecessors of their earliest finish plus edge lag
// (never below zero), and finish adds the node's duration. The
// traversal is a memoized iterative DFS; a predecessor still marked
// visiting is skipped rather than descended into, which bounds the
// walk even on a graph that bypassed validation.
func forwardPass(g *graph.Graph, durations []float64) []float64 {
	n := g.Len()
	ef := make([]float64, n)
	state := make([]int, n)

	type frame struct {
		node int
		next int
	}
	var stack []frame

	settle := func(node int) {
		es := 0.0
		for _, p := range g.Nodes[node].Preds {
			if state[p.Node] != settled {
				continue
			}
			if cand := ef[p.Node] + float64(p.LagDays); cand > es {
				es = cand
			}
		}
		ef[node] = es + durations[node]
		state[node] = settled
	}

	for root := 0; root < n; root++ {
		if state[root] != unseen {
			continue
		}
		state[root] = visiting
		stack = append(stack, frame{node: root})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			preds := g.Nodes[top.node].Preds
			if top.next < len(preds) {
				p := preds[top.next].Node
				top.next++
				if state[p] == unseen {
					state[p] = visiting
					stack = append(stack, frame{node: p})
				}
				continue
			}
			settle(top.node)
			stack = stack[:len(stack)-1]
		}
	}
	return ef
}

// backwardPass computes latest start per node: nodes without
// successors finish at project end; every other node's latest finish
// is the minimum over successors of their latest start minus edge
// lag. Same memoized iterative DFS shape as the forward pass, walking
// successor edges instead.
func backwardPass(g *graph.Graph, durations []float64, projectDays float64) []float64 {
	n := g.Len()
	ls := make([]float64, n)
	state := make([]int, n)

	type frame struct {
		node int
		next int
	}
	var stack []frame

	settle := func(node int) {
		lf := projectDays
		for _, s := range g.Nodes[node].Succs {
			if state[s.Node] != settled {
				continue
			}
			if cand := ls[s.Node] - float64(s.LagDays); cand < lf {
				lf = cand
			}
		}
		ls[node] = lf - durations[node]
		state[node] = settled
	}

	for root := 0; root < n; root++ {
		if state[root] != unseen {
			continue
		}
		state[root] = visiting
		stack = append(stack, frame{node: root})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			succs := g.Nodes[top.node].Succs
			if top.next < len(succs) {
				s := succs[top.next].Node
				top.next++
				if state[s] == unseen {
					state[s] = visiting
					stack = append(stack, frame{node: s})
				}
				continue
			}
			settle(top.node)
			stack = stack[:len(stack)-1]
		}
	}
	return ls
}
