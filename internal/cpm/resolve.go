// Package cpm implements the critical path method over a built
// dependency graph: duration resolution, the forward and backward
// timing passes, total float, and extraction of the critical set.
package cpm

import (
	"math"
	"time"

	"github.com/papapumpkin/horizon/internal/task"
)

// Epsilon is the default float tolerance, in days, below which a
// task's total float is treated as zero. Date-difference arithmetic
// goes through float64 days, so exact-zero comparison is unreliable.
const Epsilon = 0.01

// DefaultHoursPerDay is the working-day length assumed when deriving
// durations from effort estimates.
const DefaultHoursPerDay = 8

// Window is a task's resolved calendar window. Estimated is true when
// either endpoint was derived from effort rather than explicit dates.
type Window struct {
	Start     time.Time
	End       time.Time
	Days      float64 // ≥ 1
	Estimated bool
}

// ResolveWindow computes a usable working window for a task, in
// priority order: explicit dates when present, then an effort-based
// estimate anchored at whichever date exists, then an estimate
// anchored at the task's creation time (or now when creation is
// unset). Every result satisfies Start ≤ End and Days ≥ 1, the
// preconditions the timing passes rely on.
func ResolveWindow(t task.Task, now time.Time, hoursPerDay float64) Window {
	if hoursPerDay <= 0 {
		hoursPerDay = DefaultHoursPerDay
	}

	days := estimateDays(t.EstimateHours, hoursPerDay)

	switch {
	case t.Start != nil && t.Due != nil:
		d := math.Ceil(t.Due.Sub(*t.Start).Hours() / 24)
		if d < 1 {
			d = 1
		}
		end := *t.Due
		if end.Before(*t.Start) {
			end = t.Start.Add(dayDuration(d))
		}
		return Window{Start: *t.Start, End: end, Days: d}

	case t.Due != nil:
		return Window{
			Start:     t.Due.Add(-dayDuration(days)),
			End:       *t.Due,
			Days:      days,
			Estimated: true,
		}

	case t.Start != nil:
		return Window{
			Start:     *t.Start,
			End:       t.Start.Add(dayDuration(days)),
			Days:      days,
			Estimated: true,
		}

	default:
		anchor := t.CreatedAt
		if anchor.IsZero() {
			anchor = now
		}
		return Window{
			Start:     anchor,
			End:       anchor.Add(dayDuration(days)),
			Days:      days,
			Estimated: true,
		}
	}
}

// ResolveProgress derives a 0–100 completion percentage from status
// and effort. Terminal tasks are 100. Started tasks report actual
// versus estimated effort capped at 90 (only a terminal status can
// claim completion), or a flat 50 when no estimate exists. Everything
// else is 0.
func ResolveProgress(t task.Task) float64 {
	switch {
	case t.Status.Terminal():
		return 100
	case t.Status.Started():
		if t.EstimateHours > 0 {
			return math.Min(90, t.ActualHours/t.EstimateHours*100)
		}
		return 50
	default:
		return 0
	}
}

// estimateDays converts an effort estimate to whole days, with a
// one-working-day minimum.
func estimateDays(estimateHours, hoursPerDay float64) float64 {
	hours := math.Max(estimateHours, hoursPerDay)
	return math.Ceil(hours / hoursPerDay)
}

func dayDuration(days float64) time.Duration {
	return time.Duration(days * 24 * float64(time.Hour))
}
