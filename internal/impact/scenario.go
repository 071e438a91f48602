package impact

import (
	"math"
	"sort"
	"time"

	"github.com/papapumpkin/horizon/internal/timeline"
)

// worstCaseSlip is the fraction of total critical-path duration added
// on top of the best case for the worst-case projection.
const worstCaseSlip = 0.2

// buildScenarios projects best, current-trajectory, and worst
// completion dates. An empty timeline yields zero-valued scenarios.
func buildScenarios(td *timeline.TimelineData, now time.Time) Scenarios {
	if len(td.Tasks) == 0 {
		return Scenarios{
			Best:    Scenario{Kind: "best_case", Probability: bestProbability, Assumptions: bestAssumptions},
			Current: Scenario{Kind: "current_trajectory", Probability: currentProbability, Assumptions: currentAssumptions},
			Worst:   Scenario{Kind: "worst_case", Probability: worstProbability, Assumptions: worstAssumptions},
		}
	}

	critical := td.CriticalSet()

	// Best case: the latest earliest finish on the critical path,
	// anchored at the project start. Falls back to project end when
	// the critical set is empty.
	var earliestCritStart time.Time
	maxCritEF, progressSum, critDays := 0.0, 0.0, 0.0
	critCount := 0
	for _, t := range td.Tasks {
		if !critical[t.ID] {
			continue
		}
		if critCount == 0 || t.Start.Before(earliestCritStart) {
			earliestCritStart = t.Start
		}
		if t.EarliestFinish > maxCritEF {
			maxCritEF = t.EarliestFinish
		}
		progressSum += t.Progress
		critDays += t.Days
		critCount++
	}
	bestOffset := td.ProjectDays
	if critCount > 0 {
		bestOffset = maxCritEF
	}
	best := td.ProjectStart.Add(days(bestOffset))

	worst := best.Add(days(math.Ceil(worstCaseSlip * critDays)))

	// Current trajectory: extrapolate from the observed progress rate
	// since the earliest critical task started. A zero or negative
	// rate (nothing started, no elapsed time, or now before the
	// start) falls back to the best case rather than dividing by
	// zero.
	current := best
	if critCount > 0 {
		avgProgress := progressSum / float64(critCount)
		elapsed := now.Sub(earliestCritStart).Hours() / 24
		if elapsed > 0 && avgProgress > 0 {
			rate := avgProgress / elapsed // percent per day
			remaining := (100 - avgProgress) / rate
			current = now.Add(days(remaining))
		}
	}
	if current.Before(best) {
		current = best
	}
	if current.After(worst) {
		current = worst
	}

	return Scenarios{
		Best:    Scenario{Kind: "best_case", Date: best, Probability: bestProbability, Assumptions: bestAssumptions},
		Current: Scenario{Kind: "current_trajectory", Date: current, Probability: currentProbability, Assumptions: currentAssumptions},
		Worst:   Scenario{Kind: "worst_case", Date: worst, Probability: worstProbability, Assumptions: worstAssumptions},
	}
}

const (
	bestProbability    = "~15%"
	currentProbability = "~55%"
	worstProbability   = "~85%"
)

var (
	bestAssumptions = []string{
		"no critical task slips its window",
		"every dependency hands off immediately",
		"full availability on the critical path",
	}
	currentAssumptions = []string{
		"progress continues at the observed rate",
		"no new blocking dependencies appear",
	}
	worstAssumptions = []string{
		"the critical path slips by one fifth of its duration",
		"bottleneck tasks delay their dependents",
	}
)

// Recommendation is a deterministic follow-up action derived from the
// risk factors and bottleneck list.
type Recommendation struct {
	Kind     string
	Priority Severity // critical outranks high outranks medium outranks low
	Detail   string
}

// SeverityCritical is used only for recommendation priorities; risk
// factors top out at high.
const SeverityCritical Severity = "critical"

var priorityRank = map[Severity]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityMedium:   2,
	SeverityLow:      3,
}

// recommend maps risk factors and bottlenecks to actions, sorted by
// priority rank then kind.
func recommend(risk Assessment, impacts []TaskImpact) []Recommendation {
	var recs []Recommendation

	for _, f := range risk.Factors {
		switch f.Kind {
		case "overdue_critical":
			recs = append(recs, Recommendation{
				Kind:     "overdue_recovery",
				Priority: SeverityCritical,
				Detail:   "recover overdue critical tasks first; every day late moves the project end",
			})
		case "unassigned":
			recs = append(recs, Recommendation{
				Kind:     "assignment_needed",
				Priority: SeverityHigh,
				Detail:   "assign owners to unowned critical tasks",
			})
		case "critical_share":
			recs = append(recs, Recommendation{
				Kind:     "parallel_execution",
				Priority: SeverityMedium,
				Detail:   "most tasks are critical; restructure dependencies to open parallel tracks",
			})
		case "low_progress":
			recs = append(recs, Recommendation{
				Kind:     "progress_review",
				Priority: SeverityMedium,
				Detail:   "review critical tasks with little progress for hidden blockers",
			})
		case "short_critical":
			recs = append(recs, Recommendation{
				Kind:     "buffer_schedule",
				Priority: SeverityLow,
				Detail:   "short critical tasks leave no slack; add schedule buffer",
			})
		}
	}

	bottlenecks := 0
	for _, im := range impacts {
		if im.Bottleneck {
			bottlenecks++
		}
	}
	if bottlenecks > 0 {
		recs = append(recs, Recommendation{
			Kind:     "bottleneck_attention",
			Priority: SeverityHigh,
			Detail:   fmtCount(bottlenecks, "bottleneck task") + " need attention before dependents stall",
		})
	}

	sort.Slice(recs, func(i, j int) bool {
		if priorityRank[recs[i].Priority] != priorityRank[recs[j].Priority] {
			return priorityRank[recs[i].Priority] < priorityRank[recs[j].Priority]
		}
		return recs[i].Kind < recs[j].Kind
	})
	return recs
}
