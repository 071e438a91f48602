// Package impact scores the critical task set of a timeline: how
// disruptive each task is if it slips, aggregate delivery risk, and
// best/current/worst completion scenarios with deterministic
// recommendations.
package impact

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/papapumpkin/horizon/internal/timeline"
)

// Score constants. The base grants every critical task a floor,
// duration contributes up to 20 points, progress deficit up to 30,
// and overdue days plus direct dependents are uncapped.
const (
	scoreBase          = 10.0
	scoreDurationCap   = 20.0
	scorePerDay        = 2.0
	scorePerDeficitPct = 0.3
	scorePerOverdueDay = 5.0
	scorePerDependent  = 3.0

	bottleneckScore    = 30.0
	bottleneckProgress = 50.0
)

// TaskImpact is the per-critical-task score breakdown.
type TaskImpact struct {
	TaskID      string
	Name        string
	Score       float64
	Days        float64
	Progress    float64
	OverdueDays float64
	Dependents  int // direct successors in the timeline's edge list
	Bottleneck  bool
}

// Report is the full critical-path analysis for one timeline.
type Report struct {
	// CriticalTasks is sorted by impact score descending, ties by ID.
	CriticalTasks   []TaskImpact
	Risk            Assessment
	Scenarios       Scenarios
	Recommendations []Recommendation
}

// Analyze scores every critical task of the timeline and derives the
// risk assessment, completion scenarios, and recommendations. now
// anchors overdue and trajectory arithmetic and must be the same
// instant the timeline was built with for consistent results.
func Analyze(td *timeline.TimelineData, now time.Time) *Report {
	dependents := make(map[string]int)
	for _, e := range td.Edges {
		dependents[e.PredecessorID]++
	}

	var impacts []TaskImpact
	for _, id := range td.Critical {
		t := td.Task(id)
		if t == nil {
			continue
		}
		impacts = append(impacts, scoreTask(*t, dependents[id], now))
	}
	sort.Slice(impacts, func(i, j int) bool {
		if impacts[i].Score != impacts[j].Score {
			return impacts[i].Score > impacts[j].Score
		}
		return impacts[i].TaskID < impacts[j].TaskID
	})

	risk := assessRisk(td, impacts)
	scen := buildScenarios(td, now)
	recs := recommend(risk, impacts)

	return &Report{
		CriticalTasks:   impacts,
		Risk:            risk,
		Scenarios:       scen,
		Recommendations: recs,
	}
}

func scoreTask(t timeline.ScheduledTask, dependents int, now time.Time) TaskImpact {
	overdueDays := 0.0
	if t.Overdue(now) {
		overdueDays = math.Ceil(now.Sub(t.End).Hours() / 24)
	}

	score := scoreBase +
		math.Min(scoreDurationCap, scorePerDay*t.Days) +
		scorePerDeficitPct*(100-t.Progress) +
		scorePerOverdueDay*overdueDays +
		scorePerDependent*float64(dependents)

	return TaskImpact{
		TaskID:      t.ID,
		Name:        t.Name,
		Score:       score,
		Days:        t.Days,
		Progress:    t.Progress,
		OverdueDays: overdueDays,
		Dependents:  dependents,
		Bottleneck:  score > bottleneckScore && t.Progress < bottleneckProgress,
	}
}

func days(d float64) time.Duration {
	return time.Duration(d * 24 * float64(time.Hour))
}

func fmtCount(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
