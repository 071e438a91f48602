package impact

import (
	"fmt"
	"time"

	"github.com/papapumpkin/horizon/internal/timeline"
)

// Severity tags a risk factor.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Factor is one contributor to the aggregate risk score.
type Factor struct {
	Kind     string
	Severity Severity
	Detail   string
	Points   float64
}

// Assessment is the aggregate delivery risk for a timeline.
type Assessment struct {
	Score   float64
	Level   Severity // high > 50 points, medium > 25, else low
	Factors []Factor
}

// Risk factor point schedule.
const (
	pointsOverdueCritical  = 15.0 // per overdue critical task
	pointsLowProgress      = 8.0  // per critical task under 25% progress
	pointsUnassigned       = 10.0 // per unassigned critical task
	pointsCriticalShare    = 20.0 // critical share of all tasks above 60%
	pointsShortCritical    = 5.0  // average critical duration under 2 days
	criticalShareThreshold = 0.6
	lowProgressThreshold   = 25.0
	shortDurationThreshold = 2.0
)

// assessRisk folds the critical task set into severity-tagged factors
// and a running score.
func assessRisk(td *timeline.TimelineData, impacts []TaskImpact) Assessment {
	var a Assessment

	overdue, lowProgress, unassigned := 0, 0, 0
	totalDays := 0.0
	for _, im := range impacts {
		if im.OverdueDays > 0 {
			overdue++
		}
		if im.Progress < lowProgressThreshold {
			lowProgress++
		}
		if t := td.Task(im.TaskID); t != nil && t.Assignee == "" {
			unassigned++
		}
		totalDays += im.Days
	}

	add := func(kind string, sev Severity, points float64, detail string) {
		a.Factors = append(a.Factors, Factor{Kind: kind, Severity: sev, Detail: detail, Points: points})
		a.Score += points
	}

	if overdue > 0 {
		add("overdue_critical", SeverityHigh, pointsOverdueCritical*float64(overdue),
			fmtCount(overdue, "critical task")+" overdue")
	}
	if lowProgress > 0 {
		add("low_progress", SeverityMedium, pointsLowProgress*float64(lowProgress),
			fmtCount(lowProgress, "critical task")+" under 25% progress")
	}
	if unassigned > 0 {
		add("unassigned", SeverityMedium, pointsUnassigned*float64(unassigned),
			fmtCount(unassigned, "critical task")+" unassigned")
	}
	if total := len(td.Tasks); total > 0 {
		share := float64(len(impacts)) / float64(total)
		if share > criticalShareThreshold {
			add("critical_share", SeverityMedium, pointsCriticalShare,
				fmt.Sprintf("%.0f%% of tasks sit on the critical path", share*100))
		}
	}
	if len(impacts) > 0 {
		if avg := totalDays / float64(len(impacts)); avg < shortDurationThreshold {
			add("short_critical", SeverityLow, pointsShortCritical,
				fmt.Sprintf("average critical task is %.1f days; little room to absorb slips", avg))
		}
	}

	switch {
	case a.Score > 50:
		a.Level = SeverityHigh
	case a.Score > 25:
		a.Level = SeverityMedium
	default:
		a.Level = SeverityLow
	}
	return a
}

// Scenario is one projected completion outcome. Probability and
// Assumptions are fixed narrative text per scenario kind, not
// computed quantities.
type Scenario struct {
	Kind        string
	Date        time.Time
	Probability string
	Assumptions []string
}

// Scenarios bundles the three completion projections. Dates satisfy
// Best ≤ Current ≤ Worst whenever all three are defined.
type Scenarios struct {
	Best    Scenario
	Current Scenario
	Worst   Scenario
}
