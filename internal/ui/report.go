package ui

import (
	"fmt"
	"strings"

	"github.com/papapumpkin/horizon/internal/impact"
)

// Analysis renders a critical-path impact report: risk assessment,
// scored critical tasks, completion scenarios, and recommendations.
func (r *Renderer) Analysis(rep *impact.Report) string {
	var b strings.Builder

	b.WriteString(r.style(styleHeader, "Risk assessment"))
	b.WriteString(fmt.Sprintf("  %s (%.0f points)\n", r.levelBadge(rep.Risk.Level), rep.Risk.Score))
	for _, f := range rep.Risk.Factors {
		b.WriteString(fmt.Sprintf("  %s [%s] %s (+%.0f)\n",
			r.severityIcon(f.Severity), f.Severity, f.Detail, f.Points))
	}
	if len(rep.Risk.Factors) == 0 {
		b.WriteString(r.style(styleMuted, "  no risk factors detected"))
		b.WriteString("\n")
	}

	if len(rep.CriticalTasks) > 0 {
		b.WriteString(r.style(styleHeader, "\nCritical tasks by impact"))
		b.WriteString("\n")
		for _, t := range rep.CriticalTasks {
			line := fmt.Sprintf("  %6.1f  %s %s  %.0f%% done, %d dependent(s)",
				t.Score, t.TaskID, t.Name, t.Progress, t.Dependents)
			if t.Bottleneck {
				line += " " + r.style(styleCritical, "bottleneck")
			}
			if t.OverdueDays > 0 {
				line += " " + r.style(styleCritical, fmt.Sprintf("%.0fd overdue", t.OverdueDays))
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString(r.style(styleHeader, "\nCompletion scenarios"))
	b.WriteString("\n")
	for _, s := range []impact.Scenario{rep.Scenarios.Best, rep.Scenarios.Current, rep.Scenarios.Worst} {
		date := "-"
		if !s.Date.IsZero() {
			date = s.Date.Format(dateLayout)
		}
		b.WriteString(fmt.Sprintf("  %-20s %s  %s\n", s.Kind, date, s.Probability))
		for _, a := range s.Assumptions {
			b.WriteString(r.style(styleMuted, "    "+iconDot+" "+a))
			b.WriteString("\n")
		}
	}

	if len(rep.Recommendations) > 0 {
		b.WriteString(r.style(styleHeader, "\nRecommendations"))
		b.WriteString("\n")
		for _, rec := range rep.Recommendations {
			b.WriteString(fmt.Sprintf("  [%s] %s — %s\n", rec.Priority, rec.Kind, rec.Detail))
		}
	}

	return b.String()
}

func (r *Renderer) levelBadge(level impact.Severity) string {
	switch level {
	case impact.SeverityHigh:
		return r.style(styleCritical, strings.ToUpper(string(level)))
	case impact.SeverityMedium:
		return r.style(styleMilestone, strings.ToUpper(string(level)))
	default:
		return r.style(styleDone, strings.ToUpper(string(level)))
	}
}

func (r *Renderer) severityIcon(s impact.Severity) string {
	switch s {
	case impact.SeverityHigh:
		return r.style(styleCritical, iconCritical)
	case impact.SeverityMedium:
		return r.style(styleMilestone, iconWarn)
	default:
		return r.style(styleMuted, iconDot)
	}
}
