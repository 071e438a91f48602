package ui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/papapumpkin/horizon/internal/filter"
	"github.com/papapumpkin/horizon/internal/timeline"
)

// Renderer produces styled text views of a computed timeline. Width
// is the available terminal width in columns; Color disables styling
// when false.
type Renderer struct {
	Width int
	Color bool
}

const (
	minBarWidth = 10
	labelWidth  = 28
	dateLayout  = "2006-01-02"
)

// Timeline renders one row per scheduled task: a label column and a
// bar positioned inside the timeline's effective date range. Critical
// tasks are drawn solid and red; completed tasks green; everything
// else muted.
func (r *Renderer) Timeline(td *timeline.TimelineData, now time.Time) string {
	var b strings.Builder

	header := fmt.Sprintf("%s → %s  %d tasks, %.0f project days, %d critical",
		td.Range.Start.Format(dateLayout), td.Range.End.Format(dateLayout),
		len(td.Tasks), td.ProjectDays, len(td.Critical))
	b.WriteString(r.style(styleHeader, header))
	b.WriteString("\n")

	if len(td.Tasks) == 0 {
		b.WriteString(r.style(styleMuted, "no tasks in range"))
		b.WriteString("\n")
		return b.String()
	}

	barWidth := r.Width - labelWidth - 1
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	span := td.Range.End.Sub(td.Range.Start)

	for _, t := range td.Tasks {
		b.WriteString(r.taskRow(t, td.Range.Start, span, barWidth, now))
		b.WriteString("\n")
	}

	for _, m := range td.Milestones {
		line := fmt.Sprintf("%s %s (%s)", iconDot, m.Label, m.Date.Format(dateLayout))
		b.WriteString(r.style(styleMilestone, line))
		b.WriteString("\n")
	}

	if n := len(td.DroppedEdges); n > 0 {
		b.WriteString(r.style(styleMuted,
			fmt.Sprintf("%s %d dependency edge(s) referenced tasks outside the selection and were excluded", iconWarn, n)))
		b.WriteString("\n")
	}

	return b.String()
}

func (r *Renderer) taskRow(t timeline.ScheduledTask, rangeStart time.Time, span time.Duration, barWidth int, now time.Time) string {
	label := t.ID + " " + t.Name
	if runes := []rune(label); len(runes) > labelWidth-2 {
		label = string(runes[:labelWidth-5]) + "..."
	}
	label += strings.Repeat(" ", labelWidth-utf8.RuneCountInString(label))

	offset := positionOf(t.Start.Sub(rangeStart), span, barWidth)
	end := positionOf(t.End.Sub(rangeStart), span, barWidth)
	if end <= offset {
		end = offset + 1
	}
	if end > barWidth {
		end = barWidth
	}

	fill, style := "░", styleMuted
	switch {
	case t.Critical:
		fill, style = "█", styleCritical
	case t.Status.Terminal():
		fill, style = "█", styleDone
	}

	bar := strings.Repeat(" ", offset) +
		r.style(style, strings.Repeat(fill, end-offset)) +
		strings.Repeat(" ", barWidth-end)

	suffix := fmt.Sprintf(" %3.0f%%", t.Progress)
	if t.Critical {
		suffix += " " + r.style(styleCritical, "crit")
	} else {
		suffix += fmt.Sprintf(" +%.1fd", t.TotalFloat)
	}
	if t.Overdue(now) {
		suffix += " " + r.style(styleCritical, "overdue")
	}

	return label + bar + suffix
}

// Cycles renders a validation failure, one line per cycle.
func (r *Renderer) Cycles(cycles [][]string) string {
	var b strings.Builder
	b.WriteString(r.style(styleCritical,
		fmt.Sprintf("%s %d dependency cycle(s) — no schedule can be computed", iconCritical, len(cycles))))
	b.WriteString("\n")
	for _, c := range cycles {
		b.WriteString("  " + strings.Join(c, " → ") + " → " + c[0])
		b.WriteString("\n")
	}
	return b.String()
}

// Stats renders filter statistics as a single summary line.
func (r *Renderer) Stats(st filter.Stats) string {
	return r.style(styleMuted, fmt.Sprintf(
		"%d of %d tasks shown  %d overdue, %d done, %d critical",
		st.Filtered, st.Total, st.Overdue, st.Done, st.Critical)) + "\n"
}

func positionOf(offset, span time.Duration, width int) int {
	if span <= 0 {
		return 0
	}
	pos := int(float64(offset) / float64(span) * float64(width))
	if pos < 0 {
		return 0
	}
	if pos > width {
		return width
	}
	return pos
}

// style applies s when color is enabled, otherwise returns the text
// unchanged so output stays pipe-friendly.
func (r *Renderer) style(s interface{ Render(...string) string }, text string) string {
	if !r.Color {
		return text
	}
	return s.Render(text)
}
