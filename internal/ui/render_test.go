package ui

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"github.com/papapumpkin/horizon/internal/filter"
	"github.com/papapumpkin/horizon/internal/task"
	"github.com/papapumpkin/horizon/internal/timeline"
)

var now = time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

func plain() *Renderer { return &Renderer{Width: 100} }

// buildTimeline runs the real engine so rendered rows carry computed
// CPM fields.
func buildTimeline(t *testing.T) *timeline.TimelineData {
	t.Helper()
	base := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	datePtr := func(n int) *time.Time { d := base.AddDate(0, 0, n); return &d }
	mk := func(id string, startDay, days int, status task.Status) task.Task {
		return task.Task{
			ID: id, Name: "task " + id, ProjectID: "proj", Status: status,
			Start: datePtr(startDay), Due: datePtr(startDay + days), CreatedAt: base,
		}
	}
	dep := func(pred, succ string) task.Dependency {
		return task.Dependency{PredecessorID: pred, SuccessorID: succ, Type: task.FinishToStart}
	}

	tasks := []task.Task{
		mk("a", 0, 1, task.StatusDone),
		mk("b", 1, 3, task.StatusInProgress),
		mk("c", 1, 1, task.StatusTodo),
		mk("d", 4, 1, task.StatusTodo),
	}
	deps := []task.Dependency{dep("a", "b"), dep("a", "c"), dep("b", "d"), dep("c", "d")}

	td, err := timeline.New(now).Build(tasks, deps, timeline.Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return td
}

func TestTimelineRender(t *testing.T) {
	t.Parallel()

	out := plain().Timeline(buildTimeline(t), now)

	for _, want := range []string{
		"4 tasks", "5 project days", "3 critical",
		"a task a", "d task d",
		"crit",       // critical suffix
		"+2.0d",      // c's float
		"completed",  // milestone for the done task
		"deadline",   // project deadline milestone
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("color disabled but output contains ANSI escapes")
	}
}

func TestTimelineRenderEmpty(t *testing.T) {
	t.Parallel()

	td := &timeline.TimelineData{
		Range: timeline.DateRange{Start: now, End: now.AddDate(0, 0, 30)},
	}
	out := plain().Timeline(td, now)
	if !strings.Contains(out, "no tasks in range") {
		t.Errorf("empty timeline output = %q", out)
	}
}

func TestTimelineRenderDroppedEdges(t *testing.T) {
	t.Parallel()

	td := buildTimeline(t)
	td.DroppedEdges = []task.Edge{{PredecessorID: "ghost", SuccessorID: "a"}}
	out := plain().Timeline(td, now)
	if !strings.Contains(out, "excluded") {
		t.Errorf("dropped edge note missing:\n%s", out)
	}
}

func TestTimelineRenderMultibyteLabel(t *testing.T) {
	t.Parallel()

	// A name far past the label column, all multibyte runes. The
	// truncated row must still be valid UTF-8.
	td := &timeline.TimelineData{
		Tasks: []timeline.ScheduledTask{{
			ID: "jp", Name: strings.Repeat("計画", 20), Status: task.StatusTodo,
			Start: now, End: now.AddDate(0, 0, 2), Days: 2,
		}},
		Range: timeline.DateRange{Start: now.AddDate(0, 0, -7), End: now.AddDate(0, 0, 9)},
	}
	out := plain().Timeline(td, now)
	if !utf8.ValidString(out) {
		t.Fatalf("output is not valid UTF-8:\n%q", out)
	}
	if strings.ContainsRune(out, utf8.RuneError) {
		t.Errorf("truncation split a rune:\n%q", out)
	}
	if !strings.Contains(out, "...") {
		t.Errorf("long label not truncated:\n%q", out)
	}
}

func TestTimelineRenderDeterministic(t *testing.T) {
	t.Parallel()

	td := buildTimeline(t)
	r := plain()
	if first, second := r.Timeline(td, now), r.Timeline(td, now); first != second {
		t.Error("repeated renders of the same timeline differ")
	}
}

func TestCyclesRender(t *testing.T) {
	t.Parallel()

	out := plain().Cycles([][]string{{"a", "b", "c"}})
	if !strings.Contains(out, "1 dependency cycle") {
		t.Errorf("cycle count missing:\n%s", out)
	}
	if !strings.Contains(out, "a → b → c → a") {
		t.Errorf("cycle path not closed back to its start:\n%s", out)
	}
}

func TestStatsRender(t *testing.T) {
	t.Parallel()

	out := plain().Stats(filter.Stats{Total: 10, Filtered: 4, Overdue: 1, Done: 2, Critical: 3})
	if !strings.Contains(out, "4 of 10 tasks shown") {
		t.Errorf("stats line = %q", out)
	}
}

func TestCriticalChains(t *testing.T) {
	t.Parallel()

	td := buildTimeline(t)
	chains := CriticalChains(td)
	if diff := cmp.Diff([][]string{{"a", "b", "d"}}, chains); diff != "" {
		t.Errorf("chains mismatch (-want +got):\n%s", diff)
	}
}

func TestCriticalChainsDisjoint(t *testing.T) {
	t.Parallel()

	// Two critical components yield two chains, ordered by earliest
	// start.
	td := &timeline.TimelineData{
		Tasks: []timeline.ScheduledTask{
			{ID: "a1", EarliestStart: 0, EarliestFinish: 2, Critical: true},
			{ID: "a2", EarliestStart: 2, EarliestFinish: 4, Critical: true},
			{ID: "b1", EarliestStart: 0, EarliestFinish: 1, Critical: true},
			{ID: "b2", EarliestStart: 1, EarliestFinish: 4, Critical: true},
		},
		Edges: []task.Edge{
			{PredecessorID: "a1", SuccessorID: "a2"},
			{PredecessorID: "b1", SuccessorID: "b2"},
		},
		Critical: []string{"a1", "a2", "b1", "b2"},
	}
	chains := CriticalChains(td)
	if diff := cmp.Diff([][]string{{"a1", "a2"}, {"b1", "b2"}}, chains); diff != "" {
		t.Errorf("chains mismatch (-want +got):\n%s", diff)
	}
}

func TestCriticalChainsEmpty(t *testing.T) {
	t.Parallel()

	if chains := CriticalChains(&timeline.TimelineData{}); chains != nil {
		t.Errorf("chains = %v, want nil", chains)
	}
}
