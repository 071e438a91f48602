package timeline

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// MilestoneSource identifies what generated a milestone.
type MilestoneSource string

const (
	// MilestoneTaskDone marks the resolved end of a completed task.
	MilestoneTaskDone MilestoneSource = "task_completion"
	// MilestoneDeadline marks a project's latest explicit due date.
	MilestoneDeadline MilestoneSource = "project_deadline"
)

// Milestone is a dated marker derived from the task set, ordered by
// date ascending in TimelineData.
type Milestone struct {
	ID     string
	Label  string
	Date   time.Time
	Source MilestoneSource
	// RefID is the task or project the milestone was derived from.
	RefID string
}

// milestoneNamespace seeds name-based UUIDs so milestone IDs are
// stable across rebuilds of the same input.
var milestoneNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("horizon/milestone"))

// Milestones derives milestones from completed tasks and from the
// latest end date per project, sorted by date ascending with RefID as
// tiebreaker.
func (e *Engine) Milestones(tasks []ScheduledTask) []Milestone {
	var ms []Milestone

	projectEnd := make(map[string]time.Time)
	for _, t := range tasks {
		if t.Status.Terminal() {
			ms = append(ms, Milestone{
				ID:     milestoneID(MilestoneTaskDone, t.ID),
				Label:  t.Name + " completed",
				Date:   t.End,
				Source: MilestoneTaskDone,
				RefID:  t.ID,
			})
		}
		if t.ProjectID != "" && t.End.After(projectEnd[t.ProjectID]) {
			projectEnd[t.ProjectID] = t.End
		}
	}

	projects := make([]string, 0, len(projectEnd))
	for id := range projectEnd {
		projects = append(projects, id)
	}
	sort.Strings(projects)
	for _, id := range projects {
		ms = append(ms, Milestone{
			ID:     milestoneID(MilestoneDeadline, id),
			Label:  id + " deadline",
			Date:   projectEnd[id],
			Source: MilestoneDeadline,
			RefID:  id,
		})
	}

	sort.Slice(ms, func(i, j int) bool {
		if !ms[i].Date.Equal(ms[j].Date) {
			return ms[i].Date.Before(ms[j].Date)
		}
		return ms[i].RefID < ms[j].RefID
	})
	return ms
}

func milestoneID(source MilestoneSource, ref string) string {
	return uuid.NewSHA1(milestoneNamespace, []byte(string(source)+"/"+ref)).String()
}
