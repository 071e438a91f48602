// Package plan loads task and dependency records from a plan.toml
// file. The plan file is the host-side source of scheduling input for
// the CLI; the engine itself only ever sees the materialized records.
package plan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/horizon/internal/task"
)

// ErrNoManifest is returned when the plan path contains no plan.toml.
var ErrNoManifest = errors.New("no plan.toml found")

// ManifestName is the file name looked up when Load is given a
// directory.
const ManifestName = "plan.toml"

// Manifest mirrors the TOML document structure.
type Manifest struct {
	Project      Info      `toml:"project"`
	Defaults     Defaults  `toml:"defaults"`
	Tasks        []Spec    `toml:"tasks"`
	Dependencies []DepSpec `toml:"dependencies"`
}

// Info names the project the plan belongs to.
type Info struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

// Defaults holds fallback values applied to tasks that omit those
// fields.
type Defaults struct {
	Priority int      `toml:"priority"`
	Assignee string   `toml:"assignee"`
	Type     string   `toml:"type"`
	Labels   []string `toml:"labels"`
}

// Spec is one [[tasks]] table.
type Spec struct {
	ID            string     `toml:"id"`
	Name          string     `toml:"name"`
	Type          string     `toml:"type"`
	Status        string     `toml:"status"`
	Priority      int        `toml:"priority"`
	Assignee      string     `toml:"assignee"`
	Start         *time.Time `toml:"start"`
	Due           *time.Time `toml:"due"`
	EstimateHours float64    `toml:"estimate_hours"`
	ActualHours   float64    `toml:"actual_hours"`
	Labels        []string   `toml:"labels"`
	Parent        string     `toml:"parent"`
	DependsOn     []string   `toml:"depends_on"`
	Created       *time.Time `toml:"created"`
}

// DepSpec is one [[dependencies]] table.
type DepSpec struct {
	ID      string `toml:"id"`
	From    string `toml:"from"` // predecessor task ID
	To      string `toml:"to"`   // successor task ID
	Type    string `toml:"type"`
	LagDays int    `toml:"lag_days"`
}

// Plan is the loaded, validated input set.
type Plan struct {
	Path         string
	Project      Info
	Tasks        []task.Task
	Dependencies []task.Dependency
}

// Load reads a plan from path, which may be a plan.toml file or a
// directory containing one. Task definitions are validated for
// duplicate IDs and recognized enum values; dependencies referencing
// unknown task IDs are kept as written, since the engine drops them
// during graph construction and reports the exclusion.
func Load(path string) (*Plan, error) {
	file := path
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		file = filepath.Join(path, ManifestName)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoManifest
		}
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}

	var manifest Manifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", file, err)
	}

	p := &Plan{Path: file, Project: manifest.Project}

	seen := make(map[string]bool)
	for _, spec := range manifest.Tasks {
		t, err := spec.resolve(manifest)
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", spec.ID, err)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("task %q: duplicate id", t.ID)
		}
		seen[t.ID] = true
		p.Tasks = append(p.Tasks, t)
	}

	for _, d := range manifest.Dependencies {
		dep, err := d.resolve()
		if err != nil {
			return nil, fmt.Errorf("dependency %q: %w", d.ID, err)
		}
		p.Dependencies = append(p.Dependencies, dep)
	}

	return p, nil
}

// resolve applies plan defaults and converts the TOML task entry to
// the engine's task form.
func (s Spec) resolve(m Manifest) (task.Task, error) {
	if s.ID == "" {
		return task.Task{}, errors.New("missing id")
	}

	status := task.Status(s.Status)
	if s.Status == "" {
		status = task.StatusTodo
	}
	if !status.Valid() {
		return task.Task{}, fmt.Errorf("unknown status %q", s.Status)
	}

	t := task.Task{
		ID:            s.ID,
		Name:          s.Name,
		ProjectID:     m.Project.ID,
		Type:          s.Type,
		Status:        status,
		Priority:      s.Priority,
		Assignee:      s.Assignee,
		Start:         s.Start,
		Due:           s.Due,
		EstimateHours: s.EstimateHours,
		ActualHours:   s.ActualHours,
		Labels:        s.Labels,
		ParentID:      s.Parent,
		DependsOn:     s.DependsOn,
	}
	if s.Created != nil {
		t.CreatedAt = *s.Created
	}

	if t.Name == "" {
		t.Name = t.ID
	}
	if t.Priority == 0 {
		t.Priority = m.Defaults.Priority
	}
	if t.Assignee == "" {
		t.Assignee = m.Defaults.Assignee
	}
	if t.Type == "" {
		t.Type = m.Defaults.Type
	}
	if len(t.Labels) == 0 {
		t.Labels = m.Defaults.Labels
	}
	return t, nil
}

func (d DepSpec) resolve() (task.Dependency, error) {
	if d.From == "" || d.To == "" {
		return task.Dependency{}, errors.New("missing from/to")
	}
	typ := task.DependencyType(d.Type)
	if d.Type == "" {
		typ = task.FinishToStart
	}
	if !typ.Valid() {
		return task.Dependency{}, fmt.Errorf("unknown type %q", d.Type)
	}
	return task.Dependency{
		ID:            d.ID,
		PredecessorID: d.From,
		SuccessorID:   d.To,
		Type:          typ,
		LagDays:       d.LagDays,
	}, nil
}
