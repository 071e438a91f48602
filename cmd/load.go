package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/papapumpkin/horizon/internal/config"
	"github.com/papapumpkin/horizon/internal/plan"
	"github.com/papapumpkin/horizon/internal/store"
	"github.com/papapumpkin/horizon/internal/task"
	"github.com/papapumpkin/horizon/internal/timeline"
	"github.com/papapumpkin/horizon/internal/ui"
)

// loadRecords materializes task and dependency records from the
// configured source: the SQLite database when db_path is set,
// otherwise the plan file.
func loadRecords(ctx context.Context, cfg config.Config) ([]task.Task, []task.Dependency, error) {
	if cfg.DBPath != "" {
		st, err := store.Open(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		defer st.Close()

		tasks, err := st.Tasks(ctx, "")
		if err != nil {
			return nil, nil, err
		}
		deps, err := st.Dependencies(ctx)
		if err != nil {
			return nil, nil, err
		}
		return tasks, deps, nil
	}

	p, err := plan.Load(cfg.PlanPath)
	if err != nil {
		if errors.Is(err, plan.ErrNoManifest) {
			return nil, nil, fmt.Errorf("no task source: %s not found (set --plan or --db)", cfg.PlanPath)
		}
		return nil, nil, err
	}
	return p.Tasks, p.Dependencies, nil
}

// newEngine builds a timeline engine from config with an injected
// clock.
func newEngine(cfg config.Config, now time.Time) *timeline.Engine {
	e := timeline.New(now)
	if cfg.HoursPerDay > 0 {
		e.HoursPerDay = cfg.HoursPerDay
	}
	if cfg.PadDays > 0 {
		e.PadDays = cfg.PadDays
	}
	if cfg.DefaultWindowDays > 0 {
		e.DefaultWindowDays = cfg.DefaultWindowDays
	}
	if cfg.FloatEpsilon > 0 {
		e.Epsilon = cfg.FloatEpsilon
	}
	return e
}

// newRenderer builds the text renderer from config.
func newRenderer(cfg config.Config) *ui.Renderer {
	return &ui.Renderer{Width: cfg.RenderWidth, Color: !cfg.NoColor}
}

// parseDate parses a YYYY-MM-DD flag value.
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", value)
	}
	return t, nil
}
