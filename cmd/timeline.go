package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/horizon/internal/config"
	"github.com/papapumpkin/horizon/internal/filter"
	"github.com/papapumpkin/horizon/internal/task"
	"github.com/papapumpkin/horizon/internal/timeline"
	"github.com/papapumpkin/horizon/internal/ui"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Compute and render the project timeline",
	RunE:  runTimeline,
}

func init() {
	f := timelineCmd.Flags()
	f.String("project", "", "restrict to one project id")
	f.String("from", "", "range start (YYYY-MM-DD)")
	f.String("to", "", "range end (YYYY-MM-DD)")

	f.String("assignee", "", "filter: assignee")
	f.String("status", "", "filter: workflow status")
	f.Int("priority", -1, "filter: exact priority")
	f.String("type", "", "filter: task type")
	f.String("search", "", "filter: free-text over name/id/assignee/labels")
	f.Bool("overdue", false, "filter: overdue tasks only")
	f.String("completion", "", "filter: completed|in_progress|not_started")

	f.Bool("json", false, "emit TimelineData as JSON")
	f.Bool("chains", false, "print reconstructed critical chains")

	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	now := time.Now()

	td, err := buildTimeline(cmd, cfg, now)
	if err != nil {
		return reportCycle(cmd, cfg, err)
	}

	spec, filtered, err := filterSpec(cmd)
	if err != nil {
		return err
	}

	engine := newEngine(cfg, now)
	r := newRenderer(cfg)

	var stats *filter.Stats
	if filtered {
		res := filter.Apply(engine, td, spec)
		td = &res.Timeline
		stats = &res.Stats
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(td)
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, r.Timeline(td, now))
	if stats != nil {
		fmt.Fprint(out, r.Stats(*stats))
	}
	if chains, _ := cmd.Flags().GetBool("chains"); chains {
		for _, chain := range ui.CriticalChains(td) {
			fmt.Fprintln(out, strings.Join(chain, " → "))
		}
	}
	return nil
}

// buildTimeline loads records and runs the engine with the command's
// selection flags.
func buildTimeline(cmd *cobra.Command, cfg config.Config, now time.Time) (*timeline.TimelineData, error) {
	tasks, deps, err := loadRecords(cmd.Context(), cfg)
	if err != nil {
		return nil, err
	}

	opts := timeline.Options{}
	opts.ProjectID, _ = cmd.Flags().GetString("project")

	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	if from != "" || to != "" {
		// A zero Start or End leaves that side of the window open.
		var window timeline.DateRange
		if from != "" {
			if window.Start, err = parseDate(from); err != nil {
				return nil, err
			}
		}
		if to != "" {
			if window.End, err = parseDate(to); err != nil {
				return nil, err
			}
		}
		opts.Window = &window
	}

	return newEngine(cfg, now).Build(tasks, deps, opts)
}

// filterSpec assembles the filter from flags and reports whether any
// filter flag was supplied.
func filterSpec(cmd *cobra.Command) (filter.Spec, bool, error) {
	var spec filter.Spec
	set := false

	if v, _ := cmd.Flags().GetString("assignee"); v != "" {
		spec.Assignee, set = v, true
	}
	if v, _ := cmd.Flags().GetString("status"); v != "" {
		status := task.Status(v)
		if !status.Valid() {
			return spec, false, fmt.Errorf("unknown status %q", v)
		}
		spec.Status, set = status, true
	}
	if v, _ := cmd.Flags().GetInt("priority"); v >= 0 {
		p := v
		spec.Priority, set = &p, true
	}
	if v, _ := cmd.Flags().GetString("type"); v != "" {
		spec.Type, set = v, true
	}
	if v, _ := cmd.Flags().GetString("search"); v != "" {
		spec.Search, set = v, true
	}
	if v, _ := cmd.Flags().GetBool("overdue"); v {
		spec.OverdueOnly, set = true, true
	}
	if v, _ := cmd.Flags().GetString("completion"); v != "" {
		switch filter.Completion(v) {
		case filter.CompletionDone, filter.CompletionInProgress, filter.CompletionNotStarted:
			spec.Completion, set = filter.Completion(v), true
		default:
			return spec, false, fmt.Errorf("unknown completion bucket %q", v)
		}
	}
	return spec, set, nil
}

// reportCycle renders a CycleError to stderr and converts it into a
// plain exit error; other errors pass through.
func reportCycle(cmd *cobra.Command, cfg config.Config, err error) error {
	var cycleErr *timeline.CycleError
	if errors.As(err, &cycleErr) {
		fmt.Fprint(os.Stderr, newRenderer(cfg).Cycles(cycleErr.Cycles))
		return errors.New("dependency cycles prevent scheduling")
	}
	return err
}
