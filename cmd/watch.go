package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/horizon/internal/config"
	"github.com/papapumpkin/horizon/internal/plan"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Recompute and render the timeline whenever the plan changes",
	Long: "Watch monitors the plan file and reruns the full computation on every\n" +
		"change. Each run is a complete rebuild from the records on disk, so the\n" +
		"rendered view always matches what a fresh invocation would produce.",
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().String("project", "", "restrict to one project id")
	watchCmd.Flags().String("from", "", "range start (YYYY-MM-DD)")
	watchCmd.Flags().String("to", "", "range end (YYYY-MM-DD)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if cfg.DBPath != "" {
		return errors.New("watch works on plan files; drop --db")
	}

	render := func() {
		td, err := buildTimeline(cmd, cfg, time.Now())
		if err != nil {
			// reportCycle renders cycles to stderr and flattens the
			// error; a broken plan must not kill the watch loop.
			fmt.Fprintln(os.Stderr, reportCycle(cmd, cfg, err))
			return
		}
		fmt.Fprint(cmd.OutOrStdout(), newRenderer(cfg).Timeline(td, time.Now()))
	}

	render()

	w, err := plan.NewWatcher(cfg.PlanPath)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-w.Changes:
			fmt.Fprintf(cmd.OutOrStdout(), "\nplan changed, recomputing %s\n", time.Now().Format(time.Kitchen))
			render()
		case <-sig:
			return nil
		case <-cmd.Context().Done():
			return nil
		}
	}
}
