package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/horizon/internal/config"
	"github.com/papapumpkin/horizon/internal/impact"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score critical tasks and assess delivery risk",
	RunE:  runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.String("project", "", "restrict to one project id")
	f.String("from", "", "range start (YYYY-MM-DD)")
	f.String("to", "", "range end (YYYY-MM-DD)")
	f.Bool("json", false, "emit the analysis report as JSON")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	now := time.Now()

	td, err := buildTimeline(cmd, cfg, now)
	if err != nil {
		return reportCycle(cmd, cfg, err)
	}

	report := impact.Analyze(td, now)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprint(cmd.OutOrStdout(), newRenderer(cfg).Analysis(report))
	return nil
}
