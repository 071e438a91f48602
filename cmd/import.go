package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/horizon/internal/config"
	"github.com/papapumpkin/horizon/internal/plan"
	"github.com/papapumpkin/horizon/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a plan file into the task database",
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if cfg.DBPath == "" {
		return errors.New("import requires --db")
	}

	p, err := plan.Load(cfg.PlanPath)
	if err != nil {
		return err
	}

	st, err := store.Open(cmd.Context(), cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Import(cmd.Context(), p.Tasks, p.Dependencies); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d tasks and %d dependencies into %s\n",
		len(p.Tasks), len(p.Dependencies), cfg.DBPath)
	return nil
}
