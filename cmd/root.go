// Package cmd implements the horizon CLI: timeline computation,
// dependency validation, critical-path analysis, plan import, and
// watch mode. All scheduling happens in the internal engine packages;
// cmd only loads records, invokes the engine, and renders results.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "horizon",
	Short: "Critical-path project scheduler",
	Long: "Horizon computes project schedules from tasks and dependencies: per-task\n" +
		"timing windows, cycle detection, critical tasks, and risk analysis.",
}

// Execute runs the root command and exits nonzero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .horizon.yaml)")
	rootCmd.PersistentFlags().String("plan", "", "plan.toml file or directory containing one")
	rootCmd.PersistentFlags().String("db", "", "SQLite task database (overrides --plan as source)")
	rootCmd.PersistentFlags().Int("width", 0, "render width in columns")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable styled output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("plan_path", rootCmd.PersistentFlags().Lookup("plan"))
	_ = viper.BindPFlag("db_path", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("render_width", rootCmd.PersistentFlags().Lookup("width"))
	_ = viper.BindPFlag("no_color", rootCmd.PersistentFlags().Lookup("no-color"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".horizon")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("HORIZON")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}
