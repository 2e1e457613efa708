package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/levelup/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "levelup",
	Short: "AI quiz platform with placement assessments",
	Long: `LevelUp places learners at a level per subject with an AI-generated
assessment, then serves topic quizzes, feedback and progress stats.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LEVELUP_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to levelup.yaml or a directory containing it")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(subjectsCmd)
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(repairCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then database.path from config, then LEVELUP_DB env var, then
// the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
