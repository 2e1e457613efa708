package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var repairCmd = &cobra.Command{
	Use:   "repair-attempts",
	Short: "Unmark incomplete first attempts and promote complete ones",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.Quizzes.RepairFirstAttempts(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Fixed %d incomplete first attempts\n", report.Fixed)
		for _, c := range report.Changes {
			fmt.Printf("  %-36s  quiz %-36s  user %-16s  %s\n", c.AttemptID, c.QuizID, c.UserID, c.Action)
		}
		return nil
	},
}
