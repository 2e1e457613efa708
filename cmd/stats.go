package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a learner's progress statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		st, err := a.Progress.Stats(cmd.Context(), userID)
		if err != nil {
			return err
		}

		fmt.Printf("Streak:       %d day(s), longest %d\n", st.Streak.Current, st.Streak.Longest)
		fmt.Printf("Quizzes:      %d (%d this week)\n", st.Overall.TotalQuizzes, st.Overall.QuizzesThisWeek)
		fmt.Printf("Questions:    %d\n", st.Overall.TotalQuestions)
		fmt.Printf("Accuracy:     %d%%\n", st.Overall.AccuracyPct)

		fmt.Println()
		fmt.Printf("%-24s  %-22s  %-22s  %7s  %5s\n", "Subject", "Current", "Suggested", "Quizzes", "Acc")
		fmt.Println(strings.Repeat("─", 88))
		for _, s := range st.Subjects {
			current, suggested := "-", "-"
			if s.CurrentLevel != nil {
				current = s.CurrentLevel.Name
			}
			if s.SuggestedLevel != nil {
				suggested = s.SuggestedLevel.Name
			}
			fmt.Printf("%-24s  %-22s  %-22s  %7d  %4d%%\n",
				truncate(s.SubjectName, 24), truncate(current, 22), truncate(suggested, 22),
				s.QuizzesCompleted, s.AccuracyPct)
		}

		if len(st.Recent) > 0 {
			fmt.Println("\nRecent activity:")
			for _, r := range st.Recent {
				fmt.Printf("  %s  %-28s  %d/%d\n",
					r.CompletedAt.Local().Format("2006-01-02 15:04"), truncate(r.TopicName, 28), r.Score, r.TotalQuestions)
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().String("user", "cli", "Learner ID")
}
