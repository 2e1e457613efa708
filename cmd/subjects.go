package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/levelup/internal/model"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects [subject-id]",
	Short: "List subjects, or the levels of one subject",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		ctx := cmd.Context()

		if len(args) == 1 {
			s, err := a.Catalog.GetSubject(ctx, args[0])
			if err != nil {
				return err
			}
			printLevels(*s)
			return nil
		}

		subjects, err := a.Catalog.ListSubjects(ctx)
		if err != nil {
			return err
		}
		if len(subjects) == 0 {
			fmt.Println("No subjects found. Run `levelup seed` first.")
			return nil
		}

		fmt.Printf("%-24s  %-28s  %6s\n", "ID", "Name", "Levels")
		fmt.Println(strings.Repeat("─", 62))
		for _, s := range subjects {
			fmt.Printf("%-24s  %-28s  %6d\n", s.ID, s.Name, len(s.Levels))
		}
		fmt.Printf("\n%d subjects\n", len(subjects))
		return nil
	},
}

func printLevels(s model.Subject) {
	fmt.Printf("%s (%s)\n\n", s.Name, s.ID)
	fmt.Printf("%3s  %-32s  %-28s  %s\n", "#", "ID", "Name", "Topics")
	fmt.Println(strings.Repeat("─", 100))
	for _, l := range s.Levels {
		topics := strings.Join(l.Topics, ", ")
		if len(topics) > 40 {
			topics = topics[:37] + "..."
		}
		fmt.Printf("%3d  %-32s  %-28s  %s\n", l.Ordinal, l.ID, l.Name, topics)
	}
}
