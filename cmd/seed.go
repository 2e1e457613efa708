package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the subject catalog and optionally fill question pools",
	Long: `Upsert the built-in subjects and levels. With --questions N, also
generate questions until every level's pool holds at least N. Levels that
already hold N are skipped, so the command can be rerun after a failure.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		perLevel, _ := cmd.Flags().GetInt("questions")
		if perLevel < 0 {
			return fmt.Errorf("--questions must not be negative")
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		if err := a.SeedCatalog(ctx); err != nil {
			return err
		}
		fmt.Println("Catalog seeded.")

		if perLevel == 0 {
			return nil
		}

		fmt.Printf("Filling question pools to %d per level...\n", perLevel)
		results, err := a.FillPools(ctx, perLevel)

		ids := make([]string, 0, len(results))
		for id := range results {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			added := 0
			for _, n := range results[id] {
				added += n
			}
			fmt.Printf("  %-24s  %4d added\n", id, added)
		}
		return err
	},
}

func init() {
	seedCmd.Flags().Int("questions", 0, "Target pool size per level (0 skips generation)")
}
