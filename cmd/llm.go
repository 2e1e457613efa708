package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/levelup/internal/llm"
	"github.com/abhisek/levelup/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM request/response events",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		user, _ := cmd.Flags().GetString("user")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		events, err := s.Events().QueryLLMEvents(ctx, store.QueryOpts{Limit: limit, Purpose: purpose, UserID: user})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No LLM events found.")
			return nil
		}

		// Header.
		fmt.Printf("%-5s  %-19s  %-20s  %-12s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Purpose", "User", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("\u2500", 120))

		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			model := e.Model
			if len(model) > 28 {
				model = model[:28]
			}
			user := e.UserID
			if user == "" {
				user = "-"
			} else if len(user) > 12 {
				user = user[:12]
			}
			fmt.Printf("%-5d  %-19s  %-20s  %-12s  %-28s  %-6d  %-6d  %-7d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				user,
				model,
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View full request/response for an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		e, err := s.Events().GetLLMEvent(ctx, id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		sep := strings.Repeat("\u2500", 60)

		fmt.Printf("ID:        %d\n", e.ID)
		fmt.Printf("Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Provider:  %s\n", e.Provider)
		fmt.Printf("Model:     %s\n", e.Model)
		fmt.Printf("Purpose:   %s\n", e.Purpose)
		if e.UserID != "" {
			fmt.Printf("User:      %s\n", e.UserID)
		}
		fmt.Printf("Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
		fmt.Printf("Latency:   %dms\n", e.LatencyMs)
		fmt.Printf("Success:   %v\n", e.Success)
		if e.ErrorMessage != "" {
			fmt.Printf("Error:     %s\n", e.ErrorMessage)
		}

		fmt.Println()
		fmt.Println(sep)
		fmt.Println("REQUEST")
		fmt.Println(sep)
		if e.RequestBody != "" {
			fmt.Println(e.RequestBody)
		} else {
			fmt.Println("(not captured)")
		}

		fmt.Println(sep)
		fmt.Println("RESPONSE")
		fmt.Println(sep)
		if e.ResponseBody != "" {
			fmt.Println(e.ResponseBody)
		} else {
			fmt.Println("(not captured)")
		}

		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		top, _ := cmd.Flags().GetInt("top")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		return writeLLMStats(cmd.Context(), cmd.OutOrStdout(), s.Events(), top)
	},
}

// usageSource is the aggregate side of the event store.
type usageSource interface {
	LLMUsageByPurpose(ctx context.Context) ([]store.LLMUsage, error)
	LLMUsageByModel(ctx context.Context) ([]store.LLMUsage, error)
	LLMUsageByUser(ctx context.Context) ([]store.LLMUsage, error)
}

// writeLLMStats prints usage by purpose, estimated cost by model and the
// topUsers heaviest users by total tokens.
func writeLLMStats(ctx context.Context, w io.Writer, src usageSource, topUsers int) error {
	rule := strings.Repeat("\u2500", 72)

	byPurpose, err := src.LLMUsageByPurpose(ctx)
	if err != nil {
		return fmt.Errorf("query usage: %w", err)
	}
	if len(byPurpose) == 0 {
		fmt.Fprintln(w, "No LLM usage recorded yet.")
		return nil
	}

	fmt.Fprintln(w, "Usage by Purpose")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-20s  %6s  %10s  %10s  %10s  %8s\n", "Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
	fmt.Fprintln(w, rule)
	var sum store.LLMUsage
	for _, u := range byPurpose {
		fmt.Fprintf(w, "%-20s  %6d  %10d  %10d  %10d  %8d\n",
			truncate(u.Purpose, 20), u.Calls, u.InputTokens, u.OutputTokens, u.InputTokens+u.OutputTokens, u.AvgLatencyMs)
		sum.Calls += u.Calls
		sum.InputTokens += u.InputTokens
		sum.OutputTokens += u.OutputTokens
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-20s  %6d  %10d  %10d  %10d\n", "TOTAL", sum.Calls, sum.InputTokens, sum.OutputTokens, sum.InputTokens+sum.OutputTokens)

	byModel, err := src.LLMUsageByModel(ctx)
	if err != nil {
		return fmt.Errorf("query model usage: %w", err)
	}
	if len(byModel) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Estimated Cost (USD)")
		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
		fmt.Fprintln(w, rule)

		var total float64
		var unpriced []string
		for _, u := range byModel {
			cost := "?"
			if p := llm.LookupCost(u.Model); p != nil {
				c := p.Cost(u.InputTokens, u.OutputTokens)
				total += c
				cost = formatCost(c)
			} else {
				unpriced = append(unpriced, u.Model)
			}
			fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n", truncate(u.Model, 32), u.Calls, u.InputTokens, u.OutputTokens, cost)
		}
		fmt.Fprintln(w, rule)
		label := "TOTAL"
		if len(unpriced) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(total))
		if len(unpriced) > 0 {
			fmt.Fprintf(w, "\nPricing unavailable for: %s\n", strings.Join(unpriced, ", "))
		}
	}

	if topUsers <= 0 {
		return nil
	}
	byUser, err := src.LLMUsageByUser(ctx)
	if err != nil {
		return fmt.Errorf("query user usage: %w", err)
	}
	if len(byUser) == 0 {
		return nil
	}
	sort.SliceStable(byUser, func(i, j int) bool {
		return byUser[i].InputTokens+byUser[i].OutputTokens > byUser[j].InputTokens+byUser[j].OutputTokens
	})
	if len(byUser) > topUsers {
		byUser = byUser[:topUsers]
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Top Users")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", "User", "Calls", "Input", "Output", "Total")
	fmt.Fprintln(w, rule)
	for _, u := range byUser {
		fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10d\n",
			truncate(u.UserID, 32), u.Calls, u.InputTokens, u.OutputTokens, u.InputTokens+u.OutputTokens)
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. question-gen, topic-check, feedback-lessons)")
	llmListCmd.Flags().StringP("user", "u", "", "Filter by user id")

	llmStatsCmd.Flags().Int("top", 10, "Number of heaviest users to list (0 hides the section)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
