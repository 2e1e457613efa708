package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/levelup/internal/assessment"
	"github.com/abhisek/levelup/internal/model"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Take a placement assessment in the terminal",
	Long: `Start a placement assessment for a subject and answer it interactively.

Answers are stored like any other submission, so the suggested level shows up
in the learner's stats.`,
	RunE: runAssess,
}

func init() {
	assessCmd.Flags().String("subject", "", "Subject ID (required)")
	assessCmd.Flags().String("user", "cli", "Learner ID to record the assessment under")
	_ = assessCmd.MarkFlagRequired("subject")
}

func runAssess(cmd *cobra.Command, args []string) error {
	subjectID, _ := cmd.Flags().GetString("subject")
	userID, _ := cmd.Flags().GetString("user")

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	ctx := cmd.Context()

	subject, err := a.Catalog.GetSubject(ctx, subjectID)
	if err != nil {
		return err
	}

	fmt.Printf("Subject: %s (%d levels)\n", subject.Name, len(subject.Levels))
	fmt.Println("Preparing questions...")
	fmt.Println()

	started, err := a.Assessments.Start(ctx, userID, subject.ID)
	if err != nil {
		return fmt.Errorf("start assessment: %w", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	answers := make([]model.Answer, 0, len(started.Questions))
	total := len(started.Questions)

	for i, q := range started.Questions {
		fmt.Printf("── Question %d/%d (%s) ──\n", i+1, total, q.LevelName)
		fmt.Println(q.Prompt)
		for j, opt := range q.Options {
			fmt.Printf("  %d) %s\n", j+1, opt)
		}

		fmt.Print("\nYour answer: ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		choice := pickOption(strings.TrimSpace(scanner.Text()), q.Options)
		if choice == "" {
			fmt.Print("(skipped)\n\n")
			continue
		}
		answers = append(answers, model.Answer{QuestionID: q.ID, SelectedAnswer: choice})
		fmt.Println()
	}

	res, err := a.Assessments.Submit(ctx, userID, started.ID, answers)
	if err != nil {
		return fmt.Errorf("submit assessment: %w", err)
	}

	printAssessmentResult(res)
	return nil
}

// pickOption accepts an option number or the option text.
func pickOption(input string, options []string) string {
	if input == "" {
		return ""
	}
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(options) {
			return options[n-1]
		}
		return ""
	}
	for _, opt := range options {
		if strings.EqualFold(opt, input) {
			return opt
		}
	}
	return input
}

func printAssessmentResult(res *assessment.Result) {
	fmt.Printf("── Result: %d/%d correct ──\n", res.Correct, res.Total)
	for _, s := range res.Scores {
		fmt.Printf("  %-28s  %2d/%-2d  %5.1f%%\n", s.LevelName, s.Correct, s.Total, s.Percentage())
	}
	if res.Suggested != nil {
		fmt.Printf("\nSuggested level: %s\n", res.Suggested.Name)
	}

	// Review of wrong answers.
	byID := make(map[string]model.AssessmentQuestion, len(res.Assessment.Questions))
	for _, q := range res.Assessment.Questions {
		byID[q.ID] = q
	}
	var header bool
	for _, g := range res.Assessment.Answers {
		if g.IsCorrect {
			continue
		}
		if !header {
			fmt.Println("\nReview:")
			header = true
		}
		q := byID[g.QuestionID]
		fmt.Printf("  %s %s\n    Answer: %s\n", g.QuestionID, q.Prompt, q.CorrectAnswer)
		if q.Explanation != "" {
			fmt.Printf("    %s\n", q.Explanation)
		}
	}
}
