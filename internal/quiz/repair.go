package quiz

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/abhisek/levelup/internal/model"
)

// RepairAction names a first-attempt flag change.
type RepairAction string

const (
	ActionUnmarkedIncomplete RepairAction = "unmarked_incomplete_first_attempt"
	ActionMarkedComplete     RepairAction = "marked_complete_as_first_attempt"
)

// Change is one flag flip made by a repair.
type Change struct {
	AttemptID string       `json:"attempt_id"`
	QuizID    string       `json:"quiz_id"`
	UserID    string       `json:"user_id"`
	Action    RepairAction `json:"action"`
}

// RepairReport summarises a repair run. Fixed counts the first attempts
// that were unmarked.
type RepairReport struct {
	Fixed   int      `json:"fixed"`
	Changes []Change `json:"changes"`
}

// PlanRepair finds first attempts where fewer than half the questions were
// answered and unmarks them. For each one it then marks the earliest fully
// answered attempt on the same quiz by the same user, unless that attempt
// is already flagged.
func PlanRepair(attempts []model.Attempt) RepairReport {
	type key struct{ user, quiz string }
	groups := map[key][]*model.Attempt{}
	var keys []key
	for i := range attempts {
		a := &attempts[i]
		k := key{a.UserID, a.QuizID}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], a)
	}

	report := RepairReport{Changes: []Change{}}
	for _, k := range keys {
		group := groups[k]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].CompletedAt.Before(group[j].CompletedAt)
		})

		flags := make(map[string]bool, len(group))
		for _, a := range group {
			flags[a.ID] = a.IsFirstAttempt
		}

		for _, a := range group {
			if !flags[a.ID] || Substantive(Answered(a.Answers), a.TotalQuestions) {
				continue
			}
			flags[a.ID] = false
			report.Fixed++
			report.Changes = append(report.Changes, Change{a.ID, a.QuizID, a.UserID, ActionUnmarkedIncomplete})

			for _, c := range group {
				if Answered(c.Answers) != c.TotalQuestions {
					continue
				}
				if !flags[c.ID] {
					flags[c.ID] = true
					report.Changes = append(report.Changes, Change{c.ID, c.QuizID, c.UserID, ActionMarkedComplete})
				}
				break
			}
		}
	}
	return report
}

// RepairFirstAttempts applies PlanRepair to every stored attempt.
func (s *Service) RepairFirstAttempts(ctx context.Context) (RepairReport, error) {
	all, err := s.attempts.ListAllAttempts(ctx)
	if err != nil {
		return RepairReport{}, fmt.Errorf("list attempts: %w", err)
	}

	report := PlanRepair(all)
	flags := make(map[string]bool, len(report.Changes))
	for _, c := range report.Changes {
		flags[c.AttemptID] = c.Action == ActionMarkedComplete
	}
	if err := s.attempts.SetFirstAttemptFlags(ctx, flags); err != nil {
		return RepairReport{}, fmt.Errorf("apply repair: %w", err)
	}

	s.logger.Info("first attempts repaired",
		zap.Int("fixed", report.Fixed),
		zap.Int("changes", len(report.Changes)))
	return report, nil
}
