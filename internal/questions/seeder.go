package questions

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/levelup/internal/model"
)

// Seeder tops up the question pool so every level holds a target number of
// questions.
type Seeder struct {
	gen    Generator
	pool   Pool
	logger *zap.Logger
}

func NewSeeder(gen Generator, pool Pool, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{gen: gen, pool: pool, logger: logger}
}

// FillResult reports how many questions were added per level id.
type FillResult map[string]int

// Fill generates the missing questions for each level of subject so the
// pool holds at least target per level. Levels already at target are
// skipped. It stops at the first generation failure; levels filled before
// it stay saved.
func (s *Seeder) Fill(ctx context.Context, subject model.Subject, target int) (FillResult, error) {
	counts, err := s.pool.CountByLevel(ctx, subject.ID)
	if err != nil {
		return nil, fmt.Errorf("count pool for %s: %w", subject.ID, err)
	}

	added := FillResult{}
	for _, level := range model.SortedLevels(subject.Levels) {
		missing := target - counts[level.ID]
		if missing <= 0 {
			s.logger.Debug("level pool full", zap.String("level_id", level.ID), zap.Int("count", counts[level.ID]))
			continue
		}

		existing, err := s.pool.FindQuestions(ctx, subject.ID, level.ID)
		if err != nil {
			return added, fmt.Errorf("load pool for %s: %w", level.ID, err)
		}
		prior := make([]string, len(existing))
		for i, q := range existing {
			prior[i] = q.Prompt
		}

		items, err := s.gen.GenerateForLevel(ctx, LevelRequest{
			SubjectName: subject.Name,
			Level:       level,
			Count:       missing,
			Prior:       prior,
		})
		if err != nil {
			return added, fmt.Errorf("generate for %s: %w", level.ID, err)
		}

		qs := make([]model.Question, len(items))
		for i, it := range items {
			qs[i] = it.Question(subject.ID)
		}
		if err := s.pool.SaveQuestions(ctx, qs); err != nil {
			return added, fmt.Errorf("save questions for %s: %w", level.ID, err)
		}
		added[level.ID] = len(qs)
		s.logger.Info("filled level pool",
			zap.String("subject_id", subject.ID),
			zap.String("level_id", level.ID),
			zap.Int("added", len(qs)))
	}
	return added, nil
}
