// Package assessment composes placement assessments, grades them and
// suggests a starting level.
package assessment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/levelup/internal/apperr"
	"github.com/abhisek/levelup/internal/model"
	"github.com/abhisek/levelup/internal/questions"
)

// Composition policies.
const (
	// PolicyFixedTotal generates ceil(Total/levels) questions per level in
	// one LLM call. The set may exceed Total.
	PolicyFixedTotal = "fixed_total"

	// PolicyPooled samples PerLevelQuota stored questions per level and
	// generates only for levels whose pool is too small.
	PolicyPooled = "pooled"
)

// ComposerConfig selects and parameterises the composition policy.
type ComposerConfig struct {
	Policy        string
	Total         int
	PerLevelQuota int
}

// DefaultComposerConfig returns the pooled policy with three questions per
// level and an 18-question target for the fixed-total policy.
func DefaultComposerConfig() ComposerConfig {
	return ComposerConfig{Policy: PolicyPooled, Total: 18, PerLevelQuota: 3}
}

// Composer builds the question set of a placement assessment.
type Composer struct {
	gen     questions.Generator
	pool    questions.Pool
	sampler *questions.Sampler
	cfg     ComposerConfig
	logger  *zap.Logger
}

func NewComposer(gen questions.Generator, pool questions.Pool, sampler *questions.Sampler, cfg ComposerConfig, logger *zap.Logger) *Composer {
	if sampler == nil {
		sampler = questions.NewSampler(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{gen: gen, pool: pool, sampler: sampler, cfg: cfg, logger: logger}
}

// Policy returns the configured policy name.
func (c *Composer) Policy() string { return c.cfg.Policy }

// PerLevel returns the number of questions each level receives for a
// subject with levelCount levels.
func (c *Composer) PerLevel(levelCount int) int {
	if c.cfg.Policy == PolicyFixedTotal {
		return ceilDiv(c.cfg.Total, levelCount)
	}
	return c.cfg.PerLevelQuota
}

// Compose returns questions ordered by ascending level ordinal, with ids
// q1..qN. Any generation failure aborts the composition and nothing is
// persisted.
func (c *Composer) Compose(ctx context.Context, subject model.Subject) ([]model.AssessmentQuestion, error) {
	if len(subject.Levels) == 0 {
		return nil, apperr.InvalidInput("subject %q has no levels", subject.ID)
	}

	var (
		items []sourcedItem
		err   error
	)
	switch c.cfg.Policy {
	case PolicyFixedTotal:
		items, err = c.composeFixed(ctx, subject)
	case PolicyPooled:
		items, err = c.composePooled(ctx, subject)
	default:
		return nil, fmt.Errorf("unknown composition policy %q", c.cfg.Policy)
	}
	if err != nil {
		return nil, err
	}

	out := make([]model.AssessmentQuestion, len(items))
	for i, it := range items {
		out[i] = model.AssessmentQuestion{
			ID:            questions.SequentialID(i + 1),
			Prompt:        it.Prompt,
			Options:       it.Options,
			CorrectAnswer: it.CorrectAnswer,
			Explanation:   it.Explanation,
			LevelID:       it.LevelID,
			LevelName:     it.LevelName,
			SourceID:      it.sourceID,
		}
	}
	return out, nil
}

func (c *Composer) composeFixed(ctx context.Context, subject model.Subject) ([]sourcedItem, error) {
	items, err := c.gen.GenerateAssessment(ctx, questions.AssessmentRequest{
		SubjectName: subject.Name,
		Levels:      subject.Levels,
		PerLevel:    c.PerLevel(len(subject.Levels)),
	})
	if err != nil {
		return nil, apperr.Generation("generate assessment for "+subject.ID, err)
	}
	out := make([]sourcedItem, len(items))
	for i, it := range items {
		out[i] = sourcedItem{Item: it, fresh: true}
	}
	return out, nil
}

// sourcedItem remembers the pool question an item came from. fresh items
// were generated during this composition.
type sourcedItem struct {
	questions.Item
	sourceID string
	fresh    bool
}

func (c *Composer) composePooled(ctx context.Context, subject model.Subject) ([]sourcedItem, error) {
	quota := c.cfg.PerLevelQuota
	var picked []sourcedItem

	for _, level := range model.SortedLevels(subject.Levels) {
		pool, err := c.pool.FindQuestions(ctx, subject.ID, level.ID)
		if err != nil {
			return nil, fmt.Errorf("load pool for %s: %w", level.ID, err)
		}

		if len(pool) >= quota {
			for _, q := range c.sampler.Sample(pool, quota) {
				picked = append(picked, sourcedItem{Item: questions.FromQuestion(q, level.Name), sourceID: q.ID})
			}
			continue
		}

		c.logger.Info("pool short, generating",
			zap.String("level_id", level.ID),
			zap.Int("pool", len(pool)),
			zap.Int("quota", quota))

		prior := make([]string, len(pool))
		for i, q := range pool {
			prior[i] = q.Prompt
		}
		items, err := c.gen.GenerateForLevel(ctx, questions.LevelRequest{
			SubjectName: subject.Name,
			Level:       level,
			Count:       quota,
			Prior:       prior,
		})
		if err != nil {
			return nil, apperr.Generation("generate questions for level "+level.ID, err)
		}
		for _, it := range items {
			picked = append(picked, sourcedItem{Item: it, fresh: true})
		}
	}

	c.saveFresh(ctx, subject.ID, picked)
	return picked, nil
}

// saveFresh adds generated questions to the pool. A failed save only
// costs future reuse, so it is logged and ignored.
func (c *Composer) saveFresh(ctx context.Context, subjectID string, picked []sourcedItem) {
	var fresh []model.Question
	for _, p := range picked {
		if p.fresh {
			fresh = append(fresh, p.Question(subjectID))
		}
	}
	if len(fresh) == 0 {
		return
	}
	if err := c.pool.SaveQuestions(ctx, fresh); err != nil {
		c.logger.Warn("failed to save generated questions to pool",
			zap.String("subject_id", subjectID), zap.Error(err))
	}
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
