package questions

import (
	"context"
	"fmt"
	"sort"

	"github.com/abhisek/levelup/internal/llm"
	"github.com/abhisek/levelup/internal/model"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// GenerateForLevel produces req.Count questions for one level. Items that
// fail validation are dropped; fewer than req.Count survivors is an error.
func (g *LLMGenerator) GenerateForLevel(ctx context.Context, req LevelRequest) ([]Item, error) {
	if req.Count < 1 {
		return nil, fmt.Errorf("question count must be positive, got %d", req.Count)
	}
	ctx = llm.WithPurpose(ctx, "question-gen")

	levels := map[string]string{req.Level.ID: req.Level.Name}
	items, err := g.generate(ctx, "level-questions", levelMessage(req, g.config), levels, req.Count)
	if err != nil {
		return nil, err
	}

	byLevel, rejected := g.validate(items, levels)
	valid := byLevel[req.Level.ID]
	if len(valid) < req.Count {
		return nil, &ShortfallError{LevelID: req.Level.ID, Want: req.Count, Got: len(valid), Rejected: rejected}
	}
	return valid[:req.Count], nil
}

// GenerateAssessment produces req.PerLevel questions for every level in a
// single call. Extra questions for a level are trimmed; a level left short
// fails the whole set.
func (g *LLMGenerator) GenerateAssessment(ctx context.Context, req AssessmentRequest) ([]Item, error) {
	if len(req.Levels) == 0 {
		return nil, fmt.Errorf("no levels to assess")
	}
	if req.PerLevel < 1 {
		return nil, fmt.Errorf("questions per level must be positive, got %d", req.PerLevel)
	}
	ctx = llm.WithPurpose(ctx, "assessment-gen")

	ordered := model.SortedLevels(req.Levels)
	levels := make(map[string]string, len(ordered))
	for _, l := range ordered {
		levels[l.ID] = l.Name
	}

	total := req.PerLevel * len(ordered)
	items, err := g.generate(ctx, "assessment-questions", assessmentMessage(req), levels, total)
	if err != nil {
		return nil, err
	}

	byLevel, rejected := g.validate(items, levels)
	out := make([]Item, 0, total)
	for _, l := range ordered {
		valid := byLevel[l.ID]
		if len(valid) < req.PerLevel {
			return nil, &ShortfallError{LevelID: l.ID, Want: req.PerLevel, Got: len(valid), Rejected: rejected}
		}
		out = append(out, valid[:req.PerLevel]...)
	}
	return out, nil
}

func (g *LLMGenerator) generate(ctx context.Context, schemaName, userMsg string, levels map[string]string, count int) ([]Item, error) {
	ids := make([]string, 0, len(levels))
	for id := range levels {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      questionSetSchema(schemaName, ids),
		MaxTokens:   g.config.maxTokens(count),
		Temperature: g.config.Temperature,
	}

	raw, err := llm.GenerateStructured[questionSetOutput](ctx, g.provider, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	items := make([]Item, len(raw.Questions))
	for i, q := range raw.Questions {
		items[i] = Item{
			Prompt:        q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			LevelID:       q.LevelID,
			LevelName:     levels[q.LevelID],
		}
	}
	return items, nil
}

// validate groups items passing every validator by level id, preserving
// response order.
func (g *LLMGenerator) validate(items []Item, levels map[string]string) (map[string][]Item, []*ValidationError) {
	byLevel := make(map[string][]Item)
	var rejected []*ValidationError

next:
	for i := range items {
		for _, v := range g.config.Validators {
			if verr := v.Validate(&items[i], levels); verr != nil {
				rejected = append(rejected, verr)
				continue next
			}
		}
		byLevel[items[i].LevelID] = append(byLevel[items[i].LevelID], items[i])
	}
	return byLevel, rejected
}
