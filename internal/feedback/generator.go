package feedback

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/levelup/internal/llm"
)

// Generator writes lessons and topic suggestions for an attempt.
type Generator struct {
	provider llm.Provider
	cfg      Config
}

func NewGenerator(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, cfg: cfg}
}

type lessonsOutput struct {
	Lessons []Lesson `json:"lessons"`
}

type suggestionsOutput struct {
	Suggestions []Suggestion `json:"suggestions"`
}

// Generate runs the lesson and suggestion calls concurrently. With nothing
// missed only suggestions are requested. Either call failing fails the
// whole request.
func (g *Generator) Generate(ctx context.Context, in Input) (*Feedback, error) {
	out := &Feedback{Lessons: []Lesson{}, Suggestions: []Suggestion{}}

	eg, ctx := errgroup.WithContext(ctx)
	if len(in.Missed) > 0 {
		eg.Go(func() error {
			lessons, err := g.lessons(ctx, in)
			if err != nil {
				return err
			}
			out.Lessons = lessons
			return nil
		})
	}
	eg.Go(func() error {
		suggestions, err := g.suggestions(ctx, in)
		if err != nil {
			return err
		}
		out.Suggestions = suggestions
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Generator) lessons(ctx context.Context, in Input) ([]Lesson, error) {
	ctx = llm.WithPurpose(ctx, "feedback-lessons")

	ids := make([]string, len(in.Missed))
	for i, m := range in.Missed {
		ids[i] = m.QuestionID
	}
	req := llm.Request{
		System: lessonSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildLessonUserMessage(in, in.Missed)},
		},
		Schema:      lessonsSchema(ids),
		MaxTokens:   g.cfg.LessonMaxTokens,
		Temperature: g.cfg.Temperature,
	}

	raw, err := llm.GenerateStructured[lessonsOutput](ctx, g.provider, req)
	if err != nil {
		return nil, fmt.Errorf("lesson generation: %w", err)
	}

	// Keep one lesson per missed question, in quiz order.
	byID := make(map[string]string, len(raw.Lessons))
	for _, l := range raw.Lessons {
		text := strings.TrimSpace(l.Lesson)
		if _, seen := byID[l.QuestionID]; !seen && text != "" {
			byID[l.QuestionID] = text
		}
	}
	lessons := make([]Lesson, 0, len(byID))
	for _, id := range ids {
		if text, ok := byID[id]; ok {
			lessons = append(lessons, Lesson{QuestionID: id, Lesson: text})
		}
	}
	return lessons, nil
}

func (g *Generator) suggestions(ctx context.Context, in Input) ([]Suggestion, error) {
	ctx = llm.WithPurpose(ctx, "feedback-suggestions")

	req := llm.Request{
		System: suggestionSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildSuggestionUserMessage(in, in.Missed)},
		},
		Schema:      SuggestionsSchema,
		MaxTokens:   g.cfg.SuggestionMaxTokens,
		Temperature: g.cfg.Temperature,
	}

	raw, err := llm.GenerateStructured[suggestionsOutput](ctx, g.provider, req)
	if err != nil {
		return nil, fmt.Errorf("suggestion generation: %w", err)
	}
	out := make([]Suggestion, 0, len(raw.Suggestions))
	for _, s := range raw.Suggestions {
		if topic := strings.TrimSpace(s.Topic); topic != "" {
			out = append(out, Suggestion{Topic: topic, Reason: strings.TrimSpace(s.Reason)})
		}
	}
	return out, nil
}
