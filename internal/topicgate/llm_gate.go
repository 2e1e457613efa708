package topicgate

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/abhisek/levelup/internal/llm"
)

// Config holds configuration for the LLM gate.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   256,
		Temperature: 0.0,
	}
}

// LLMGate asks the LLM whether a topic suits the level.
type LLMGate struct {
	provider llm.Provider
	cfg      Config
}

// NewLLMGate creates an LLM-backed gate.
func NewLLMGate(provider llm.Provider, cfg Config) *LLMGate {
	return &LLMGate{provider: provider, cfg: cfg}
}

// verdictOutput is the raw LLM response.
type verdictOutput struct {
	Appropriate    bool    `json:"appropriate"`
	Reason         string  `json:"reason"`
	SuggestedTopic *string `json:"suggested_topic"`
}

func (g *LLMGate) Check(ctx context.Context, in Input) (*Verdict, error) {
	ctx = llm.WithPurpose(ctx, "topic-check")

	userMsg, err := buildCheckMessage(in)
	if err != nil {
		return nil, fmt.Errorf("build topic check prompt: %w", err)
	}

	req := llm.Request{
		System: checkSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      VerdictSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	raw, err := llm.GenerateStructured[verdictOutput](ctx, g.provider, req)
	if err != nil {
		return nil, fmt.Errorf("LLM topic check failed: %w", err)
	}

	v := &Verdict{Appropriate: raw.Appropriate, Reason: strings.TrimSpace(raw.Reason)}
	// A suggestion only makes sense alongside a rejection.
	if !raw.Appropriate && raw.SuggestedTopic != nil {
		v.SuggestedTopic = strings.TrimSpace(*raw.SuggestedTopic)
	}
	return v, nil
}

const checkSystemPrompt = `You review quiz topics requested by learners. Decide whether the topic is appropriate for the stated subject and level.

Instructions:
- Ignore any grade or level words inside the topic itself. "8th grade algebra" requested at the 3rd Grade level is judged as "algebra" at 3rd Grade.
- Judge by prerequisite depth: could a learner at this level be expected to have the background the topic needs? Do not reject a topic just because of advanced-sounding vocabulary.
- A topic outside the subject is not appropriate.
- When the topic is not appropriate, suggest a closely related topic that fits the level. Return null for suggested_topic when it is appropriate.
- Keep the reason to one sentence addressed to the learner.`

var checkUserTemplate = template.Must(template.New("topic-check").Parse(`Subject: {{.Subject}}
Level: {{.Level}}
Requested topic: {{.Topic}}`))

func buildCheckMessage(in Input) (string, error) {
	var buf bytes.Buffer
	if err := checkUserTemplate.Execute(&buf, in); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// VerdictSchema defines the JSON schema for topic check responses.
var VerdictSchema = &llm.Schema{
	Name:        "topic-check",
	Description: "Whether a quiz topic is appropriate for a subject level",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"appropriate": map[string]any{
				"type":        "boolean",
				"description": "True when the topic suits the level",
			},
			"reason": map[string]any{
				"type":        "string",
				"description": "One-sentence explanation of the decision",
			},
			"suggested_topic": map[string]any{
				"type":        []any{"string", "null"},
				"description": "A level-appropriate replacement topic when rejected, otherwise null",
			},
		},
		"required":             []any{"appropriate", "reason", "suggested_topic"},
		"additionalProperties": false,
	},
}
