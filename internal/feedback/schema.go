package feedback

import "github.com/abhisek/levelup/internal/llm"

// lessonsSchema constrains question ids to the missed ones.
func lessonsSchema(questionIDs []string) *llm.Schema {
	ids := make([]any, len(questionIDs))
	for i, id := range questionIDs {
		ids[i] = id
	}
	return &llm.Schema{
		Name:        "mini-lessons",
		Description: "One short lesson per missed quiz question",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"lessons": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"question_id": map[string]any{
								"type": "string",
								"enum": ids,
							},
							"lesson": map[string]any{
								"type":        "string",
								"description": "2-4 sentence mini-lesson",
							},
						},
						"required":             []any{"question_id", "lesson"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []any{"lessons"},
			"additionalProperties": false,
		},
	}
}

// SuggestionsSchema defines follow-up quiz topics.
var SuggestionsSchema = &llm.Schema{
	Name:        "topic-suggestions",
	Description: "Follow-up quiz topics at the same level",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"suggestions": map[string]any{
				"type":     "array",
				"minItems": 2,
				"maxItems": 3,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"topic": map[string]any{
							"type":        "string",
							"description": "Quiz topic name",
						},
						"reason": map[string]any{
							"type":        "string",
							"description": "One sentence on why this topic helps",
						},
					},
					"required":             []any{"topic", "reason"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"suggestions"},
		"additionalProperties": false,
	},
}
