package questions

import "github.com/abhisek/levelup/internal/llm"

// questionSetSchema builds the response schema for a question set whose
// level_id values must come from levelIDs.
func questionSetSchema(name string, levelIDs []string) *llm.Schema {
	enum := make([]any, len(levelIDs))
	for i, id := range levelIDs {
		enum[i] = id
	}
	return &llm.Schema{
		Name:        name,
		Description: "A set of multiple-choice questions, each tagged with its level",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"question": map[string]any{
								"type":        "string",
								"description": "The question text shown to the learner",
							},
							"options": map[string]any{
								"type":        "array",
								"items":       map[string]any{"type": "string"},
								"minItems":    OptionCount,
								"maxItems":    OptionCount,
								"description": "Exactly 4 distinct answer options",
							},
							"correct_answer": map[string]any{
								"type":        "string",
								"description": "The exact text of the correct option",
							},
							"explanation": map[string]any{
								"type":        "string",
								"description": "Brief explanation of why the correct answer is right",
							},
							"level_id": map[string]any{
								"type":        "string",
								"enum":        enum,
								"description": "ID of the level this question targets",
							},
						},
						"required":             []any{"question", "options", "correct_answer", "explanation", "level_id"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []any{"questions"},
			"additionalProperties": false,
		},
	}
}

// questionSetOutput is the raw LLM response before validation.
type questionSetOutput struct {
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	LevelID       string   `json:"level_id"`
}
