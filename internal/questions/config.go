package questions

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run on every generated item in order; the first failure
	// discards the item.
	Validators []Validator

	// TokensPerQuestion budgets the response size; MaxTokens for a call is
	// BaseTokens + TokensPerQuestion * questions requested.
	BaseTokens        int
	TokensPerQuestion int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxPriorQuestions is the maximum number of prior prompts to include
	// in the prompt for deduplication.
	MaxPriorQuestions int
}

// DefaultConfig returns a Config with the structural validator and
// recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
		},
		BaseTokens:        512,
		TokensPerQuestion: 320,
		Temperature:       0.7,
		MaxPriorQuestions: 20,
	}
}

func (c Config) maxTokens(questions int) int {
	return c.BaseTokens + c.TokensPerQuestion*questions
}
