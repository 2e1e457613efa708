package feedback

// Config holds feedback generation settings.
type Config struct {
	LessonMaxTokens     int
	SuggestionMaxTokens int
	Temperature         float64
}

// DefaultConfig returns the defaults used by the server.
func DefaultConfig() Config {
	return Config{
		LessonMaxTokens:     1500,
		SuggestionMaxTokens: 512,
		Temperature:         0.5,
	}
}
