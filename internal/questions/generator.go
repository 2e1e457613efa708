// Package questions generates multiple-choice questions with an LLM and
// manages the per-level question pool.
package questions

import "context"

// Generator produces validated multiple-choice questions.
type Generator interface {
	// GenerateForLevel produces req.Count questions for a single level,
	// optionally focused on req.Topic.
	GenerateForLevel(ctx context.Context, req LevelRequest) ([]Item, error)

	// GenerateAssessment produces req.PerLevel questions for every level in
	// one call, returned in ascending level order.
	GenerateAssessment(ctx context.Context, req AssessmentRequest) ([]Item, error)
}
