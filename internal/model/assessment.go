package model

import "time"

// AssessmentQuestion is one question in a placement assessment, tagged with
// the level it probes.
type AssessmentQuestion struct {
	ID            string   `json:"id"`
	Prompt        string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	LevelID       string   `json:"level_id"`
	LevelName     string   `json:"level"`
	SourceID      string   `json:"source_id,omitempty"`
}

// LevelScore is the per-level tally of an assessment.
type LevelScore struct {
	LevelID   string `json:"level_id"`
	LevelName string `json:"level_name"`
	Ordinal   int    `json:"ordinal"`
	Correct   int    `json:"correct"`
	Total     int    `json:"total"`
}

// Percentage returns Correct/Total as a percentage, or 0 when Total is 0.
func (s LevelScore) Percentage() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) * 100 / float64(s.Total)
}

// Assessment is a placement test for one user and subject. It is completed
// at most once.
type Assessment struct {
	ID               string               `json:"id"`
	UserID           string               `json:"user_id"`
	SubjectID        string               `json:"subject_id"`
	Questions        []AssessmentQuestion `json:"questions"`
	Answers          []GradedAnswer       `json:"answers,omitempty"`
	Scores           []LevelScore         `json:"scores,omitempty"`
	SuggestedLevelID string               `json:"suggested_level_id,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
	CompletedAt      *time.Time           `json:"completed_at,omitempty"`
}

// Completed reports whether results have been recorded.
func (a *Assessment) Completed() bool {
	return a.CompletedAt != nil
}

// UserSubjectLevel is a user's placement within one subject.
type UserSubjectLevel struct {
	UserID           string     `json:"user_id"`
	SubjectID        string     `json:"subject_id"`
	CurrentLevelID   string     `json:"current_level_id,omitempty"`
	SuggestedLevelID string     `json:"suggested_level_id,omitempty"`
	LastAssessedAt   *time.Time `json:"last_assessed_at,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
