package model

import "time"

// Question is a multiple-choice question stored in the pre-generated pool
// for a subject level.
type Question struct {
	ID            string    `json:"id"`
	SubjectID     string    `json:"subject_id"`
	LevelID       string    `json:"level_id"`
	Prompt        string    `json:"question"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"correct_answer"`
	Explanation   string    `json:"explanation"`
	CreatedAt     time.Time `json:"created_at"`
}

// Answer is a learner's selection for one question.
type Answer struct {
	QuestionID     string `json:"question_id"`
	SelectedAnswer string `json:"selected_answer"`
}

// GradedAnswer is a submitted answer annotated with its correctness.
type GradedAnswer struct {
	QuestionID     string `json:"question_id"`
	SelectedAnswer string `json:"selected_answer"`
	IsCorrect      bool   `json:"is_correct"`
}

// Matches reports whether selected is exactly the correct answer. The
// comparison is case-sensitive with no trimming.
func Matches(correct, selected string) bool {
	return correct == selected
}

// ClientQuestion is the learner-facing view of a question: the answer key
// and explanation are withheld until grading.
type ClientQuestion struct {
	ID        string   `json:"id"`
	Prompt    string   `json:"question"`
	Options   []string `json:"options"`
	LevelID   string   `json:"level_id,omitempty"`
	LevelName string   `json:"level,omitempty"`
}

// ClientAssessmentQuestions strips answer keys from assessment questions.
func ClientAssessmentQuestions(qs []AssessmentQuestion) []ClientQuestion {
	out := make([]ClientQuestion, len(qs))
	for i, q := range qs {
		out[i] = ClientQuestion{ID: q.ID, Prompt: q.Prompt, Options: q.Options, LevelID: q.LevelID, LevelName: q.LevelName}
	}
	return out
}

// ClientQuizQuestions strips answer keys from quiz questions.
func ClientQuizQuestions(qs []QuizQuestion) []ClientQuestion {
	out := make([]ClientQuestion, len(qs))
	for i, q := range qs {
		out[i] = ClientQuestion{ID: q.ID, Prompt: q.Prompt, Options: q.Options}
	}
	return out
}
