package feedback

// Input describes a graded quiz attempt.
type Input struct {
	Subject string
	Level   string
	Topic   string
	Score   int
	Total   int
	Missed  []Missed
}

// Missed is one question the learner got wrong or skipped.
type Missed struct {
	QuestionID     string
	Prompt         string
	SelectedAnswer string
	CorrectAnswer  string
}

// Lesson explains one missed question.
type Lesson struct {
	QuestionID string `json:"question_id"`
	Lesson     string `json:"lesson"`
}

// Suggestion is a follow-up quiz topic.
type Suggestion struct {
	Topic  string `json:"topic"`
	Reason string `json:"reason"`
}

// Feedback is the generated review of an attempt.
type Feedback struct {
	Lessons     []Lesson     `json:"lessons"`
	Suggestions []Suggestion `json:"suggestions"`
}
