package model

import "time"

// QuizQuestion is one question inside a generated quiz.
type QuizQuestion struct {
	ID            string   `json:"id"`
	Prompt        string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// QuizCategory groups quizzes generated for the same subject, level and
// free-text topic.
type QuizCategory struct {
	ID        string    `json:"id"`
	SubjectID string    `json:"subject_id"`
	LevelID   string    `json:"level_id"`
	TopicName string    `json:"topic_name"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Quiz is a generated set of questions on a topic.
type Quiz struct {
	ID               string         `json:"id"`
	Category         QuizCategory   `json:"category"`
	Questions        []QuizQuestion `json:"questions"`
	QuestionCount    int            `json:"question_count"`
	TimeLimitMinutes int            `json:"time_limit_minutes,omitempty"`
	CreatedBy        string         `json:"created_by"`
	CreatedAt        time.Time      `json:"created_at"`
}

// Attempt is one scored submission of a quiz. Only a user's first
// substantive attempt per quiz counts toward totals.
type Attempt struct {
	ID               string         `json:"id"`
	QuizID           string         `json:"quiz_id"`
	UserID           string         `json:"user_id"`
	Answers          []GradedAnswer `json:"answers"`
	Score            int            `json:"score"`
	TotalQuestions   int            `json:"total_questions"`
	TimeTakenSeconds int            `json:"time_taken_seconds"`
	IsFirstAttempt   bool           `json:"is_first_attempt"`
	CompletedAt      time.Time      `json:"completed_at"`
}

// User carries the streak counters kept per learner. Identity itself is
// owned by the upstream authenticator.
type User struct {
	ID            string `json:"id"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	// LastQuizDate is the calendar day (YYYY-MM-DD) of the last completed
	// quiz in the learner's timezone.
	LastQuizDate string `json:"last_quiz_date,omitempty"`
}

// AttemptSummary is an attempt joined with its quiz's category, used for
// progress statistics.
type AttemptSummary struct {
	AttemptID        string    `json:"attempt_id"`
	QuizID           string    `json:"quiz_id"`
	SubjectID        string    `json:"subject_id"`
	LevelID          string    `json:"level_id"`
	TopicName        string    `json:"topic_name"`
	Score            int       `json:"score"`
	TotalQuestions   int       `json:"total_questions"`
	TimeTakenSeconds int       `json:"time_taken_seconds"`
	IsFirstAttempt   bool      `json:"is_first_attempt"`
	CompletedAt      time.Time `json:"completed_at"`
}
