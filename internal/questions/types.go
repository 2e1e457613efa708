package questions

import (
	"fmt"

	"github.com/abhisek/levelup/internal/model"
)

// OptionCount is the number of options every question carries.
const OptionCount = 4

// Item is a generated question before it is stored or placed in an
// assessment or quiz.
type Item struct {
	// Prompt is the question text shown to the learner.
	Prompt string

	// Options holds exactly four distinct choices in display order.
	Options []string

	// CorrectAnswer is the text of the correct option.
	CorrectAnswer string

	// Explanation is shown after grading.
	Explanation string

	LevelID   string
	LevelName string
}

// LevelRequest asks for questions at one level.
type LevelRequest struct {
	SubjectName string
	Level       model.Level

	// Topic narrows generation to a learner-chosen topic. Empty means the
	// level's own subtopics.
	Topic string

	Count int

	// Prior lists prompts already in use, so the model avoids repeating
	// them.
	Prior []string
}

// AssessmentRequest asks for a placement set spanning every level.
type AssessmentRequest struct {
	SubjectName string
	Levels      []model.Level
	PerLevel    int
}

// Question converts the item into a pool question for subjectID.
func (it Item) Question(subjectID string) model.Question {
	return model.Question{
		SubjectID:     subjectID,
		LevelID:       it.LevelID,
		Prompt:        it.Prompt,
		Options:       append([]string(nil), it.Options...),
		CorrectAnswer: it.CorrectAnswer,
		Explanation:   it.Explanation,
	}
}

// QuizQuestion converts the item into the i-th (1-based) quiz question.
func (it Item) QuizQuestion(i int) model.QuizQuestion {
	return model.QuizQuestion{
		ID:            SequentialID(i),
		Prompt:        it.Prompt,
		Options:       append([]string(nil), it.Options...),
		CorrectAnswer: it.CorrectAnswer,
		Explanation:   it.Explanation,
	}
}

// FromQuestion turns a stored pool question back into an item.
func FromQuestion(q model.Question, levelName string) Item {
	return Item{
		Prompt:        q.Prompt,
		Options:       append([]string(nil), q.Options...),
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		LevelID:       q.LevelID,
		LevelName:     levelName,
	}
}

// SequentialID returns "q1", "q2", ... for i = 1, 2, ...
func SequentialID(i int) string {
	return fmt.Sprintf("q%d", i)
}
