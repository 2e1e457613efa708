package questions

import (
	"fmt"
	"strings"

	"github.com/abhisek/levelup/internal/model"
)

const systemPrompt = `You are an experienced teacher writing multiple-choice questions for learners.

Rules:
- Every question has exactly 4 answer options with exactly one correct answer.
- The four options must be distinct. correct_answer must repeat the correct option's text exactly.
- Distractors should reflect common misconceptions, not random values.
- Questions must be self-contained and appropriate for the stated level.
- Explanations are one or two sentences on why the correct answer is right.
- Tag every question with the level_id it targets, using only the IDs given.
- Do not repeat any question from the "already used" list.`

func levelMessage(req LevelRequest, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Subject: %s\n", req.SubjectName)
	fmt.Fprintf(&b, "Level: %s (ID: %s)\n", req.Level.Name, req.Level.ID)
	if req.Topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	} else if len(req.Level.Topics) > 0 {
		fmt.Fprintf(&b, "Cover these subtopics: %s\n", strings.Join(req.Level.Topics, ", "))
	}
	fmt.Fprintf(&b, "Number of questions: %d\n", req.Count)

	b.WriteString("\nAlready used:\n")
	b.WriteString(formatPrior(req.Prior, cfg.MaxPriorQuestions))

	return b.String()
}

func assessmentMessage(req AssessmentRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write a placement assessment for %s with %d questions.\n\n",
		req.SubjectName, req.PerLevel*len(req.Levels))
	b.WriteString("The levels, from beginner to advanced, are:\n")
	for _, l := range model.SortedLevels(req.Levels) {
		fmt.Fprintf(&b, "- %s (ID: %s)\n", l.Name, l.ID)
	}
	fmt.Fprintf(&b, "\nInclude exactly %d questions for each level. ", req.PerLevel)
	b.WriteString("Make each question genuinely diagnostic of that level's skills, ")
	b.WriteString("and order them from the lowest level to the highest.\n")
	b.WriteString("\nAlready used:\nNone")

	return b.String()
}
