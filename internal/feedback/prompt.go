package feedback

import (
	"fmt"
	"strings"
)

const lessonSystemPrompt = `You are a patient, encouraging tutor. A student has just finished a quiz and needs short lessons on the questions they missed.`

func buildLessonUserMessage(in Input, missed []Missed) string {
	var b strings.Builder

	fmt.Fprintf(&b, "The student just completed a %s %s quiz on %q.\n", in.Level, in.Subject, in.Topic)
	b.WriteString("\nThey got these questions wrong:\n")
	for _, m := range missed {
		fmt.Fprintf(&b, "\nQuestion %s: %s\n", m.QuestionID, m.Prompt)
		answer := m.SelectedAnswer
		if answer == "" {
			answer = "(no answer)"
		}
		fmt.Fprintf(&b, "Their answer: %s\n", answer)
		fmt.Fprintf(&b, "Correct answer: %s\n", m.CorrectAnswer)
	}

	fmt.Fprintf(&b, `
Instructions:
For each of the %d missed questions, write a 2-4 sentence mini-lesson that:
1. Explains the underlying concept.
2. Clarifies why the correct answer is right.
3. Gives a tip for remembering it.
4. Is encouraging in tone.
Use the question ids shown above.`, len(missed))

	return b.String()
}

const suggestionSystemPrompt = `You recommend follow-up quiz topics that target the gaps a student showed on a quiz.`

func buildSuggestionUserMessage(in Input, missed []Missed) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Subject: %s\n", in.Subject)
	fmt.Fprintf(&b, "Level: %s\n", in.Level)
	fmt.Fprintf(&b, "Topic: %s\n", in.Topic)
	fmt.Fprintf(&b, "Score: %d/%d\n", in.Score, in.Total)

	concepts := make([]string, len(missed))
	for i, m := range missed {
		concepts[i] = m.Prompt
	}
	if len(concepts) == 0 {
		b.WriteString("Missed concepts: none\n")
	} else {
		fmt.Fprintf(&b, "Missed concepts: %s\n", strings.Join(concepts, "; "))
	}

	fmt.Fprintf(&b, `
Instructions:
Suggest 2-3 specific quiz topics at the %s level that would help this student improve. Focus on the areas where they struggled. Give one sentence per topic on why it helps.`, in.Level)

	return b.String()
}
