package assessment

import (
	"sort"

	"github.com/abhisek/levelup/internal/model"
)

// Grade annotates one answer per question, in question order. A question
// with no submitted answer is graded incorrect with an empty selection.
// When an id is answered more than once, the first answer counts.
func Grade(qs []model.AssessmentQuestion, answers []model.Answer) []model.GradedAnswer {
	selected := make(map[string]string, len(answers))
	for _, a := range answers {
		if _, dup := selected[a.QuestionID]; !dup {
			selected[a.QuestionID] = a.SelectedAnswer
		}
	}

	out := make([]model.GradedAnswer, len(qs))
	for i, q := range qs {
		sel, ok := selected[q.ID]
		out[i] = model.GradedAnswer{
			QuestionID:     q.ID,
			SelectedAnswer: sel,
			IsCorrect:      ok && model.Matches(q.CorrectAnswer, sel),
		}
	}
	return out
}

// Score tallies graded answers per level. Only levels with at least one
// question appear, ordered by ascending ordinal; levels not in the catalog
// sort last by id.
func Score(qs []model.AssessmentQuestion, graded []model.GradedAnswer, levels []model.Level) []model.LevelScore {
	correct := make(map[string]bool, len(graded))
	for _, g := range graded {
		if g.IsCorrect {
			correct[g.QuestionID] = true
		}
	}

	known := make(map[string]model.Level, len(levels))
	for _, l := range levels {
		known[l.ID] = l
	}

	byLevel := make(map[string]*model.LevelScore)
	for _, q := range qs {
		s, ok := byLevel[q.LevelID]
		if !ok {
			s = &model.LevelScore{LevelID: q.LevelID, LevelName: q.LevelName}
			if l, found := known[q.LevelID]; found {
				s.LevelName = l.Name
				s.Ordinal = l.Ordinal
			}
			byLevel[q.LevelID] = s
		}
		s.Total++
		if correct[q.ID] {
			s.Correct++
		}
	}

	out := make([]model.LevelScore, 0, len(byLevel))
	for _, s := range byLevel {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		_, ki := known[out[i].LevelID]
		_, kj := known[out[j].LevelID]
		if ki != kj {
			return ki
		}
		if out[i].Ordinal != out[j].Ordinal {
			return out[i].Ordinal < out[j].Ordinal
		}
		return out[i].LevelID < out[j].LevelID
	})
	return out
}

// Correct returns the number of correct graded answers.
func Correct(graded []model.GradedAnswer) int {
	n := 0
	for _, g := range graded {
		if g.IsCorrect {
			n++
		}
	}
	return n
}
