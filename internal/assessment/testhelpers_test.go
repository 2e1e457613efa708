package assessment

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/levelup/internal/llm"
	"github.com/abhisek/levelup/internal/model"
	"github.com/abhisek/levelup/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func threeLevelSubject() model.Subject {
	return model.Subject{
		ID:   "math",
		Name: "Math",
		Levels: []model.Level{
			{ID: "math-1", SubjectID: "math", Name: "1st Grade", Ordinal: 1},
			{ID: "math-2", SubjectID: "math", Name: "2nd Grade", Ordinal: 2},
			{ID: "math-3", SubjectID: "math", Name: "3rd Grade", Ordinal: 3},
		},
	}
}

func seedSubject(t *testing.T, s *store.Store, subject model.Subject) {
	t.Helper()
	require.NoError(t, s.Catalog().UpsertSubject(context.Background(), subject))
}

func seedPool(t *testing.T, s *store.Store, subjectID, levelID string, n int) {
	t.Helper()
	qs := make([]model.Question, n)
	for i := range qs {
		qs[i] = model.Question{
			SubjectID:     subjectID,
			LevelID:       levelID,
			Prompt:        fmt.Sprintf("%s pooled %d?", levelID, i),
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: "A",
			Explanation:   "A is right.",
		}
	}
	require.NoError(t, s.Questions().SaveQuestions(context.Background(), qs))
}

// questionSet renders an LLM response holding perLevel questions for each
// level id, correct answer "B".
func questionSet(t *testing.T, perLevel int, levelIDs ...string) llm.MockResponse {
	t.Helper()
	var qs []map[string]any
	for _, id := range levelIDs {
		for i := 0; i < perLevel; i++ {
			qs = append(qs, map[string]any{
				"question":       fmt.Sprintf("%s generated %d?", id, i),
				"options":        []string{"A", "B", "C", "D"},
				"correct_answer": "B",
				"explanation":    "B is right.",
				"level_id":       id,
			})
		}
	}
	data, err := json.Marshal(map[string]any{"questions": qs})
	require.NoError(t, err)
	return llm.MockResponse{Content: data}
}
