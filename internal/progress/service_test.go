package progress

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/levelup/internal/apperr"
	"github.com/abhisek/levelup/internal/catalog"
	"github.com/abhisek/levelup/internal/model"
	"github.com/abhisek/levelup/internal/store"
)

func newService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	cat := catalog.NewService(s.Catalog(), nil)
	require.NoError(t, cat.Seed(context.Background(), []model.Subject{
		{
			ID: "math", Name: "Math", SortOrder: 1,
			Levels: []model.Level{
				{ID: "math-1", SubjectID: "math", Name: "1st Grade", Ordinal: 1},
				{ID: "math-2", SubjectID: "math", Name: "2nd Grade", Ordinal: 2},
			},
		},
		{
			ID: "history", Name: "History", SortOrder: 2,
			Levels: []model.Level{
				{ID: "history-1", SubjectID: "history", Name: "Ancient", Ordinal: 1},
			},
		},
	}))
	svc := NewService(s.Users(), s.Attempts(), s.Placements(), cat, nil)
	return svc, s
}

func addQuiz(t *testing.T, s *store.Store, subjectID, levelID string) string {
	t.Helper()
	q := &model.Quiz{
		Category:      model.QuizCategory{SubjectID: subjectID, LevelID: levelID, TopicName: "Fractions"},
		Questions:     []model.QuizQuestion{{ID: "q1", Prompt: "1/2?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a", Explanation: "x"}},
		QuestionCount: 1,
		CreatedBy:     "u1",
	}
	require.NoError(t, s.Quizzes().CreateQuiz(context.Background(), q))
	return q.ID
}

func addAttempt(t *testing.T, s *store.Store, quizID string, score, total int, at time.Time) {
	t.Helper()
	a := &model.Attempt{QuizID: quizID, UserID: "u1", Score: score, TotalQuestions: total, CompletedAt: at}
	require.NoError(t, s.Attempts().CreateAttempt(context.Background(), a, true))
}

func TestRecordCompletionPersists(t *testing.T) {
	svc, s := newService(t)
	ctx := context.Background()
	day := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	_, err := svc.RecordCompletion(ctx, "u1", day, "UTC")
	require.NoError(t, err)
	_, err = svc.RecordCompletion(ctx, "u1", day.Add(time.Hour), "UTC")
	require.NoError(t, err)
	u, err := svc.RecordCompletion(ctx, "u1", day.AddDate(0, 0, 1), "UTC")
	require.NoError(t, err)
	assert.Equal(t, 2, u.CurrentStreak)

	stored, err := s.Users().GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, stored.CurrentStreak)
	assert.Equal(t, 2, stored.LongestStreak)
	assert.Equal(t, "2024-05-02", stored.LastQuizDate)
}

func TestSetCurrentLevel(t *testing.T) {
	svc, s := newService(t)
	ctx := context.Background()

	level, err := svc.SetCurrentLevel(ctx, "u1", "math", "math-2")
	require.NoError(t, err)
	assert.Equal(t, "2nd Grade", level.Name)

	p, err := s.Placements().GetPlacement(ctx, "u1", "math")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "math-2", p.CurrentLevelID)

	_, err = svc.SetCurrentLevel(ctx, "u1", "math", "history-1")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = svc.SetCurrentLevel(ctx, "u1", "art", "art-1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestStats(t *testing.T) {
	svc, s := newService(t)
	ctx := context.Background()
	now := time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	mathQuiz := addQuiz(t, s, "math", "math-1")
	historyQuiz := addQuiz(t, s, "history", "history-1")

	addAttempt(t, s, mathQuiz, 7, 10, now.AddDate(0, 0, -10))
	// Retake is not a first attempt and stays out of the totals.
	addAttempt(t, s, mathQuiz, 10, 10, now.AddDate(0, 0, -2))
	addAttempt(t, s, historyQuiz, 2, 3, now.AddDate(0, 0, -1))

	_, err := svc.SetCurrentLevel(ctx, "u1", "math", "math-1")
	require.NoError(t, err)
	require.NoError(t, s.Placements().RecordSuggestion(ctx, "u1", "math", "math-2", now))
	_, err = svc.RecordCompletion(ctx, "u1", now, "UTC")
	require.NoError(t, err)

	st, err := svc.Stats(ctx, "u1")
	require.NoError(t, err)

	assert.Equal(t, 1, st.Streak.Current)
	assert.Equal(t, "2024-06-20", st.Streak.LastQuizDate)

	assert.Equal(t, 2, st.Overall.TotalQuizzes)
	assert.Equal(t, 13, st.Overall.TotalQuestions)
	assert.Equal(t, 69, st.Overall.AccuracyPct) // 9/13
	assert.Equal(t, 1, st.Overall.QuizzesThisWeek)

	require.Len(t, st.Recent, 3)
	assert.Equal(t, historyQuiz, st.Recent[0].QuizID)

	require.Len(t, st.Subjects, 2)
	m := st.Subjects[0]
	assert.Equal(t, "math", m.SubjectID)
	require.NotNil(t, m.CurrentLevel)
	assert.Equal(t, "math-1", m.CurrentLevel.ID)
	require.NotNil(t, m.SuggestedLevel)
	assert.Equal(t, "math-2", m.SuggestedLevel.ID)
	assert.Equal(t, 1, m.QuizzesCompleted)
	assert.Equal(t, 70, m.AccuracyPct)

	h := st.Subjects[1]
	assert.Nil(t, h.CurrentLevel)
	assert.Equal(t, 67, h.AccuracyPct)
}

func TestStatsForNewUser(t *testing.T) {
	svc, _ := newService(t)

	st, err := svc.Stats(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Zero(t, st.Overall.TotalQuizzes)
	assert.Zero(t, st.Overall.AccuracyPct)
	assert.Empty(t, st.Recent)
	assert.Len(t, st.Subjects, 2)
}

func TestRecentActivityIsCapped(t *testing.T) {
	svc, s := newService(t)
	quiz := addQuiz(t, s, "math", "math-1")
	base := time.Now().Add(-time.Hour)
	for i := 0; i < RecentLimit+2; i++ {
		addAttempt(t, s, quiz, 1, 1, base.Add(time.Duration(i)*time.Minute))
	}

	st, err := svc.Stats(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, st.Recent, RecentLimit)
	assert.Equal(t, 1, st.Overall.TotalQuizzes)
}
