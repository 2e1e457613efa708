package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/levelup/internal/apperr"
	"github.com/abhisek/levelup/internal/catalog"
	"github.com/abhisek/levelup/internal/llm"
	"github.com/abhisek/levelup/internal/model"
	"github.com/abhisek/levelup/internal/progress"
	"github.com/abhisek/levelup/internal/questions"
	"github.com/abhisek/levelup/internal/store"
	"github.com/abhisek/levelup/internal/topicgate"
)

type eventCounter struct {
	verdicts, created, submitted int
}

func (c *eventCounter) TopicVerdict(bool) { c.verdicts++ }
func (c *eventCounter) QuizCreated()      { c.created++ }
func (c *eventCounter) AttemptSubmitted() { c.submitted++ }

type fixture struct {
	store  *store.Store
	mock   *llm.MockProvider
	events *eventCounter
	svc    *Service
}

func newFixture(t *testing.T, gate topicgate.Gate) *fixture {
	t.Helper()
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()
	cat := catalog.NewService(s.Catalog(), nil)
	require.NoError(t, cat.Seed(ctx, []model.Subject{{
		ID: "math", Name: "Math",
		Levels: []model.Level{
			{ID: "math-3", SubjectID: "math", Name: "3rd Grade", Ordinal: 1},
			{ID: "math-4", SubjectID: "math", Name: "4th Grade", Ordinal: 2},
		},
	}}))

	mock := llm.NewMockProvider()
	events := &eventCounter{}
	svc := NewService(Deps{
		Quizzes:   s.Quizzes(),
		Attempts:  s.Attempts(),
		Levels:    cat,
		Gate:      gate,
		Generator: questions.New(mock, questions.DefaultConfig()),
		Streaks:   progress.NewService(s.Users(), s.Attempts(), s.Placements(), cat, nil),
		Recorder:  events,
	}, DefaultConfig())
	return &fixture{store: s, mock: mock, events: events, svc: svc}
}

func accept() topicgate.Gate {
	return topicgate.Static{Appropriate: true, Reason: "fits"}
}

// questionSet renders n questions at levelID whose correct answer is "B".
func questionSet(t *testing.T, levelID string, n int) llm.MockResponse {
	t.Helper()
	qs := make([]map[string]any, n)
	for i := range qs {
		qs[i] = map[string]any{
			"question":       fmt.Sprintf("Fractions question %d?", i),
			"options":        []string{"A", "B", "C", "D"},
			"correct_answer": "B",
			"explanation":    "B is right.",
			"level_id":       levelID,
		}
	}
	data, err := json.Marshal(map[string]any{"questions": qs})
	require.NoError(t, err)
	return llm.MockResponse{Content: data}
}

func (f *fixture) createQuiz(t *testing.T, n int) *model.Quiz {
	t.Helper()
	f.mock.AddResponse(questionSet(t, "math-3", n))
	q, err := f.svc.Create(context.Background(), "u1", CreateRequest{
		SubjectID: "math", LevelID: "math-3", Topic: "fractions", Count: n,
	})
	require.NoError(t, err)
	return q
}

func TestCreate(t *testing.T) {
	f := newFixture(t, accept())
	q := f.createQuiz(t, 10)

	assert.Equal(t, 10, q.QuestionCount)
	assert.Equal(t, "q1", q.Questions[0].ID)
	assert.Equal(t, "q10", q.Questions[9].ID)
	assert.Equal(t, "fractions", q.Category.TopicName)
	assert.Equal(t, 1, f.events.verdicts)
	assert.Equal(t, 1, f.events.created)

	stored, err := f.svc.Get(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Questions, 10)
	assert.Equal(t, "math-3", stored.Category.LevelID)

	require.Len(t, f.mock.Calls, 1)
	assert.Contains(t, f.mock.Calls[0].Messages[0].Content, "fractions")
}

func TestCreateDefaultsCount(t *testing.T) {
	f := newFixture(t, accept())
	f.mock.AddResponse(questionSet(t, "math-3", 10))

	q, err := f.svc.Create(context.Background(), "u1", CreateRequest{SubjectID: "math", LevelID: "math-3", Topic: "fractions"})
	require.NoError(t, err)
	assert.Equal(t, 10, q.QuestionCount)
}

func TestCreateRejectsCountOutOfRange(t *testing.T) {
	f := newFixture(t, accept())
	for _, n := range []int{5, 9, 21} {
		_, err := f.svc.Create(context.Background(), "u1", CreateRequest{
			SubjectID: "math", LevelID: "math-3", Topic: "fractions", Count: n,
		})
		assert.ErrorIs(t, err, apperr.ErrInvalidInput, "count %d", n)
	}
	assert.Zero(t, f.mock.CallCount())
}

func TestCreateRejectedTopicGeneratesNothing(t *testing.T) {
	f := newFixture(t, topicgate.Static{
		Appropriate:    false,
		Reason:         "Quadratics need algebra first.",
		SuggestedTopic: "Number patterns",
	})

	_, err := f.svc.Create(context.Background(), "u1", CreateRequest{
		SubjectID: "math", LevelID: "math-3", Topic: "8th grade quadratics",
	})
	require.ErrorIs(t, err, apperr.ErrTopicRejected)
	rej, ok := apperr.RejectionOf(err)
	require.True(t, ok)
	assert.Equal(t, "Number patterns", rej.SuggestedTopic)

	assert.Zero(t, f.mock.CallCount())
	page, err := f.svc.List(context.Background(), ListRequest{})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.Zero(t, f.events.created)
}

func TestCreateRequiresTopic(t *testing.T) {
	f := newFixture(t, accept())
	_, err := f.svc.Create(context.Background(), "u1", CreateRequest{SubjectID: "math", LevelID: "math-3", Topic: "  "})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestCreateLevelOutsideSubject(t *testing.T) {
	f := newFixture(t, accept())
	_, err := f.svc.Create(context.Background(), "u1", CreateRequest{SubjectID: "math", LevelID: "sci-1", Topic: "cells"})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = f.svc.Create(context.Background(), "u1", CreateRequest{SubjectID: "art", LevelID: "art-1", Topic: "color"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateGenerationFailure(t *testing.T) {
	f := newFixture(t, accept())
	f.mock.AddResponse(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})

	_, err := f.svc.Create(context.Background(), "u1", CreateRequest{SubjectID: "math", LevelID: "math-3", Topic: "fractions"})
	assert.ErrorIs(t, err, apperr.ErrGenerationFailure)
}

func TestGetUnknownQuiz(t *testing.T) {
	f := newFixture(t, accept())
	_, err := f.svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListPaginates(t *testing.T) {
	f := newFixture(t, accept())
	for i := 0; i < 3; i++ {
		f.createQuiz(t, 10)
	}

	page, err := f.svc.List(context.Background(), ListRequest{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Quizzes, 1)

	page, err = f.svc.List(context.Background(), ListRequest{Search: "FRACT", LevelID: "math-3"})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, DefaultPageSize, page.Limit)

	page, err = f.svc.List(context.Background(), ListRequest{LevelID: "math-4"})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.NotNil(t, page.Quizzes)
}

func answers(q *model.Quiz, n int, choice string) []model.Answer {
	out := make([]model.Answer, 0, n)
	for i := 0; i < n && i < len(q.Questions); i++ {
		out = append(out, model.Answer{QuestionID: q.Questions[i].ID, SelectedAnswer: choice})
	}
	return out
}

func TestSubmitAttempt(t *testing.T) {
	f := newFixture(t, accept())
	ctx := context.Background()
	q := f.createQuiz(t, 10)

	ans := answers(q, 10, "B")
	ans[0].SelectedAnswer = "b" // case-sensitive
	r, err := f.svc.SubmitAttempt(ctx, "u2", q.ID, SubmitRequest{Answers: ans, TimeTakenSeconds: 90})
	require.NoError(t, err)

	assert.Equal(t, 9, r.Attempt.Score)
	assert.Equal(t, 10, r.Attempt.TotalQuestions)
	assert.True(t, r.Attempt.IsFirstAttempt)
	assert.False(t, r.Attempt.Answers[0].IsCorrect)
	assert.Equal(t, 1, f.events.submitted)

	u, err := f.store.Users().GetUser(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, u.CurrentStreak)

	again, err := f.svc.SubmitAttempt(ctx, "u2", q.ID, SubmitRequest{Answers: answers(q, 10, "B")})
	require.NoError(t, err)
	assert.False(t, again.Attempt.IsFirstAttempt)
	assert.Equal(t, 10, again.Attempt.Score)
}

func TestSubmitIncompleteIsNotFirstAttempt(t *testing.T) {
	f := newFixture(t, accept())
	ctx := context.Background()
	q := f.createQuiz(t, 10)

	r, err := f.svc.SubmitAttempt(ctx, "u1", q.ID, SubmitRequest{Answers: answers(q, 4, "B")})
	require.NoError(t, err)
	assert.False(t, r.Attempt.IsFirstAttempt)
	assert.Len(t, r.Attempt.Answers, 10)

	r, err = f.svc.SubmitAttempt(ctx, "u1", q.ID, SubmitRequest{Answers: answers(q, 5, "B")})
	require.NoError(t, err)
	assert.True(t, r.Attempt.IsFirstAttempt)
}

func TestSubmitUnknownQuiz(t *testing.T) {
	f := newFixture(t, accept())
	_, err := f.svc.SubmitAttempt(context.Background(), "u1", "missing", SubmitRequest{})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGetAttemptOwnership(t *testing.T) {
	f := newFixture(t, accept())
	ctx := context.Background()
	q := f.createQuiz(t, 10)
	r, err := f.svc.SubmitAttempt(ctx, "u1", q.ID, SubmitRequest{Answers: answers(q, 10, "B")})
	require.NoError(t, err)

	got, err := f.svc.GetAttempt(ctx, "u1", r.Attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, q.ID, got.Quiz.ID)

	_, err = f.svc.GetAttempt(ctx, "u2", r.Attempt.ID)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = f.svc.GetAttempt(ctx, "u1", "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	list, err := f.svc.ListAttempts(ctx, "u1", q.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestStreakUsesTimezone(t *testing.T) {
	f := newFixture(t, accept())
	ctx := context.Background()
	q := f.createQuiz(t, 10)

	day := time.Date(2024, 3, 9, 20, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return day }
	_, err := f.svc.SubmitAttempt(ctx, "u1", q.ID, SubmitRequest{Answers: answers(q, 10, "B"), Timezone: "Asia/Tokyo"})
	require.NoError(t, err)

	u, err := f.store.Users().GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", u.LastQuizDate)
}
