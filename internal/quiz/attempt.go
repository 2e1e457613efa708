package quiz

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/levelup/internal/apperr"
	"github.com/abhisek/levelup/internal/model"
)

// SubmitRequest carries a learner's answers. Timezone is an IANA name used
// for the daily streak; empty means UTC.
type SubmitRequest struct {
	Answers          []model.Answer
	TimeTakenSeconds int
	Timezone         string
}

// Review is an attempt together with the quiz it was taken against.
type Review struct {
	Attempt *model.Attempt `json:"attempt"`
	Quiz    *model.Quiz    `json:"quiz"`
}

// Grade scores answers against the quiz by exact match. Every question
// gets one graded answer in quiz order; an unanswered question is
// incorrect. The first answer for a question id wins.
func Grade(qs []model.QuizQuestion, answers []model.Answer) ([]model.GradedAnswer, int) {
	selected := make(map[string]string, len(answers))
	for _, a := range answers {
		if _, ok := selected[a.QuestionID]; !ok {
			selected[a.QuestionID] = a.SelectedAnswer
		}
	}

	out := make([]model.GradedAnswer, len(qs))
	score := 0
	for i, q := range qs {
		sel := selected[q.ID]
		ok := sel != "" && model.Matches(q.CorrectAnswer, sel)
		if ok {
			score++
		}
		out[i] = model.GradedAnswer{QuestionID: q.ID, SelectedAnswer: sel, IsCorrect: ok}
	}
	return out, score
}

// Answered counts graded answers with a non-blank selection.
func Answered(graded []model.GradedAnswer) int {
	n := 0
	for _, g := range graded {
		if strings.TrimSpace(g.SelectedAnswer) != "" {
			n++
		}
	}
	return n
}

// Substantive reports whether at least half the questions were answered,
// the bar an attempt must clear to count as a first attempt.
func Substantive(answered, total int) bool {
	return answered*2 >= total
}

// SubmitAttempt grades and stores an attempt and extends userID's streak.
func (s *Service) SubmitAttempt(ctx context.Context, userID, quizID string, req SubmitRequest) (*Review, error) {
	if req.TimeTakenSeconds < 0 {
		return nil, apperr.InvalidInput("time taken must not be negative")
	}
	q, err := s.Get(ctx, quizID)
	if err != nil {
		return nil, err
	}

	graded, score := Grade(q.Questions, req.Answers)
	total := len(q.Questions)
	a := &model.Attempt{
		QuizID:           q.ID,
		UserID:           userID,
		Answers:          graded,
		Score:            score,
		TotalQuestions:   total,
		TimeTakenSeconds: req.TimeTakenSeconds,
		CompletedAt:      s.now().UTC(),
	}
	if err := s.attempts.CreateAttempt(ctx, a, Substantive(Answered(graded), total)); err != nil {
		return nil, fmt.Errorf("store attempt: %w", err)
	}
	s.recorder.AttemptSubmitted()

	if s.streaks != nil {
		if _, err := s.streaks.RecordCompletion(ctx, userID, a.CompletedAt, req.Timezone); err != nil {
			s.logger.Warn("failed to update streak",
				zap.String("user_id", userID),
				zap.String("attempt_id", a.ID),
				zap.Error(err))
		}
	}

	s.logger.Info("attempt submitted",
		zap.String("attempt_id", a.ID),
		zap.String("quiz_id", q.ID),
		zap.String("user_id", userID),
		zap.Int("score", score),
		zap.Int("total", total),
		zap.Bool("first_attempt", a.IsFirstAttempt))
	return &Review{Attempt: a, Quiz: q}, nil
}

// GetAttempt returns one of userID's attempts with its quiz.
func (s *Service) GetAttempt(ctx context.Context, userID, attemptID string) (*Review, error) {
	a, err := s.attempts.GetAttempt(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("get attempt: %w", err)
	}
	if a == nil {
		return nil, apperr.NotFound("attempt %s not found", attemptID)
	}
	if a.UserID != userID {
		return nil, apperr.Unauthorized("attempt %s belongs to another user", attemptID)
	}
	q, err := s.Get(ctx, a.QuizID)
	if err != nil {
		return nil, err
	}
	return &Review{Attempt: a, Quiz: q}, nil
}

// ListAttempts returns userID's attempts newest first, optionally for one
// quiz.
func (s *Service) ListAttempts(ctx context.Context, userID, quizID string) ([]model.Attempt, error) {
	out, err := s.attempts.ListAttempts(ctx, userID, quizID)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	if out == nil {
		out = []model.Attempt{}
	}
	return out, nil
}
