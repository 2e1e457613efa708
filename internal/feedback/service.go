// Package feedback turns a graded quiz attempt into short lessons on the
// missed questions and follow-up topic suggestions.
package feedback

import (
	"context"
	"fmt"

	"github.com/abhisek/levelup/internal/apperr"
	"github.com/abhisek/levelup/internal/model"
)

// Attempts reads attempts.
type Attempts interface {
	GetAttempt(ctx context.Context, id string) (*model.Attempt, error)
}

// Quizzes reads quizzes.
type Quizzes interface {
	GetQuiz(ctx context.Context, id string) (*model.Quiz, error)
}

// Levels resolves a quiz category's subject and level names.
type Levels interface {
	ResolveLevel(ctx context.Context, subjectID, levelID string) (*model.Subject, model.Level, error)
}

// Service generates feedback for stored attempts.
type Service struct {
	attempts Attempts
	quizzes  Quizzes
	levels   Levels
	gen      *Generator
}

func NewService(attempts Attempts, quizzes Quizzes, levels Levels, gen *Generator) *Service {
	return &Service{attempts: attempts, quizzes: quizzes, levels: levels, gen: gen}
}

// ForAttempt generates feedback on one of userID's attempts.
func (s *Service) ForAttempt(ctx context.Context, userID, attemptID string) (*Feedback, error) {
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

	q, err := s.quizzes.GetQuiz(ctx, a.QuizID)
	if err != nil {
		return nil, fmt.Errorf("get quiz: %w", err)
	}
	if q == nil {
		return nil, apperr.NotFound("quiz %s not found", a.QuizID)
	}
	subject, level, err := s.levels.ResolveLevel(ctx, q.Category.SubjectID, q.Category.LevelID)
	if err != nil {
		return nil, err
	}

	fb, err := s.gen.Generate(ctx, Input{
		Subject: subject.Name,
		Level:   level.Name,
		Topic:   q.Category.TopicName,
		Score:   a.Score,
		Total:   a.TotalQuestions,
		Missed:  MissedQuestions(q.Questions, a.Answers),
	})
	if err != nil {
		return nil, apperr.Generation("generate feedback", err)
	}
	return fb, nil
}

// MissedQuestions lists the incorrect graded answers in quiz order.
func MissedQuestions(qs []model.QuizQuestion, graded []model.GradedAnswer) []Missed {
	byID := make(map[string]model.QuizQuestion, len(qs))
	for _, q := range qs {
		byID[q.ID] = q
	}
	var out []Missed
	for _, g := range graded {
		if g.IsCorrect {
			continue
		}
		q, ok := byID[g.QuestionID]
		if !ok {
			continue
		}
		out = append(out, Missed{
			QuestionID:     q.ID,
			Prompt:         q.Prompt,
			SelectedAnswer: g.SelectedAnswer,
			CorrectAnswer:  q.CorrectAnswer,
		})
	}
	return out
}
