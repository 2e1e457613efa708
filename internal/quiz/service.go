// Package quiz creates topic quizzes at a chosen level and records attempts
// against them.
package quiz

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/levelup/internal/apperr"
	"github.com/abhisek/levelup/internal/model"
	"github.com/abhisek/levelup/internal/questions"
	"github.com/abhisek/levelup/internal/store"
	"github.com/abhisek/levelup/internal/topicgate"
)

// Config bounds the number of questions in a quiz.
type Config struct {
	MinQuestions     int
	MaxQuestions     int
	DefaultQuestions int
}

func DefaultConfig() Config {
	return Config{MinQuestions: 10, MaxQuestions: 20, DefaultQuestions: 10}
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// Repo persists quizzes.
type Repo interface {
	CreateQuiz(ctx context.Context, q *model.Quiz) error
	GetQuiz(ctx context.Context, id string) (*model.Quiz, error)
	ListQuizzes(ctx context.Context, f store.QuizFilter) ([]model.Quiz, int, error)
}

// AttemptRepo persists attempts and their first-attempt flags.
type AttemptRepo interface {
	CreateAttempt(ctx context.Context, a *model.Attempt, substantive bool) error
	GetAttempt(ctx context.Context, id string) (*model.Attempt, error)
	ListAttempts(ctx context.Context, userID, quizID string) ([]model.Attempt, error)
	ListAllAttempts(ctx context.Context) ([]model.Attempt, error)
	SetFirstAttemptFlags(ctx context.Context, flags map[string]bool) error
}

// Levels resolves a level within a subject.
type Levels interface {
	ResolveLevel(ctx context.Context, subjectID, levelID string) (*model.Subject, model.Level, error)
}

// Streaks records a completed quiz against a learner's daily streak.
type Streaks interface {
	RecordCompletion(ctx context.Context, userID string, at time.Time, tz string) (*model.User, error)
}

// Recorder receives quiz events.
type Recorder interface {
	topicgate.Recorder
	QuizCreated()
	AttemptSubmitted()
}

type nopRecorder struct{}

func (nopRecorder) TopicVerdict(bool) {}
func (nopRecorder) QuizCreated()      {}
func (nopRecorder) AttemptSubmitted() {}

// Service is the quiz use-case layer.
type Service struct {
	quizzes  Repo
	attempts AttemptRepo
	levels   Levels
	gate     topicgate.Gate
	gen      questions.Generator
	streaks  Streaks
	cfg      Config
	recorder Recorder
	logger   *zap.Logger
	now      func() time.Time
}

// Deps groups the collaborators of a Service.
type Deps struct {
	Quizzes   Repo
	Attempts  AttemptRepo
	Levels    Levels
	Gate      topicgate.Gate
	Generator questions.Generator
	Streaks   Streaks
	Recorder  Recorder
	Logger    *zap.Logger
}

func NewService(deps Deps, cfg Config) *Service {
	s := &Service{
		quizzes:  deps.Quizzes,
		attempts: deps.Attempts,
		levels:   deps.Levels,
		gate:     deps.Gate,
		gen:      deps.Generator,
		streaks:  deps.Streaks,
		cfg:      cfg,
		recorder: deps.Recorder,
		logger:   deps.Logger,
		now:      time.Now,
	}
	if s.recorder == nil {
		s.recorder = nopRecorder{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// CreateRequest describes a quiz to generate. A zero Count means the
// configured default.
type CreateRequest struct {
	SubjectID        string
	LevelID          string
	Topic            string
	Count            int
	TimeLimitMinutes int
}

// Create checks the topic against the level, generates the questions and
// stores the quiz. A rejected topic generates nothing.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (*model.Quiz, error) {
	count := req.Count
	if count == 0 {
		count = s.cfg.DefaultQuestions
	}
	if count < s.cfg.MinQuestions || count > s.cfg.MaxQuestions {
		return nil, apperr.InvalidInput("question count must be between %d and %d", s.cfg.MinQuestions, s.cfg.MaxQuestions)
	}
	if req.TimeLimitMinutes < 0 {
		return nil, apperr.InvalidInput("time limit must not be negative")
	}
	topic := strings.TrimSpace(req.Topic)

	subject, level, err := s.levels.ResolveLevel(ctx, req.SubjectID, req.LevelID)
	if err != nil {
		return nil, err
	}

	err = topicgate.Enforce(ctx, s.gate, s.recorder, topicgate.Input{
		Subject: subject.Name,
		Level:   level.Name,
		Topic:   topic,
	})
	if err != nil {
		if rej, ok := apperr.RejectionOf(err); ok {
			s.logger.Info("topic rejected",
				zap.String("user_id", userID),
				zap.String("level_id", level.ID),
				zap.String("topic", topic),
				zap.String("reason", rej.Reason))
		}
		return nil, err
	}

	items, err := s.gen.GenerateForLevel(ctx, questions.LevelRequest{
		SubjectName: subject.Name,
		Level:       level,
		Topic:       topic,
		Count:       count,
	})
	if err != nil {
		return nil, apperr.Generation("generate quiz questions", err)
	}

	q := &model.Quiz{
		Category: model.QuizCategory{
			SubjectID: subject.ID,
			LevelID:   level.ID,
			TopicName: topic,
			CreatedBy: userID,
		},
		Questions:        make([]model.QuizQuestion, len(items)),
		QuestionCount:    len(items),
		TimeLimitMinutes: req.TimeLimitMinutes,
		CreatedBy:        userID,
		CreatedAt:        s.now().UTC(),
	}
	for i, it := range items {
		q.Questions[i] = it.QuizQuestion(i + 1)
	}
	if err := s.quizzes.CreateQuiz(ctx, q); err != nil {
		return nil, fmt.Errorf("store quiz: %w", err)
	}

	s.recorder.QuizCreated()
	s.logger.Info("quiz created",
		zap.String("quiz_id", q.ID),
		zap.String("user_id", userID),
		zap.String("level_id", level.ID),
		zap.Int("questions", q.QuestionCount))
	return q, nil
}

// Get returns a quiz with its questions.
func (s *Service) Get(ctx context.Context, id string) (*model.Quiz, error) {
	q, err := s.quizzes.GetQuiz(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quiz: %w", err)
	}
	if q == nil {
		return nil, apperr.NotFound("quiz %s not found", id)
	}
	return q, nil
}

// ListRequest filters and pages quizzes. Page is 1-based.
type ListRequest struct {
	SubjectID string
	LevelID   string
	CreatedBy string
	Search    string
	Page      int
	Limit     int
}

// Page is one page of quizzes, without their questions.
type Page struct {
	Quizzes    []model.Quiz `json:"quizzes"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	Total      int          `json:"total"`
	TotalPages int          `json:"total_pages"`
}

func (s *Service) List(ctx context.Context, req ListRequest) (*Page, error) {
	page, limit := req.Page, req.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	quizzes, total, err := s.quizzes.ListQuizzes(ctx, store.QuizFilter{
		SubjectID: req.SubjectID,
		LevelID:   req.LevelID,
		CreatedBy: req.CreatedBy,
		Search:    strings.TrimSpace(req.Search),
		Limit:     limit,
		Offset:    (page - 1) * limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	if quizzes == nil {
		quizzes = []model.Quiz{}
	}
	return &Page{
		Quizzes:    quizzes,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}
