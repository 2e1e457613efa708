package assessment

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/levelup/internal/apperr"
	"github.com/abhisek/levelup/internal/model"
	"github.com/abhisek/levelup/internal/store"
)

// Repo persists assessments. CompleteAssessment must apply at most once
// per assessment and report whether this call did.
type Repo interface {
	CreateAssessment(ctx context.Context, a *model.Assessment) error
	GetAssessment(ctx context.Context, id string) (*model.Assessment, error)
	ListAssessments(ctx context.Context, userID, subjectID string) ([]model.Assessment, error)
	CompleteAssessment(ctx context.Context, c store.Completion) (bool, error)
}

// Subjects resolves a subject with its levels. It returns an apperr
// not-found error for unknown ids.
type Subjects interface {
	GetSubject(ctx context.Context, id string) (*model.Subject, error)
}

// Recorder receives assessment lifecycle events.
type Recorder interface {
	AssessmentCreated(policy string)
	AssessmentCompleted()
}

type nopRecorder struct{}

func (nopRecorder) AssessmentCreated(string) {}
func (nopRecorder) AssessmentCompleted()     {}

// Service runs placement assessments.
type Service struct {
	repo      Repo
	subjects  Subjects
	composer  *Composer
	threshold int
	recorder  Recorder
	logger    *zap.Logger
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithPassThreshold overrides DefaultPassThreshold.
func WithPassThreshold(pct int) Option {
	return func(s *Service) { s.threshold = pct }
}

// WithRecorder sets the lifecycle event recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repo, subjects Subjects, composer *Composer, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		subjects:  subjects,
		composer:  composer,
		threshold: DefaultPassThreshold,
		recorder:  nopRecorder{},
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result is the outcome of a submission.
type Result struct {
	Assessment *model.Assessment
	Scores     []model.LevelScore
	Correct    int
	Total      int

	// Suggested is nil when the subject has no levels.
	Suggested *model.Level
}

// Start composes and stores a new assessment for userID.
func (s *Service) Start(ctx context.Context, userID, subjectID string) (*model.Assessment, error) {
	subject, err := s.subjects.GetSubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	qs, err := s.composer.Compose(ctx, *subject)
	if err != nil {
		return nil, err
	}

	a := &model.Assessment{
		UserID:    userID,
		SubjectID: subject.ID,
		Questions: qs,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.CreateAssessment(ctx, a); err != nil {
		return nil, fmt.Errorf("create assessment: %w", err)
	}

	s.recorder.AssessmentCreated(s.composer.Policy())
	s.logger.Info("assessment started",
		zap.String("assessment_id", a.ID),
		zap.String("user_id", userID),
		zap.String("subject_id", subject.ID),
		zap.Int("questions", len(qs)))
	return a, nil
}

// Get returns an assessment owned by userID.
func (s *Service) Get(ctx context.Context, userID, id string) (*model.Assessment, error) {
	a, err := s.repo.GetAssessment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get assessment %s: %w", id, err)
	}
	if a == nil {
		return nil, apperr.NotFound("assessment %q not found", id)
	}
	if a.UserID != userID {
		return nil, apperr.Unauthorized("assessment %q belongs to another user", id)
	}
	return a, nil
}

// List returns userID's assessments for a subject, newest first.
func (s *Service) List(ctx context.Context, userID, subjectID string) ([]model.Assessment, error) {
	if _, err := s.subjects.GetSubject(ctx, subjectID); err != nil {
		return nil, err
	}
	list, err := s.repo.ListAssessments(ctx, userID, subjectID)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	return list, nil
}

// Submit grades answers, records the result and the suggested level, and
// returns the scores. An assessment accepts exactly one submission; later
// or concurrent ones fail with an already-completed error.
func (s *Service) Submit(ctx context.Context, userID, id string, answers []model.Answer) (*Result, error) {
	a, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if a.Completed() {
		return nil, apperr.AlreadyCompleted("assessment %q was already submitted", id)
	}

	subject, err := s.subjects.GetSubject(ctx, a.SubjectID)
	if err != nil {
		return nil, err
	}

	graded := Grade(a.Questions, answers)
	scores := Score(a.Questions, graded, subject.Levels)
	suggested, ok := SuggestLevel(scores, subject.Levels, s.threshold)

	completedAt := s.now().UTC()
	c := store.Completion{
		AssessmentID: a.ID,
		UserID:       userID,
		SubjectID:    a.SubjectID,
		Answers:      graded,
		Scores:       scores,
		CompletedAt:  completedAt,
	}
	if ok {
		c.SuggestedLevelID = suggested.ID
	}

	applied, err := s.repo.CompleteAssessment(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("complete assessment %s: %w", id, err)
	}
	if !applied {
		return nil, apperr.AlreadyCompleted("assessment %q was already submitted", id)
	}

	a.Answers = graded
	a.Scores = scores
	a.SuggestedLevelID = c.SuggestedLevelID
	a.CompletedAt = &completedAt

	res := &Result{
		Assessment: a,
		Scores:     scores,
		Correct:    Correct(graded),
		Total:      len(graded),
	}
	if ok {
		res.Suggested = &suggested
	}

	s.recorder.AssessmentCompleted()
	s.logger.Info("assessment completed",
		zap.String("assessment_id", a.ID),
		zap.String("user_id", userID),
		zap.Int("correct", res.Correct),
		zap.Int("total", res.Total),
		zap.String("suggested_level_id", c.SuggestedLevelID))
	return res, nil
}
