package progress

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/levelup/internal/model"
)

// RecentLimit is the number of attempts listed under recent activity.
const RecentLimit = 5

// Users reads and writes streak counters.
type Users interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	SaveUser(ctx context.Context, u *model.User) error
}

// Attempts reads a user's attempts joined with their quiz category.
type Attempts interface {
	AttemptSummaries(ctx context.Context, userID string) ([]model.AttemptSummary, error)
}

// Placements reads and sets a user's per-subject levels.
type Placements interface {
	ListPlacements(ctx context.Context, userID string) ([]model.UserSubjectLevel, error)
	SetCurrentLevel(ctx context.Context, userID, subjectID, levelID string) error
}

// Catalog lists subjects and resolves levels within them.
type Catalog interface {
	ListSubjects(ctx context.Context) ([]model.Subject, error)
	ResolveLevel(ctx context.Context, subjectID, levelID string) (*model.Subject, model.Level, error)
}

// Streak is the streak section of Stats.
type Streak struct {
	Current      int    `json:"current"`
	Longest      int    `json:"longest"`
	LastQuizDate string `json:"last_quiz_date,omitempty"`
}

// Overall totals count first attempts only.
type Overall struct {
	TotalQuizzes    int `json:"total_quizzes"`
	TotalQuestions  int `json:"total_questions"`
	AccuracyPct     int `json:"overall_accuracy"`
	QuizzesThisWeek int `json:"quizzes_this_week"`
}

// SubjectStats summarises one subject.
type SubjectStats struct {
	SubjectID        string       `json:"subject_id"`
	SubjectName      string       `json:"subject_name"`
	Icon             string       `json:"icon,omitempty"`
	CurrentLevel     *model.Level `json:"current_level"`
	SuggestedLevel   *model.Level `json:"suggested_level"`
	QuizzesCompleted int          `json:"quizzes_completed"`
	AccuracyPct      int          `json:"accuracy"`
}

// Stats is a learner's progress overview.
type Stats struct {
	Streak   Streak                 `json:"streak"`
	Overall  Overall                `json:"overall"`
	Recent   []model.AttemptSummary `json:"recent_activity"`
	Subjects []SubjectStats         `json:"subject_stats"`
}

// Service tracks streaks and levels and computes Stats.
type Service struct {
	users      Users
	attempts   Attempts
	placements Placements
	catalog    Catalog
	logger     *zap.Logger
	now        func() time.Time
}

func NewService(users Users, attempts Attempts, placements Placements, catalog Catalog, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		users:      users,
		attempts:   attempts,
		placements: placements,
		catalog:    catalog,
		logger:     logger,
		now:        time.Now,
	}
}

// RecordCompletion applies a quiz completed at t to userID's streak in the
// named timezone.
func (s *Service) RecordCompletion(ctx context.Context, userID string, t time.Time, tz string) (*model.User, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !RecordActivity(user, t, LoadLocation(tz)) {
		return user, nil
	}
	if err := s.users.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	s.logger.Debug("streak updated",
		zap.String("user_id", userID),
		zap.Int("current", user.CurrentStreak),
		zap.Int("longest", user.LongestStreak))
	return user, nil
}

// SetCurrentLevel records the level userID chose to study in subjectID.
// The level must belong to the subject.
func (s *Service) SetCurrentLevel(ctx context.Context, userID, subjectID, levelID string) (model.Level, error) {
	_, level, err := s.catalog.ResolveLevel(ctx, subjectID, levelID)
	if err != nil {
		return model.Level{}, err
	}
	if err := s.placements.SetCurrentLevel(ctx, userID, subjectID, level.ID); err != nil {
		return model.Level{}, fmt.Errorf("set current level: %w", err)
	}
	return level, nil
}

// Stats returns userID's streak, first-attempt totals, recent activity and
// per-subject levels and accuracy.
func (s *Service) Stats(ctx context.Context, userID string) (*Stats, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	summaries, err := s.attempts.AttemptSummaries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("attempt summaries: %w", err)
	}
	placements, err := s.placements.ListPlacements(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list placements: %w", err)
	}
	subjects, err := s.catalog.ListSubjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}

	out := &Stats{
		Streak: Streak{
			Current:      user.CurrentStreak,
			Longest:      user.LongestStreak,
			LastQuizDate: user.LastQuizDate,
		},
		Recent: []model.AttemptSummary{},
	}

	weekAgo := s.now().AddDate(0, 0, -7)
	type tally struct{ quizzes, correct, total int }
	bySubject := map[string]*tally{}
	var correct int

	// Summaries arrive newest first.
	for _, a := range summaries {
		if len(out.Recent) < RecentLimit {
			out.Recent = append(out.Recent, a)
		}
		if !a.IsFirstAttempt {
			continue
		}
		out.Overall.TotalQuizzes++
		out.Overall.TotalQuestions += a.TotalQuestions
		correct += a.Score
		if !a.CompletedAt.Before(weekAgo) {
			out.Overall.QuizzesThisWeek++
		}

		t := bySubject[a.SubjectID]
		if t == nil {
			t = &tally{}
			bySubject[a.SubjectID] = t
		}
		t.quizzes++
		t.correct += a.Score
		t.total += a.TotalQuestions
	}
	out.Overall.AccuracyPct = percent(correct, out.Overall.TotalQuestions)

	placed := make(map[string]model.UserSubjectLevel, len(placements))
	for _, p := range placements {
		placed[p.SubjectID] = p
	}

	out.Subjects = make([]SubjectStats, 0, len(subjects))
	for _, subj := range subjects {
		ss := SubjectStats{SubjectID: subj.ID, SubjectName: subj.Name, Icon: subj.Icon}
		if p, ok := placed[subj.ID]; ok {
			ss.CurrentLevel = findLevel(subj, p.CurrentLevelID)
			ss.SuggestedLevel = findLevel(subj, p.SuggestedLevelID)
		}
		if t := bySubject[subj.ID]; t != nil {
			ss.QuizzesCompleted = t.quizzes
			ss.AccuracyPct = percent(t.correct, t.total)
		}
		out.Subjects = append(out.Subjects, ss)
	}
	return out, nil
}

func findLevel(s model.Subject, id string) *model.Level {
	if id == "" {
		return nil
	}
	if l, ok := s.FindLevel(id); ok {
		return &l
	}
	return nil
}

func percent(n, d int) int {
	if d == 0 {
		return 0
	}
	return int(math.Round(float64(n) * 100 / float64(d)))
}
