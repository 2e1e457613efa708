// Package catalog owns subjects and their level ladders.
package catalog

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/levelup/internal/apperr"
	"github.com/abhisek/levelup/internal/model"
)

// Repo is the persistence the catalog needs.
type Repo interface {
	UpsertSubject(ctx context.Context, subject model.Subject) error
	ListSubjects(ctx context.Context) ([]model.Subject, error)
	GetSubject(ctx context.Context, id string) (*model.Subject, error)
}

// Service reads and seeds the subject catalog.
type Service struct {
	repo   Repo
	logger *zap.Logger
}

func NewService(repo Repo, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// ListSubjects returns every subject with its levels in ascending ordinal
// order.
func (s *Service) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	subjects, err := s.repo.ListSubjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	for i := range subjects {
		subjects[i].Levels = model.SortedLevels(subjects[i].Levels)
	}
	return subjects, nil
}

// GetSubject returns the subject with levels sorted by ordinal.
func (s *Service) GetSubject(ctx context.Context, id string) (*model.Subject, error) {
	subject, err := s.repo.GetSubject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get subject %s: %w", id, err)
	}
	if subject == nil {
		return nil, apperr.NotFound("subject %q not found", id)
	}
	subject.Levels = model.SortedLevels(subject.Levels)
	return subject, nil
}

// ResolveLevel returns the subject and one of its levels. A level that
// exists under another subject is invalid input.
func (s *Service) ResolveLevel(ctx context.Context, subjectID, levelID string) (*model.Subject, model.Level, error) {
	subject, err := s.GetSubject(ctx, subjectID)
	if err != nil {
		return nil, model.Level{}, err
	}
	level, ok := subject.FindLevel(levelID)
	if !ok {
		return nil, model.Level{}, apperr.InvalidInput("level %q does not belong to subject %q", levelID, subjectID)
	}
	return subject, level, nil
}

// Seed validates subjects and upserts them. Running it again leaves the
// catalog unchanged.
func (s *Service) Seed(ctx context.Context, subjects []model.Subject) error {
	if err := Validate(subjects); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}
	for _, subject := range subjects {
		if err := s.repo.UpsertSubject(ctx, subject); err != nil {
			return fmt.Errorf("seed subject %s: %w", subject.ID, err)
		}
		s.logger.Info("seeded subject",
			zap.String("subject_id", subject.ID),
			zap.Int("levels", len(subject.Levels)))
	}
	return nil
}

// Builtin returns a copy of the built-in catalog.
func Builtin() []model.Subject {
	out := make([]model.Subject, len(seedSubjects))
	for i, s := range seedSubjects {
		s.Levels = append([]model.Level(nil), s.Levels...)
		out[i] = s
	}
	return out
}

type levelSpec struct {
	name   string
	topics []string
}

// levels assigns ids and ordinals 1..n in the order given.
func levels(subjectID string, specs ...levelSpec) []model.Level {
	out := make([]model.Level, len(specs))
	for i, spec := range specs {
		out[i] = model.Level{
			ID:        subjectID + "-" + Slug(spec.name),
			SubjectID: subjectID,
			Name:      spec.name,
			Ordinal:   i + 1,
			Topics:    spec.topics,
		}
	}
	return out
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases s and joins its alphanumeric runs with hyphens.
func Slug(s string) string {
	s = strings.ReplaceAll(strings.ToLower(s), "&", "and")
	return strings.Trim(nonSlug.ReplaceAllString(s, "-"), "-")
}
