package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/levelup/internal/model"
)

// AssessmentStore persists placement assessments.
type AssessmentStore struct {
	s *Store
}

var assessmentColumns = []string{
	"id", "user_id", "subject_id", "questions", "answers", "scores",
	"suggested_level_id", "created_at", "completed_at",
}

// Completion is the outcome recorded when an assessment is submitted.
type Completion struct {
	AssessmentID     string
	UserID           string
	SubjectID        string
	Answers          []model.GradedAnswer
	Scores           []model.LevelScore
	SuggestedLevelID string
	CompletedAt      time.Time
}

// CreateAssessment inserts a new, uncompleted assessment.
func (r *AssessmentStore) CreateAssessment(ctx context.Context, a *model.Assessment) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	qs, err := toJSON(a.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}

	ins := sqlite.Insert(AssessmentsTable.Name).
		Columns("id", "user_id", "subject_id", "questions", "created_at").
		Values(a.ID, a.UserID, a.SubjectID, qs, a.CreatedAt)
	if _, err := exec(ctx, r.s.db, ins); err != nil {
		return fmt.Errorf("insert assessment: %w", err)
	}
	return nil
}

// GetAssessment returns the assessment, or nil if it does not exist.
func (r *AssessmentStore) GetAssessment(ctx context.Context, id string) (*model.Assessment, error) {
	sel := sqlite.Select(assessmentColumns...).
		From(sqlite.Table(AssessmentsTable.Name)).
		Where(entsql.EQ("id", id))

	a, err := scanAssessment(queryRow(ctx, r.s.db, sel))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return a, err
}

// ListAssessments returns a user's assessments newest first, optionally
// restricted to one subject.
func (r *AssessmentStore) ListAssessments(ctx context.Context, userID, subjectID string) ([]model.Assessment, error) {
	pred := entsql.EQ("user_id", userID)
	if subjectID != "" {
		pred = entsql.And(pred, entsql.EQ("subject_id", subjectID))
	}
	sel := sqlite.Select(assessmentColumns...).
		From(sqlite.Table(AssessmentsTable.Name)).
		Where(pred).
		OrderBy(entsql.Desc("created_at"))

	rows, err := query(ctx, r.s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	var out []model.Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// CompleteAssessment records results and, when a level was suggested, the
// user's placement, in one transaction. The update only applies while
// completed_at is still NULL; it returns false when another submission
// already completed the assessment.
func (r *AssessmentStore) CompleteAssessment(ctx context.Context, c Completion) (bool, error) {
	answers, err := toJSON(c.Answers)
	if err != nil {
		return false, fmt.Errorf("encode answers: %w", err)
	}
	scores, err := toJSON(c.Scores)
	if err != nil {
		return false, fmt.Errorf("encode scores: %w", err)
	}

	completed := false
	err = r.s.withTx(ctx, func(tx *sql.Tx) error {
		upd := sqlite.Update(AssessmentsTable.Name).
			Set("answers", answers).
			Set("scores", scores).
			Set("suggested_level_id", nullString(c.SuggestedLevelID)).
			Set("completed_at", c.CompletedAt).
			Where(entsql.And(
				entsql.EQ("id", c.AssessmentID),
				entsql.IsNull("completed_at"),
			))
		res, err := exec(ctx, tx, upd)
		if err != nil {
			return fmt.Errorf("complete assessment: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if n == 0 {
			return nil
		}
		completed = true

		if c.SuggestedLevelID == "" {
			return nil
		}
		return recordSuggestion(ctx, tx, c.UserID, c.SubjectID, c.SuggestedLevelID, c.CompletedAt)
	})
	return completed, err
}

func scanAssessment(row scanner) (*model.Assessment, error) {
	var (
		a               model.Assessment
		questions       string
		answers, scores sql.NullString
		suggested       sql.NullString
		completedAt     sql.NullTime
	)
	err := row.Scan(&a.ID, &a.UserID, &a.SubjectID, &questions, &answers, &scores,
		&suggested, &a.CreatedAt, &completedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan assessment: %w", err)
	}
	if err := fromJSON(questions, &a.Questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	if err := fromJSON(answers.String, &a.Answers); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	if err := fromJSON(scores.String, &a.Scores); err != nil {
		return nil, fmt.Errorf("decode scores: %w", err)
	}
	a.SuggestedLevelID = suggested.String
	if completedAt.Valid {
		t := completedAt.Time
		a.CompletedAt = &t
	}
	return &a, nil
}
