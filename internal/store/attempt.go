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

// AttemptStore persists quiz attempts.
type AttemptStore struct {
	s *Store
}

var attemptColumns = []string{
	"id", "quiz_id", "user_id", "answers", "score", "total_questions",
	"time_taken_seconds", "is_first_attempt", "completed_at",
}

// CreateAttempt inserts a scored attempt. It is flagged as the first
// attempt when substantive is true and the user has no first attempt on
// this quiz yet; the check and insert share a transaction.
func (r *AttemptStore) CreateAttempt(ctx context.Context, a *model.Attempt, substantive bool) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CompletedAt.IsZero() {
		a.CompletedAt = time.Now().UTC()
	}
	answers, err := toJSON(a.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}

	return r.s.withTx(ctx, func(tx *sql.Tx) error {
		count := sqlite.Select(entsql.Count("*")).
			From(sqlite.Table(AttemptsTable.Name)).
			Where(entsql.And(
				entsql.EQ("quiz_id", a.QuizID),
				entsql.EQ("user_id", a.UserID),
				entsql.EQ("is_first_attempt", true),
			))
		var n int
		if err := queryRow(ctx, tx, count).Scan(&n); err != nil {
			return fmt.Errorf("count first attempts: %w", err)
		}
		a.IsFirstAttempt = substantive && n == 0

		ins := sqlite.Insert(AttemptsTable.Name).
			Columns(attemptColumns...).
			Values(a.ID, a.QuizID, a.UserID, answers, a.Score, a.TotalQuestions,
				a.TimeTakenSeconds, a.IsFirstAttempt, a.CompletedAt)
		if _, err := exec(ctx, tx, ins); err != nil {
			return fmt.Errorf("insert attempt: %w", err)
		}
		return nil
	})
}

// GetAttempt returns the attempt, or nil if it does not exist.
func (r *AttemptStore) GetAttempt(ctx context.Context, id string) (*model.Attempt, error) {
	sel := sqlite.Select(attemptColumns...).
		From(sqlite.Table(AttemptsTable.Name)).
		Where(entsql.EQ("id", id))

	a, err := scanAttempt(queryRow(ctx, r.s.db, sel))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return a, err
}

// ListAttempts returns a user's attempts newest first, optionally for one
// quiz only.
func (r *AttemptStore) ListAttempts(ctx context.Context, userID, quizID string) ([]model.Attempt, error) {
	pred := entsql.EQ("user_id", userID)
	if quizID != "" {
		pred = entsql.And(pred, entsql.EQ("quiz_id", quizID))
	}
	sel := sqlite.Select(attemptColumns...).
		From(sqlite.Table(AttemptsTable.Name)).
		Where(pred).
		OrderBy(entsql.Desc("completed_at"))
	return r.list(ctx, sel)
}

// ListAllAttempts returns every attempt ordered by user, quiz and
// completion time.
func (r *AttemptStore) ListAllAttempts(ctx context.Context) ([]model.Attempt, error) {
	sel := sqlite.Select(attemptColumns...).
		From(sqlite.Table(AttemptsTable.Name)).
		OrderBy("user_id", "quiz_id", "completed_at")
	return r.list(ctx, sel)
}

// SetFirstAttemptFlags updates is_first_attempt for the given attempt ids
// in one transaction.
func (r *AttemptStore) SetFirstAttemptFlags(ctx context.Context, flags map[string]bool) error {
	if len(flags) == 0 {
		return nil
	}
	return r.s.withTx(ctx, func(tx *sql.Tx) error {
		for id, first := range flags {
			upd := sqlite.Update(AttemptsTable.Name).
				Set("is_first_attempt", first).
				Where(entsql.EQ("id", id))
			if _, err := exec(ctx, tx, upd); err != nil {
				return fmt.Errorf("update attempt %s: %w", id, err)
			}
		}
		return nil
	})
}

// AttemptSummaries returns a user's attempts joined with subject and topic,
// newest first.
func (r *AttemptStore) AttemptSummaries(ctx context.Context, userID string) ([]model.AttemptSummary, error) {
	a := sqlite.Table(AttemptsTable.Name).As("a")
	q, c := quizTables()
	sel := sqlite.Select(
		a.C("id"), a.C("quiz_id"), c.C("subject_id"), c.C("level_id"), c.C("topic_name"),
		a.C("score"), a.C("total_questions"), a.C("time_taken_seconds"),
		a.C("is_first_attempt"), a.C("completed_at"),
	).
		From(a).
		Join(q).On(a.C("quiz_id"), q.C("id")).
		Join(c).On(q.C("category_id"), c.C("id")).
		Where(entsql.EQ(a.C("user_id"), userID)).
		OrderBy(entsql.Desc(a.C("completed_at")))

	rows, err := query(ctx, r.s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query attempt summaries: %w", err)
	}
	defer rows.Close()

	var out []model.AttemptSummary
	for rows.Next() {
		var s model.AttemptSummary
		if err := rows.Scan(&s.AttemptID, &s.QuizID, &s.SubjectID, &s.LevelID, &s.TopicName,
			&s.Score, &s.TotalQuestions, &s.TimeTakenSeconds, &s.IsFirstAttempt, &s.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan attempt summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *AttemptStore) list(ctx context.Context, sel *entsql.Selector) ([]model.Attempt, error) {
	rows, err := query(ctx, r.s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []model.Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func scanAttempt(row scanner) (*model.Attempt, error) {
	var (
		a       model.Attempt
		answers string
	)
	err := row.Scan(&a.ID, &a.QuizID, &a.UserID, &answers, &a.Score, &a.TotalQuestions,
		&a.TimeTakenSeconds, &a.IsFirstAttempt, &a.CompletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan attempt: %w", err)
	}
	if err := fromJSON(answers, &a.Answers); err != nil {
		return nil, fmt.Errorf("decode answers for attempt %s: %w", a.ID, err)
	}
	return &a, nil
}
