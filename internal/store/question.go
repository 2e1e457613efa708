package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/levelup/internal/model"
)

// QuestionStore persists the pre-generated question pool.
type QuestionStore struct {
	s *Store
}

var questionColumns = []string{
	"id", "subject_id", "level_id", "question", "options",
	"correct_answer", "explanation", "created_at",
}

// SaveQuestions inserts questions in one transaction. Missing ids and
// timestamps are filled in place.
func (r *QuestionStore) SaveQuestions(ctx context.Context, qs []model.Question) error {
	if len(qs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	return r.s.withTx(ctx, func(tx *sql.Tx) error {
		ins := sqlite.Insert(QuestionsTable.Name).Columns(questionColumns...)
		for i := range qs {
			q := &qs[i]
			if q.ID == "" {
				q.ID = uuid.NewString()
			}
			if q.CreatedAt.IsZero() {
				q.CreatedAt = now
			}
			opts, err := toJSON(q.Options)
			if err != nil {
				return fmt.Errorf("encode options: %w", err)
			}
			ins.Values(q.ID, q.SubjectID, q.LevelID, q.Prompt, opts, q.CorrectAnswer, q.Explanation, q.CreatedAt)
		}
		if _, err := exec(ctx, tx, ins); err != nil {
			return fmt.Errorf("insert questions: %w", err)
		}
		return nil
	})
}

// FindQuestions returns every pooled question for one subject level.
func (r *QuestionStore) FindQuestions(ctx context.Context, subjectID, levelID string) ([]model.Question, error) {
	sel := sqlite.Select(questionColumns...).
		From(sqlite.Table(QuestionsTable.Name)).
		Where(entsql.And(
			entsql.EQ("subject_id", subjectID),
			entsql.EQ("level_id", levelID),
		)).
		OrderBy("created_at", "id")

	rows, err := query(ctx, r.s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var out []model.Question
	for rows.Next() {
		var (
			q    model.Question
			opts string
		)
		if err := rows.Scan(&q.ID, &q.SubjectID, &q.LevelID, &q.Prompt, &opts,
			&q.CorrectAnswer, &q.Explanation, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := fromJSON(opts, &q.Options); err != nil {
			return nil, fmt.Errorf("decode options for question %s: %w", q.ID, err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// CountByLevel returns the pool size per level id for a subject.
func (r *QuestionStore) CountByLevel(ctx context.Context, subjectID string) (map[string]int, error) {
	sel := sqlite.Select("level_id", entsql.Count("*")).
		From(sqlite.Table(QuestionsTable.Name)).
		Where(entsql.EQ("subject_id", subjectID)).
		GroupBy("level_id")

	rows, err := query(ctx, r.s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			levelID string
			n       int
		)
		if err := rows.Scan(&levelID, &n); err != nil {
			return nil, fmt.Errorf("scan question count: %w", err)
		}
		counts[levelID] = n
	}
	return counts, rows.Err()
}
