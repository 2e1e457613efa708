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

// QuizStore persists generated quizzes and their categories.
type QuizStore struct {
	s *Store
}

// QuizFilter narrows ListQuizzes. Empty fields do not filter.
type QuizFilter struct {
	SubjectID string
	LevelID   string
	CreatedBy string
	Search    string // case-insensitive substring of the topic name
	Limit     int
	Offset    int
}

// CreateQuiz inserts a category and its quiz in one transaction. Ids and
// timestamps are filled in place.
func (r *QuizStore) CreateQuiz(ctx context.Context, q *model.Quiz) error {
	now := time.Now().UTC()
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = now
	}
	cat := &q.Category
	if cat.ID == "" {
		cat.ID = uuid.NewString()
	}
	if cat.CreatedAt.IsZero() {
		cat.CreatedAt = now
	}
	if cat.CreatedBy == "" {
		cat.CreatedBy = q.CreatedBy
	}
	qs, err := toJSON(q.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}

	return r.s.withTx(ctx, func(tx *sql.Tx) error {
		insCat := sqlite.Insert(QuizCategoriesTable.Name).
			Columns("id", "subject_id", "level_id", "topic_name", "created_by", "created_at").
			Values(cat.ID, cat.SubjectID, cat.LevelID, cat.TopicName, cat.CreatedBy, cat.CreatedAt)
		if _, err := exec(ctx, tx, insCat); err != nil {
			return fmt.Errorf("insert quiz category: %w", err)
		}

		insQuiz := sqlite.Insert(QuizzesTable.Name).
			Columns("id", "category_id", "questions", "question_count", "time_limit_minutes", "created_by", "created_at").
			Values(q.ID, cat.ID, qs, q.QuestionCount, q.TimeLimitMinutes, q.CreatedBy, q.CreatedAt)
		if _, err := exec(ctx, tx, insQuiz); err != nil {
			return fmt.Errorf("insert quiz: %w", err)
		}
		return nil
	})
}

// GetQuiz returns the quiz with its questions, or nil if it does not exist.
func (r *QuizStore) GetQuiz(ctx context.Context, id string) (*model.Quiz, error) {
	q, c := quizTables()
	sel := quizSelect(q, c, true).Where(entsql.EQ(q.C("id"), id))

	quiz, err := scanQuiz(queryRow(ctx, r.s.db, sel), true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return quiz, err
}

// ListQuizzes returns matching quizzes newest first without their
// questions, plus the total number of matches.
func (r *QuizStore) ListQuizzes(ctx context.Context, f QuizFilter) ([]model.Quiz, int, error) {
	q, c := quizTables()

	var preds []*entsql.Predicate
	if f.SubjectID != "" {
		preds = append(preds, entsql.EQ(c.C("subject_id"), f.SubjectID))
	}
	if f.LevelID != "" {
		preds = append(preds, entsql.EQ(c.C("level_id"), f.LevelID))
	}
	if f.CreatedBy != "" {
		preds = append(preds, entsql.EQ(q.C("created_by"), f.CreatedBy))
	}
	if f.Search != "" {
		preds = append(preds, entsql.ContainsFold(c.C("topic_name"), f.Search))
	}

	countSel := sqlite.Select(entsql.Count("*")).
		From(q).
		Join(c).On(q.C("category_id"), c.C("id"))
	sel := quizSelect(q, c, false).OrderBy(entsql.Desc(q.C("created_at")))
	if len(preds) > 0 {
		countSel.Where(entsql.And(preds...))
		sel.Where(entsql.And(preds...))
	}

	var total int
	if err := queryRow(ctx, r.s.db, countSel).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count quizzes: %w", err)
	}

	if f.Limit > 0 {
		sel.Limit(f.Limit)
		if f.Offset > 0 {
			sel.Offset(f.Offset)
		}
	}

	rows, err := query(ctx, r.s.db, sel)
	if err != nil {
		return nil, 0, fmt.Errorf("query quizzes: %w", err)
	}
	defer rows.Close()

	var out []model.Quiz
	for rows.Next() {
		quiz, err := scanQuiz(rows, false)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *quiz)
	}
	return out, total, rows.Err()
}

func quizTables() (q, c *entsql.SelectTable) {
	return sqlite.Table(QuizzesTable.Name).As("q"), sqlite.Table(QuizCategoriesTable.Name).As("c")
}

func quizSelect(q, c *entsql.SelectTable, withQuestions bool) *entsql.Selector {
	cols := []string{
		q.C("id"), q.C("question_count"), q.C("time_limit_minutes"), q.C("created_by"), q.C("created_at"),
		c.C("id"), c.C("subject_id"), c.C("level_id"), c.C("topic_name"), c.C("created_by"), c.C("created_at"),
	}
	if withQuestions {
		cols = append(cols, q.C("questions"))
	}
	return sqlite.Select(cols...).
		From(q).
		Join(c).On(q.C("category_id"), c.C("id"))
}

func scanQuiz(row scanner, withQuestions bool) (*model.Quiz, error) {
	var (
		quiz      model.Quiz
		questions string
	)
	cat := &quiz.Category
	dest := []any{
		&quiz.ID, &quiz.QuestionCount, &quiz.TimeLimitMinutes, &quiz.CreatedBy, &quiz.CreatedAt,
		&cat.ID, &cat.SubjectID, &cat.LevelID, &cat.TopicName, &cat.CreatedBy, &cat.CreatedAt,
	}
	if withQuestions {
		dest = append(dest, &questions)
	}
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan quiz: %w", err)
	}
	if withQuestions {
		if err := fromJSON(questions, &quiz.Questions); err != nil {
			return nil, fmt.Errorf("decode questions for quiz %s: %w", quiz.ID, err)
		}
	}
	return &quiz, nil
}
