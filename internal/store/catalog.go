package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/levelup/internal/model"
)

// CatalogStore persists subjects and their levels.
type CatalogStore struct {
	s *Store
}

var levelColumns = []string{"id", "subject_id", "name", "description", "sort_order", "topics"}

// UpsertSubject inserts or replaces a subject and its levels in one
// transaction.
func (r *CatalogStore) UpsertSubject(ctx context.Context, subject model.Subject) error {
	return r.s.withTx(ctx, func(tx *sql.Tx) error {
		ins := sqlite.Insert(SubjectsTable.Name).
			Columns("id", "name", "icon", "sort_order").
			Values(subject.ID, subject.Name, subject.Icon, subject.SortOrder).
			OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues())
		if _, err := exec(ctx, tx, ins); err != nil {
			return fmt.Errorf("upsert subject %s: %w", subject.ID, err)
		}

		for _, l := range subject.Levels {
			topics, err := toJSON(l.Topics)
			if err != nil {
				return fmt.Errorf("encode topics for level %s: %w", l.ID, err)
			}
			ins := sqlite.Insert(LevelsTable.Name).
				Columns(levelColumns...).
				Values(l.ID, subject.ID, l.Name, l.Description, l.Ordinal, topics).
				OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues())
			if _, err := exec(ctx, tx, ins); err != nil {
				return fmt.Errorf("upsert level %s: %w", l.ID, err)
			}
		}
		return nil
	})
}

// ListSubjects returns every subject with its levels in ascending ordinal
// order.
func (r *CatalogStore) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	sel := sqlite.Select("id", "name", "icon", "sort_order").
		From(sqlite.Table(SubjectsTable.Name)).
		OrderBy("sort_order", "name")

	rows, err := query(ctx, r.s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query subjects: %w", err)
	}
	var subjects []model.Subject
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.Icon, &s.SortOrder); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		subjects = append(subjects, s)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	levels, err := r.levels(ctx, nil)
	if err != nil {
		return nil, err
	}
	for i := range subjects {
		subjects[i].Levels = levels[subjects[i].ID]
	}
	return subjects, nil
}

// GetSubject returns the subject with its levels, or nil if it does not
// exist.
func (r *CatalogStore) GetSubject(ctx context.Context, id string) (*model.Subject, error) {
	sel := sqlite.Select("id", "name", "icon", "sort_order").
		From(sqlite.Table(SubjectsTable.Name)).
		Where(entsql.EQ("id", id))

	var s model.Subject
	err := queryRow(ctx, r.s.db, sel).Scan(&s.ID, &s.Name, &s.Icon, &s.SortOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get subject %s: %w", id, err)
	}

	levels, err := r.levels(ctx, entsql.EQ("subject_id", id))
	if err != nil {
		return nil, err
	}
	s.Levels = levels[id]
	return &s, nil
}

// GetLevel returns a single level, or nil if it does not exist.
func (r *CatalogStore) GetLevel(ctx context.Context, id string) (*model.Level, error) {
	levels, err := r.levels(ctx, entsql.EQ("id", id))
	if err != nil {
		return nil, err
	}
	for _, ls := range levels {
		if len(ls) > 0 {
			return &ls[0], nil
		}
	}
	return nil, nil
}

// levels loads levels grouped by subject id, each group ordered by
// ascending ordinal.
func (r *CatalogStore) levels(ctx context.Context, where *entsql.Predicate) (map[string][]model.Level, error) {
	sel := sqlite.Select(levelColumns...).
		From(sqlite.Table(LevelsTable.Name)).
		OrderBy("subject_id", "sort_order")
	if where != nil {
		sel.Where(where)
	}

	rows, err := query(ctx, r.s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query levels: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]model.Level)
	for rows.Next() {
		var (
			l      model.Level
			topics sql.NullString
		)
		if err := rows.Scan(&l.ID, &l.SubjectID, &l.Name, &l.Description, &l.Ordinal, &topics); err != nil {
			return nil, fmt.Errorf("scan level: %w", err)
		}
		if err := fromJSON(topics.String, &l.Topics); err != nil {
			return nil, fmt.Errorf("decode topics for level %s: %w", l.ID, err)
		}
		out[l.SubjectID] = append(out[l.SubjectID], l)
	}
	return out, rows.Err()
}
