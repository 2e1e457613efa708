package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/levelup/internal/model"
)

// UserStore persists per-learner streak counters.
type UserStore struct {
	s *Store
}

// GetUser returns the user's counters. Unknown users get zero counters.
func (r *UserStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	sel := sqlite.Select("id", "current_streak", "longest_streak", "last_quiz_date").
		From(sqlite.Table(UsersTable.Name)).
		Where(entsql.EQ("id", id))

	var (
		u    model.User
		last sql.NullString
	)
	err := queryRow(ctx, r.s.db, sel).Scan(&u.ID, &u.CurrentStreak, &u.LongestStreak, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return &model.User{ID: id}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	u.LastQuizDate = last.String
	return &u, nil
}

// SaveUser inserts or updates the user's counters.
func (r *UserStore) SaveUser(ctx context.Context, u *model.User) error {
	ins := sqlite.Insert(UsersTable.Name).
		Columns("id", "current_streak", "longest_streak", "last_quiz_date").
		Values(u.ID, u.CurrentStreak, u.LongestStreak, nullString(u.LastQuizDate)).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues())
	if _, err := exec(ctx, r.s.db, ins); err != nil {
		return fmt.Errorf("save user %s: %w", u.ID, err)
	}
	return nil
}
