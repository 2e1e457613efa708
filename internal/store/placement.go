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

// PlacementStore persists each user's level within a subject.
type PlacementStore struct {
	s *Store
}

var placementColumns = []string{
	"user_id", "subject_id", "current_level_id", "suggested_level_id",
	"last_assessed_at", "updated_at",
}

// RecordSuggestion stores an assessment's suggested level. A new placement
// also starts at the suggested level; an existing one keeps its current
// level.
func (r *PlacementStore) RecordSuggestion(ctx context.Context, userID, subjectID, levelID string, at time.Time) error {
	return r.s.withTx(ctx, func(tx *sql.Tx) error {
		return recordSuggestion(ctx, tx, userID, subjectID, levelID, at)
	})
}

func recordSuggestion(ctx context.Context, q querier, userID, subjectID, levelID string, at time.Time) error {
	id, err := placementID(ctx, q, userID, subjectID)
	if err != nil {
		return err
	}

	if id == "" {
		ins := sqlite.Insert(UserSubjectLevelsTable.Name).
			Columns("id", "user_id", "subject_id", "current_level_id", "suggested_level_id", "last_assessed_at", "updated_at").
			Values(uuid.NewString(), userID, subjectID, levelID, levelID, at, at)
		if _, err := exec(ctx, q, ins); err != nil {
			return fmt.Errorf("insert placement: %w", err)
		}
		return nil
	}

	upd := sqlite.Update(UserSubjectLevelsTable.Name).
		Set("suggested_level_id", levelID).
		Set("last_assessed_at", at).
		Set("updated_at", at).
		Where(entsql.EQ("id", id))
	if _, err := exec(ctx, q, upd); err != nil {
		return fmt.Errorf("update placement: %w", err)
	}
	return nil
}

// SetCurrentLevel sets the level a user studies at, creating the placement
// when needed.
func (r *PlacementStore) SetCurrentLevel(ctx context.Context, userID, subjectID, levelID string) error {
	now := time.Now().UTC()
	return r.s.withTx(ctx, func(tx *sql.Tx) error {
		id, err := placementID(ctx, tx, userID, subjectID)
		if err != nil {
			return err
		}
		if id == "" {
			ins := sqlite.Insert(UserSubjectLevelsTable.Name).
				Columns("id", "user_id", "subject_id", "current_level_id", "updated_at").
				Values(uuid.NewString(), userID, subjectID, levelID, now)
			_, err = exec(ctx, tx, ins)
		} else {
			upd := sqlite.Update(UserSubjectLevelsTable.Name).
				Set("current_level_id", levelID).
				Set("updated_at", now).
				Where(entsql.EQ("id", id))
			_, err = exec(ctx, tx, upd)
		}
		if err != nil {
			return fmt.Errorf("set current level: %w", err)
		}
		return nil
	})
}

// GetPlacement returns the placement for a user and subject, or nil.
func (r *PlacementStore) GetPlacement(ctx context.Context, userID, subjectID string) (*model.UserSubjectLevel, error) {
	out, err := r.list(ctx, entsql.And(
		entsql.EQ("user_id", userID),
		entsql.EQ("subject_id", subjectID),
	))
	if err != nil || len(out) == 0 {
		return nil, err
	}
	return &out[0], nil
}

// ListPlacements returns all of a user's placements.
func (r *PlacementStore) ListPlacements(ctx context.Context, userID string) ([]model.UserSubjectLevel, error) {
	return r.list(ctx, entsql.EQ("user_id", userID))
}

func (r *PlacementStore) list(ctx context.Context, where *entsql.Predicate) ([]model.UserSubjectLevel, error) {
	sel := sqlite.Select(placementColumns...).
		From(sqlite.Table(UserSubjectLevelsTable.Name)).
		Where(where).
		OrderBy("subject_id")

	rows, err := query(ctx, r.s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query placements: %w", err)
	}
	defer rows.Close()

	var out []model.UserSubjectLevel
	for rows.Next() {
		var (
			p                  model.UserSubjectLevel
			current, suggested sql.NullString
			assessed           sql.NullTime
		)
		if err := rows.Scan(&p.UserID, &p.SubjectID, &current, &suggested, &assessed, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan placement: %w", err)
		}
		p.CurrentLevelID = current.String
		p.SuggestedLevelID = suggested.String
		if assessed.Valid {
			t := assessed.Time
			p.LastAssessedAt = &t
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func placementID(ctx context.Context, q querier, userID, subjectID string) (string, error) {
	sel := sqlite.Select("id").
		From(sqlite.Table(UserSubjectLevelsTable.Name)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.EQ("subject_id", subjectID),
		))

	var id string
	err := queryRow(ctx, q, sel).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("lookup placement: %w", err)
	}
	return id, nil
}
