package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// EventStore implements EventRepo and the read side used by the llm CLI.
type EventStore struct {
	s *Store
}

var _ EventRepo = (*EventStore)(nil)

var llmEventColumns = []string{
	"id", "sequence", "timestamp", "provider", "model", "purpose",
	"input_tokens", "output_tokens", "latency_ms", "success",
	"error_message", "request_body", "response_body", "user_id",
}

func (r *EventStore) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.s.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ins := sqlite.Insert(LlmRequestEventsTable.Name).
		Columns(llmEventColumns[1:]...).
		Values(
			seqNum,
			time.Now().UTC(),
			data.Provider,
			data.Model,
			data.Purpose,
			data.InputTokens,
			data.OutputTokens,
			data.LatencyMs,
			data.Success,
			nullString(data.ErrorMessage),
			nullString(data.RequestBody),
			nullString(data.ResponseBody),
			nullString(data.UserID),
		)
	if _, err := exec(ctx, r.s.db, ins); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

// QueryLLMEvents returns events newest first.
func (r *EventStore) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	sel := sqlite.Select(llmEventColumns...).
		From(sqlite.Table(LlmRequestEventsTable.Name)).
		OrderBy(entsql.Desc("sequence"))

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To.UTC()))
	}
	if opts.Purpose != "" {
		preds = append(preds, entsql.EQ("purpose", opts.Purpose))
	}
	if opts.UserID != "" {
		preds = append(preds, entsql.EQ("user_id", opts.UserID))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	rows, err := query(ctx, r.s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var events []LLMEvent
	for rows.Next() {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// GetLLMEvent returns the event with the given id, or nil if none exists.
func (r *EventStore) GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error) {
	sel := sqlite.Select(llmEventColumns...).
		From(sqlite.Table(LlmRequestEventsTable.Name)).
		Where(entsql.EQ("id", id))

	e, err := scanLLMEvent(queryRow(ctx, r.s.db, sel))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

// LLMUsageByPurpose aggregates token usage per purpose.
func (r *EventStore) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	return r.usageBy(ctx, "purpose", nil, func(u *LLMUsage, key string) { u.Purpose = key })
}

// LLMUsageByModel aggregates token usage per model.
func (r *EventStore) LLMUsageByModel(ctx context.Context) ([]LLMUsage, error) {
	return r.usageBy(ctx, "model", nil, func(u *LLMUsage, key string) { u.Model = key })
}

// LLMUsageByUser aggregates token usage per attributed user. Calls made
// outside a request are excluded.
func (r *EventStore) LLMUsageByUser(ctx context.Context) ([]LLMUsage, error) {
	return r.usageBy(ctx, "user_id", entsql.NotNull("user_id"), func(u *LLMUsage, key string) { u.UserID = key })
}

func (r *EventStore) usageBy(ctx context.Context, column string, where *entsql.Predicate, set func(*LLMUsage, string)) ([]LLMUsage, error) {
	sel := sqlite.Select(
		column,
		entsql.Count("*"),
		"COALESCE(SUM(`input_tokens`), 0)",
		"COALESCE(SUM(`output_tokens`), 0)",
		"COALESCE(CAST(AVG(`latency_ms`) AS INTEGER), 0)",
	).
		From(sqlite.Table(LlmRequestEventsTable.Name)).
		GroupBy(column).
		OrderBy(column)
	if where != nil {
		sel.Where(where)
	}

	rows, err := query(ctx, r.s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query LLM usage by %s: %w", column, err)
	}
	defer rows.Close()

	var out []LLMUsage
	for rows.Next() {
		var (
			u   LLMUsage
			key string
		)
		if err := rows.Scan(&key, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan LLM usage: %w", err)
		}
		set(&u, key)
		out = append(out, u)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLLMEvent(row scanner) (*LLMEvent, error) {
	var (
		e                         LLMEvent
		errMsg, reqBody, respBody sql.NullString
		userID                    sql.NullString
	)
	err := row.Scan(
		&e.ID, &e.Sequence, &e.Timestamp, &e.Provider, &e.Model, &e.Purpose,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success,
		&errMsg, &reqBody, &respBody, &userID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan LLM event: %w", err)
	}
	e.ErrorMessage = errMsg.String
	e.RequestBody = reqBody.String
	e.ResponseBody = respBody.String
	e.UserID = userID.String
	return &e, nil
}
