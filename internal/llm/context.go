package llm

import "context"

type contextKey int

const (
	purposeKey contextKey = iota
	userKey
)

// WithPurpose labels the calls made under ctx for the event log and the
// per-purpose metrics, e.g. "quiz-gen" or "topic-check".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom returns the purpose label, or "unknown" when none was set.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok && v != "" {
		return v
	}
	return "unknown"
}

// WithUser attributes the calls made under ctx to a user.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey, userID)
}

// UserFrom returns the attributed user id, or "" for calls made outside a
// request (seeding, CLI).
func UserFrom(ctx context.Context) string {
	v, _ := ctx.Value(userKey).(string)
	return v
}
