package assessment

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/levelup/internal/apperr"
	"github.com/abhisek/levelup/internal/llm"
	"github.com/abhisek/levelup/internal/model"
	"github.com/abhisek/levelup/internal/questions"
)

func newComposer(t *testing.T, provider llm.Provider, pool questions.Pool, cfg ComposerConfig) *Composer {
	t.Helper()
	gen := questions.New(provider, questions.DefaultConfig())
	return NewComposer(gen, pool, questions.NewSampler(rand.NewPCG(1, 1)), cfg, nil)
}

func TestComposeFixedTotal(t *testing.T) {
	s := openStore(t)
	subject := threeLevelSubject()
	seedSubject(t, s, subject)

	// ceil(18/3) = 6 per level.
	mock := llm.NewMockProvider(questionSet(t, 6, "math-1", "math-2", "math-3"))
	c := newComposer(t, mock, s.Questions(), ComposerConfig{Policy: PolicyFixedTotal, Total: 18})

	qs, err := c.Compose(context.Background(), subject)
	require.NoError(t, err)
	require.Len(t, qs, 18)
	assert.Equal(t, 1, mock.CallCount())

	for i, q := range qs {
		assert.Equal(t, questions.SequentialID(i+1), q.ID)
		assert.NotEmpty(t, q.LevelName)
		assert.Empty(t, q.SourceID)
	}
	assert.Equal(t, "math-1", qs[0].LevelID)
	assert.Equal(t, "math-3", qs[17].LevelID)

	// Fixed-total questions are not added to the pool.
	counts, err := s.Questions().CountByLevel(context.Background(), "math")
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestComposeFixedTotal_Overshoot(t *testing.T) {
	c := &Composer{cfg: ComposerConfig{Policy: PolicyFixedTotal, Total: 18}}
	tests := []struct{ levels, perLevel int }{
		{1, 18}, {3, 6}, {4, 5}, {5, 4}, {7, 3}, {13, 2}, {18, 1}, {20, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.perLevel, c.PerLevel(tt.levels), "levels=%d", tt.levels)
		assert.GreaterOrEqual(t, tt.perLevel*tt.levels, 18)
	}
}

func TestComposePooled_FromPool(t *testing.T) {
	s := openStore(t)
	subject := threeLevelSubject()
	seedSubject(t, s, subject)
	for _, l := range subject.Levels {
		seedPool(t, s, "math", l.ID, 5)
	}

	mock := llm.NewMockProvider()
	c := newComposer(t, mock, s.Questions(), ComposerConfig{Policy: PolicyPooled, PerLevelQuota: 3})

	qs, err := c.Compose(context.Background(), subject)
	require.NoError(t, err)
	require.Len(t, qs, 9)
	assert.Zero(t, mock.CallCount(), "no generation when every pool is large enough")

	seen := map[string]bool{}
	for i, q := range qs {
		wantLevel := subject.Levels[i/3].ID
		assert.Equal(t, wantLevel, q.LevelID, "question %d", i)
		assert.NotEmpty(t, q.SourceID)
		assert.False(t, seen[q.SourceID], "duplicate pool question %s", q.SourceID)
		seen[q.SourceID] = true
	}
}

func TestComposePooled_FallbackForShortLevel(t *testing.T) {
	s := openStore(t)
	subject := threeLevelSubject()
	seedSubject(t, s, subject)
	seedPool(t, s, "math", "math-1", 3)
	seedPool(t, s, "math", "math-2", 1) // short
	seedPool(t, s, "math", "math-3", 4)

	mock := llm.NewMockProvider(questionSet(t, 3, "math-2"))
	c := newComposer(t, mock, s.Questions(), ComposerConfig{Policy: PolicyPooled, PerLevelQuota: 3})

	qs, err := c.Compose(context.Background(), subject)
	require.NoError(t, err)
	require.Len(t, qs, 9)
	assert.Equal(t, 1, mock.CallCount())
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "math-2 pooled 0?", "existing prompts are passed as prior questions")

	for _, q := range qs[3:6] {
		assert.Equal(t, "math-2", q.LevelID)
		assert.Empty(t, q.SourceID)
	}

	counts, err := s.Questions().CountByLevel(context.Background(), "math")
	require.NoError(t, err)
	assert.Equal(t, 4, counts["math-2"], "generated questions are saved to the pool")
}

func TestComposePooled_GenerationFailureIsFatal(t *testing.T) {
	s := openStore(t)
	subject := threeLevelSubject()
	seedSubject(t, s, subject)

	// First level generates fine, second fails.
	mock := llm.NewMockProvider(
		questionSet(t, 2, "math-1"),
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
	)
	c := newComposer(t, mock, s.Questions(), ComposerConfig{Policy: PolicyPooled, PerLevelQuota: 2})

	_, err := c.Compose(context.Background(), subject)
	require.Error(t, err)
	assert.Equal(t, apperr.KindGenerationFailure, apperr.KindOf(err))

	counts, err := s.Questions().CountByLevel(context.Background(), "math")
	require.NoError(t, err)
	assert.Empty(t, counts, "nothing is persisted when composition fails")
}

func TestCompose_Timeout(t *testing.T) {
	subject := threeLevelSubject()
	mock := llm.NewMockProvider(llm.MockResponse{Delay: time.Second})
	provider := llm.WithTimeout(mock, 10*time.Millisecond)
	c := newComposer(t, provider, nil, ComposerConfig{Policy: PolicyFixedTotal, Total: 3})

	_, err := c.Compose(context.Background(), subject)
	require.Error(t, err)
	assert.Equal(t, apperr.KindGenerationFailure, apperr.KindOf(err))
	var timeout *llm.ErrTimeout
	assert.True(t, errors.As(err, &timeout), "timeout stays distinguishable: %v", err)
}

func TestCompose_NoLevels(t *testing.T) {
	c := newComposer(t, llm.NewMockProvider(), nil, DefaultComposerConfig())
	_, err := c.Compose(context.Background(), model.Subject{ID: "empty"})
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}
