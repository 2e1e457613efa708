package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhisek/levelup/internal/apperr"
	"github.com/abhisek/levelup/internal/config"
	"github.com/abhisek/levelup/internal/llm"
	"github.com/abhisek/levelup/internal/quiz"
)

func memoryDSN() string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
}

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	return cfg
}

func clearVendorKeys(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY", "LEVELUP_LLM_PROVIDER"} {
		t.Setenv(k, "")
	}
}

func TestNewWithoutProvider(t *testing.T) {
	clearVendorKeys(t)
	ctx := context.Background()

	a, err := New(ctx, loadConfig(t), memoryDSN(), WithLogger(zap.NewNop()))
	require.NoError(t, err)
	defer a.Close()

	assert.False(t, a.HasLLM)
	require.NoError(t, a.SeedCatalog(ctx))

	subjects, err := a.Catalog.ListSubjects(ctx)
	require.NoError(t, err)
	assert.Len(t, subjects, 5)

	_, err = a.FillPools(ctx, 3)
	assert.ErrorIs(t, err, ErrNoProvider)

	_, err = a.Quizzes.Create(ctx, "u1", quiz.CreateRequest{
		SubjectID: "math", LevelID: subjects[0].Levels[0].ID, Topic: "counting",
	})
	require.ErrorIs(t, err, apperr.ErrGenerationFailure)
	assert.ErrorIs(t, err, ErrNoProvider)
}

func TestServerServesWiredServices(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, loadConfig(t), memoryDSN(), WithLogger(zap.NewNop()), WithProvider(llm.NewMockProvider()))
	require.NoError(t, err)
	defer a.Close()
	require.True(t, a.HasLLM)
	require.NoError(t, a.SeedCatalog(ctx))

	h := a.Server().Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/subjects/spanish", nil)
	req.Header.Set("X-User-ID", "u1")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var subject struct {
		Levels []struct {
			Ordinal int `json:"ordinal"`
		} `json:"levels"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &subject))
	assert.Len(t, subject.Levels, 5)
	assert.Equal(t, 1, subject.Levels[0].Ordinal)
}
