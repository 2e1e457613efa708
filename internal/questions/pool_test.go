package questions

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/abhisek/levelup/internal/llm"
	"github.com/abhisek/levelup/internal/model"
	"github.com/abhisek/levelup/internal/store"
)

func poolQuestions(levelID string, n int) []model.Question {
	out := make([]model.Question, n)
	for i := range out {
		out[i] = model.Question{ID: fmt.Sprintf("%s-%d", levelID, i), LevelID: levelID, Prompt: fmt.Sprintf("p%d", i)}
	}
	return out
}

func TestSample_NoDuplicates(t *testing.T) {
	s := NewSampler(rand.NewPCG(1, 2))
	qs := poolQuestions("math-1", 10)

	for round := 0; round < 50; round++ {
		got := s.Sample(qs, 3)
		if len(got) != 3 {
			t.Fatalf("got %d, want 3", len(got))
		}
		seen := map[string]bool{}
		for _, q := range got {
			if seen[q.ID] {
				t.Fatalf("duplicate %s in sample", q.ID)
			}
			seen[q.ID] = true
			if q.LevelID != "math-1" {
				t.Fatalf("foreign level %s", q.LevelID)
			}
		}
	}
}

func TestSample_DoesNotModifyInput(t *testing.T) {
	s := NewSampler(rand.NewPCG(3, 4))
	qs := poolQuestions("math-1", 5)
	s.Sample(qs, 5)
	for i, q := range qs {
		if q.ID != fmt.Sprintf("math-1-%d", i) {
			t.Fatalf("input reordered at %d: %s", i, q.ID)
		}
	}
}

func TestSample_Bounds(t *testing.T) {
	s := NewSampler(nil)
	qs := poolQuestions("math-1", 2)

	if got := s.Sample(qs, 5); len(got) != 2 {
		t.Errorf("k > n: got %d, want 2", len(got))
	}
	if got := s.Sample(qs, 0); got != nil {
		t.Errorf("k = 0: got %v", got)
	}
	if got := s.Sample(nil, 3); got != nil {
		t.Errorf("empty pool: got %v", got)
	}
}

func TestSample_Deterministic(t *testing.T) {
	qs := poolQuestions("math-1", 8)
	a := NewSampler(rand.NewPCG(7, 7)).Sample(qs, 4)
	b := NewSampler(rand.NewPCG(7, 7)).Sample(qs, 4)
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("same seed produced different samples: %v vs %v", a, b)
		}
	}
}

func TestSample_CoversEveryElement(t *testing.T) {
	s := NewSampler(rand.NewPCG(11, 13))
	qs := poolQuestions("math-1", 6)
	seen := map[string]int{}
	for i := 0; i < 600; i++ {
		for _, q := range s.Sample(qs, 2) {
			seen[q.ID]++
		}
	}
	if len(seen) != 6 {
		t.Fatalf("expected every question to be drawn, saw %d", len(seen))
	}
}

func TestSeederFill(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	subject := model.Subject{ID: "math", Name: "Math", Levels: []model.Level{
		{ID: "math-1", SubjectID: "math", Name: "1st Grade", Ordinal: 1},
		{ID: "math-2", SubjectID: "math", Name: "2nd Grade", Ordinal: 2},
	}}
	if err := st.Catalog().UpsertSubject(ctx, subject); err != nil {
		t.Fatal(err)
	}

	// math-1 already holds two questions.
	pre := []model.Question{
		{SubjectID: "math", LevelID: "math-1", Prompt: "old 1", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: "A", Explanation: "x"},
		{SubjectID: "math", LevelID: "math-1", Prompt: "old 2", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: "A", Explanation: "x"},
	}
	if err := st.Questions().SaveQuestions(ctx, pre); err != nil {
		t.Fatal(err)
	}

	mock := llm.NewMockProvider(
		llm.MockResponse{Content: setJSON(t, validRaw("math-1", 1))},
		llm.MockResponse{Content: setJSON(t, validRaw("math-2", 1), validRaw("math-2", 2), validRaw("math-2", 3))},
	)
	seeder := NewSeeder(New(mock, DefaultConfig()), st.Questions(), nil)

	added, err := seeder.Fill(ctx, subject, 3)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if added["math-1"] != 1 || added["math-2"] != 3 {
		t.Errorf("added = %v", added)
	}
	if !strings.Contains(mock.Calls[0].Messages[0].Content, "old 1") {
		t.Error("existing prompts should be passed as prior questions")
	}

	counts, err := st.Questions().CountByLevel(ctx, "math")
	if err != nil {
		t.Fatal(err)
	}
	if counts["math-1"] != 3 || counts["math-2"] != 3 {
		t.Errorf("counts = %v", counts)
	}

	// Second run has nothing to do.
	added, err = seeder.Fill(ctx, subject, 3)
	if err != nil {
		t.Fatalf("second Fill: %v", err)
	}
	if len(added) != 0 || mock.CallCount() != 2 {
		t.Errorf("second fill added %v with %d calls", added, mock.CallCount())
	}
}
