package questions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/abhisek/levelup/internal/llm"
	"github.com/abhisek/levelup/internal/model"
)

func testLevels() []model.Level {
	return []model.Level{
		{ID: "math-2", SubjectID: "math", Name: "2nd Grade", Ordinal: 2, Topics: []string{"Place Value", "Money"}},
		{ID: "math-1", SubjectID: "math", Name: "1st Grade", Ordinal: 1, Topics: []string{"Counting"}},
	}
}

type rawQ struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	LevelID       string   `json:"level_id"`
}

func validRaw(levelID string, n int) rawQ {
	return rawQ{
		Question:      fmt.Sprintf("%s question %d?", levelID, n),
		Options:       []string{"A", "B", "C", "D"},
		CorrectAnswer: "B",
		Explanation:   "B is right.",
		LevelID:       levelID,
	}
}

func setJSON(t *testing.T, qs ...rawQ) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(map[string]any{"questions": qs})
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestGenerateForLevel(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: setJSON(t, validRaw("math-1", 1), validRaw("math-1", 2), validRaw("math-1", 3)),
	})
	gen := New(mock, DefaultConfig())

	items, err := gen.GenerateForLevel(context.Background(), LevelRequest{
		SubjectName: "Math",
		Level:       testLevels()[1],
		Count:       2,
		Prior:       []string{"What is 1 + 1?"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items (trimmed), got %d", len(items))
	}
	if items[0].LevelName != "1st Grade" {
		t.Errorf("LevelName = %q", items[0].LevelName)
	}

	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "level-questions" {
		t.Fatalf("unexpected schema: %+v", req.Schema)
	}
	msg := req.Messages[0].Content
	for _, want := range []string{"Subject: Math", "1st Grade (ID: math-1)", "Counting", "Number of questions: 2", "1. What is 1 + 1?"} {
		if !strings.Contains(msg, want) {
			t.Errorf("user message missing %q:\n%s", want, msg)
		}
	}
	if req.MaxTokens != 512+2*320 {
		t.Errorf("MaxTokens = %d", req.MaxTokens)
	}
}

func TestGenerateForLevel_TopicOverridesSubtopics(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: setJSON(t, validRaw("math-1", 1))})
	gen := New(mock, DefaultConfig())

	_, err := gen.GenerateForLevel(context.Background(), LevelRequest{
		SubjectName: "Math", Level: testLevels()[1], Topic: "Dinosaur counting", Count: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msg := mock.Calls[0].Messages[0].Content
	if !strings.Contains(msg, "Topic: Dinosaur counting") {
		t.Errorf("topic missing from prompt:\n%s", msg)
	}
	if strings.Contains(msg, "Cover these subtopics") {
		t.Errorf("subtopics should not be listed when a topic is given:\n%s", msg)
	}
}

func TestGenerateForLevel_Shortfall(t *testing.T) {
	bad := validRaw("math-1", 2)
	bad.CorrectAnswer = "E"
	mock := llm.NewMockProvider(llm.MockResponse{Content: setJSON(t, validRaw("math-1", 1), bad)})
	gen := New(mock, DefaultConfig())

	_, err := gen.GenerateForLevel(context.Background(), LevelRequest{
		SubjectName: "Math", Level: testLevels()[1], Count: 2,
	})
	var short *ShortfallError
	if !errors.As(err, &short) {
		t.Fatalf("expected ShortfallError, got %v", err)
	}
	if short.Got != 1 || short.Want != 2 || len(short.Rejected) != 1 {
		t.Errorf("unexpected shortfall: %+v", short)
	}
}

func TestGenerateForLevel_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	gen := New(mock, DefaultConfig())

	_, err := gen.GenerateForLevel(context.Background(), LevelRequest{Level: testLevels()[0], Count: 1})
	var unavailable *llm.ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected provider error in chain, got %v", err)
	}
}

func TestGenerateForLevel_MalformedJSON(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"questions": "nope"}`)})
	gen := New(mock, DefaultConfig())

	_, err := gen.GenerateForLevel(context.Background(), LevelRequest{Level: testLevels()[0], Count: 1})
	var invalid *llm.ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestGenerateForLevel_RejectsZeroCount(t *testing.T) {
	gen := New(llm.NewMockProvider(), DefaultConfig())
	if _, err := gen.GenerateForLevel(context.Background(), LevelRequest{Level: testLevels()[0]}); err == nil {
		t.Fatal("expected error for zero count")
	}
}

func TestGenerateAssessment_OrdersByLevel(t *testing.T) {
	// Response mixes levels and over-delivers for math-2.
	mock := llm.NewMockProvider(llm.MockResponse{Content: setJSON(t,
		validRaw("math-2", 1), validRaw("math-1", 1), validRaw("math-2", 2),
		validRaw("math-1", 2), validRaw("math-2", 3),
	)})
	gen := New(mock, DefaultConfig())

	items, err := gen.GenerateAssessment(context.Background(), AssessmentRequest{
		SubjectName: "Math", Levels: testLevels(), PerLevel: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantLevels := []string{"math-1", "math-1", "math-2", "math-2"}
	if len(items) != len(wantLevels) {
		t.Fatalf("got %d items, want %d", len(items), len(wantLevels))
	}
	for i, want := range wantLevels {
		if items[i].LevelID != want {
			t.Errorf("items[%d].LevelID = %q, want %q", i, items[i].LevelID, want)
		}
	}
	if items[0].Prompt != "math-1 question 1?" || items[3].Prompt != "math-2 question 2?" {
		t.Errorf("response order within a level not preserved: %q, %q", items[0].Prompt, items[3].Prompt)
	}

	msg := mock.Calls[0].Messages[0].Content
	if !strings.Contains(msg, "with 4 questions") {
		t.Errorf("prompt should request 4 questions:\n%s", msg)
	}
	if strings.Index(msg, "1st Grade") > strings.Index(msg, "2nd Grade") {
		t.Errorf("levels should be listed in ascending order:\n%s", msg)
	}
}

func TestGenerateAssessment_LevelShort(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: setJSON(t,
		validRaw("math-1", 1), validRaw("math-1", 2), validRaw("math-2", 1),
	)})
	gen := New(mock, DefaultConfig())

	_, err := gen.GenerateAssessment(context.Background(), AssessmentRequest{
		SubjectName: "Math", Levels: testLevels(), PerLevel: 2,
	})
	var short *ShortfallError
	if !errors.As(err, &short) || short.LevelID != "math-2" {
		t.Fatalf("expected shortfall for math-2, got %v", err)
	}
}

func TestGenerateAssessment_UnknownLevelDropped(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: setJSON(t,
		validRaw("math-1", 1), validRaw("math-9", 1), validRaw("math-2", 1),
	)})
	gen := New(mock, DefaultConfig())

	items, err := gen.GenerateAssessment(context.Background(), AssessmentRequest{
		SubjectName: "Math", Levels: testLevels(), PerLevel: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}

func TestGenerateAssessment_NoLevels(t *testing.T) {
	gen := New(llm.NewMockProvider(), DefaultConfig())
	if _, err := gen.GenerateAssessment(context.Background(), AssessmentRequest{PerLevel: 1}); err == nil {
		t.Fatal("expected error with no levels")
	}
}

func TestItemConversions(t *testing.T) {
	it := Item{
		Prompt: "2 + 2?", Options: []string{"3", "4", "5", "6"}, CorrectAnswer: "4",
		Explanation: "Two and two make four.", LevelID: "math-1", LevelName: "1st Grade",
	}

	q := it.Question("math")
	if q.SubjectID != "math" || q.LevelID != "math-1" || q.CorrectAnswer != "4" {
		t.Errorf("Question = %+v", q)
	}

	qq := it.QuizQuestion(3)
	if qq.ID != "q3" || qq.Prompt != "2 + 2?" {
		t.Errorf("QuizQuestion = %+v", qq)
	}

	back := FromQuestion(q, "1st Grade")
	if back.LevelName != "1st Grade" || back.Prompt != it.Prompt {
		t.Errorf("FromQuestion = %+v", back)
	}

	// Conversions copy the options slice.
	q.Options[0] = "changed"
	if it.Options[0] != "3" {
		t.Error("Question shares the options slice with the item")
	}
}

func TestFormatPrior(t *testing.T) {
	if got := formatPrior(nil, 5); got != "None" {
		t.Errorf("formatPrior(nil) = %q", got)
	}
	got := formatPrior([]string{"a", "b", "c"}, 2)
	if got != "1. b\n2. c" {
		t.Errorf("formatPrior = %q", got)
	}
}
