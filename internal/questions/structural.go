package questions

import (
	"fmt"
	"strings"
)

// StructuralValidator checks that required fields are present, within
// length limits, that the four options are distinct and that the correct
// answer is one of them.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(it *Item, levels map[string]string) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}

	if strings.TrimSpace(it.Prompt) == "" {
		return fail("question is empty")
	}
	if len(it.Prompt) > 1000 {
		return fail("question exceeds 1000 characters")
	}
	if strings.TrimSpace(it.Explanation) == "" {
		return fail("explanation is empty")
	}
	if len(it.Options) != OptionCount {
		return fail("expected %d options, got %d", OptionCount, len(it.Options))
	}

	seen := make(map[string]bool, len(it.Options))
	found := false
	for _, opt := range it.Options {
		key := strings.TrimSpace(opt)
		if key == "" {
			return fail("option is empty")
		}
		if seen[key] {
			return fail("duplicate option %q", opt)
		}
		seen[key] = true
		if opt == it.CorrectAnswer {
			found = true
		}
	}
	if !found {
		return fail("correct_answer %q is not one of the options", it.CorrectAnswer)
	}

	if _, ok := levels[it.LevelID]; !ok {
		return fail("unknown level_id %q", it.LevelID)
	}
	return nil
}
