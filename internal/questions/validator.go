package questions

import "fmt"

// Validator checks a generated item.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator, e.g. "structural".
	Name() string

	// Validate returns nil if the item passes. levels maps the level ids
	// the item may belong to onto their names.
	Validate(it *Item, levels map[string]string) *ValidationError
}

// ValidationError describes why an item failed validation.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// ShortfallError reports that fewer valid questions came back than were
// requested for a level.
type ShortfallError struct {
	LevelID   string
	Want, Got int
	Rejected  []*ValidationError
}

func (e *ShortfallError) Error() string {
	msg := fmt.Sprintf("level %s: got %d valid questions, want %d", e.LevelID, e.Got, e.Want)
	if len(e.Rejected) > 0 {
		msg += fmt.Sprintf(" (%d rejected, first: %v)", len(e.Rejected), e.Rejected[0])
	}
	return msg
}
