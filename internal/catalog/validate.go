package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/levelup/internal/model"
)

// Validate performs the structural checks on a catalog and returns a
// combined error describing every problem found.
func Validate(subjects []model.Subject) error {
	var errs []string

	subjectIDs := make(map[string]bool, len(subjects))
	levelIDs := make(map[string]bool)

	for _, s := range subjects {
		if s.ID == "" {
			errs = append(errs, fmt.Sprintf("subject %q has no ID", s.Name))
		}
		if subjectIDs[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate subject ID: %q", s.ID))
		}
		subjectIDs[s.ID] = true

		if len(s.Levels) == 0 {
			errs = append(errs, fmt.Sprintf("subject %q has no levels", s.ID))
			continue
		}

		ordinals := make([]int, 0, len(s.Levels))
		for _, l := range s.Levels {
			if levelIDs[l.ID] {
				errs = append(errs, fmt.Sprintf("duplicate level ID: %q", l.ID))
			}
			levelIDs[l.ID] = true
			if l.SubjectID != s.ID {
				errs = append(errs, fmt.Sprintf("level %q belongs to %q but is listed under %q", l.ID, l.SubjectID, s.ID))
			}
			ordinals = append(ordinals, l.Ordinal)
		}

		// Ordinals must read 1, 2, ..., n.
		sort.Ints(ordinals)
		for i, o := range ordinals {
			if o != i+1 {
				errs = append(errs, fmt.Sprintf("subject %q ordinals are not contiguous from 1: %v", s.ID, ordinals))
				break
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
