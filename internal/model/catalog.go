// Package model holds the records shared between the domain services and
// the store.
package model

import "sort"

// Subject is a top-level area of study, e.g. Mathematics.
type Subject struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Icon      string  `json:"icon,omitempty"`
	SortOrder int     `json:"sort_order"`
	Levels    []Level `json:"levels,omitempty"`
}

// Level is one rung of a subject's difficulty ladder. Ordinals are unique
// within a subject; a higher ordinal is harder.
type Level struct {
	ID          string   `json:"id"`
	SubjectID   string   `json:"subject_id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Ordinal     int      `json:"ordinal"`
	Topics      []string `json:"topics,omitempty"`
}

// SortedLevels returns a copy of levels ordered by ascending ordinal.
func SortedLevels(levels []Level) []Level {
	out := make([]Level, len(levels))
	copy(out, levels)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Ordinal < out[j].Ordinal })
	return out
}

// FindLevel returns the level with the given id.
func (s Subject) FindLevel(id string) (Level, bool) {
	for _, l := range s.Levels {
		if l.ID == id {
			return l, true
		}
	}
	return Level{}, false
}
