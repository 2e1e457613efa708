package assessment

import "github.com/abhisek/levelup/internal/model"

// DefaultPassThreshold is the percentage a level must reach to count as
// passed.
const DefaultPassThreshold = 70

// Passed reports whether correct/total reaches threshold percent. Levels
// with no questions never pass.
func Passed(s model.LevelScore, threshold int) bool {
	if s.Total == 0 {
		return false
	}
	return s.Correct*100 >= threshold*s.Total
}

// SuggestLevel scans levels from the highest ordinal down. The first level
// whose score passes yields its successor, or itself when it is the top
// level. When none passes the lowest level is suggested. ok is false only
// when levels is empty.
func SuggestLevel(scores []model.LevelScore, levels []model.Level, threshold int) (level model.Level, ok bool) {
	if len(levels) == 0 {
		return model.Level{}, false
	}
	ordered := model.SortedLevels(levels)

	byLevel := make(map[string]model.LevelScore, len(scores))
	for _, s := range scores {
		byLevel[s.LevelID] = s
	}

	for i := len(ordered) - 1; i >= 0; i-- {
		s, found := byLevel[ordered[i].ID]
		if !found || !Passed(s, threshold) {
			continue
		}
		if i == len(ordered)-1 {
			return ordered[i], true
		}
		return ordered[i+1], true
	}
	return ordered[0], true
}
