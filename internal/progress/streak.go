// Package progress maintains daily quiz streaks and computes learner
// statistics.
package progress

import (
	"time"

	"github.com/abhisek/levelup/internal/model"
)

const dateLayout = "2006-01-02"

// RecordActivity updates u's streak for a quiz completed at t, judged in
// loc's calendar. A second completion on the same day changes nothing; a
// completion on the day after the last one extends the streak; anything
// else restarts it at 1. It reports whether u changed.
func RecordActivity(u *model.User, t time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	today := t.In(loc).Format(dateLayout)
	if u.LastQuizDate == today {
		return false
	}

	yesterday := t.In(loc).AddDate(0, 0, -1).Format(dateLayout)
	if u.LastQuizDate == yesterday {
		u.CurrentStreak++
	} else {
		u.CurrentStreak = 1
	}
	if u.CurrentStreak > u.LongestStreak {
		u.LongestStreak = u.CurrentStreak
	}
	u.LastQuizDate = today
	return true
}

// LoadLocation resolves an IANA timezone name, falling back to UTC for an
// empty or unknown name.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
