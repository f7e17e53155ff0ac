// Package leaderboard keeps the local top-N list of finished games.
package leaderboard

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// Capacity is the default number of entries kept.
	Capacity = 10

	// DateLayout renders dates as day.month.year.
	DateLayout = "02.01.2006"

	// MaxNameLength caps player names, in runes.
	MaxNameLength = 24
)

// Entry is one leaderboard row.
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Date  string `json:"date"`
}

// NewEntry builds an entry dated at now using layout. An empty layout falls
// back to DateLayout.
func NewEntry(name string, score int, now time.Time, layout string) Entry {
	if layout == "" {
		layout = DateLayout
	}
	return Entry{Name: name, Score: score, Date: now.Format(layout)}
}

// CleanName trims surrounding whitespace and truncates the name to
// MaxNameLength runes. The result may be empty.
func CleanName(name string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) <= MaxNameLength {
		return name
	}
	runes := []rune(name)
	return strings.TrimSpace(string(runes[:MaxNameLength]))
}

// Insert returns a new list with e added, sorted by score descending and
// truncated to capacity. Equal scores keep their insertion order, so a new
// entry ties below the existing ones. The input slice is not modified.
func Insert(entries []Entry, e Entry, capacity int) []Entry {
	out := make([]Entry, 0, len(entries)+1)
	out = append(out, entries...)
	out = append(out, e)
	return Normalize(out, capacity)
}

// Normalize stable-sorts entries by score descending and truncates the list to
// capacity in place. A capacity below 1 uses Capacity.
func Normalize(entries []Entry, capacity int) []Entry {
	if capacity < 1 {
		capacity = Capacity
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > capacity {
		entries = entries[:capacity]
	}
	return entries
}

// Qualifies reports whether score would appear on the board after Insert.
func Qualifies(entries []Entry, score, capacity int) bool {
	if capacity < 1 {
		capacity = Capacity
	}
	if len(entries) < capacity {
		return true
	}
	// A tie with the last entry sorts below it and falls off.
	return score > entries[len(entries)-1].Score
}

// Rank returns the 1-based position score would take, or 0 if it would not
// make the board.
func Rank(entries []Entry, score, capacity int) int {
	if !Qualifies(entries, score, capacity) {
		return 0
	}
	for i, e := range entries {
		if score > e.Score {
			return i + 1
		}
	}
	return len(entries) + 1
}
