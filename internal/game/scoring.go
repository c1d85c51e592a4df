package game

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/iamwavecut/guessbot/internal/db"
)

type PlayerScore struct {
	PlayerID int64
	Name     string
	Count    int
	Average  float64
}

// ToPercent converts a cosine similarity to a percentage with two decimals.
func ToPercent(similarity float64) db.Percent {
	return db.Percent(math.Round(similarity*10000) / 100)
}

// TopWords returns up to n ledger entries, best first. Equal percentages
// keep ledger order.
func TopWords(ledger db.Ledger, n int) []db.LedgerEntry {
	entries := append([]db.LedgerEntry(nil), ledger...)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Percent > entries[j].Percent
	})
	if n < len(entries) {
		entries = entries[:max(n, 0)]
	}
	return entries
}

// Scoreboard summarizes every player with at least one guess, best average
// first.
func Scoreboard(s *db.Session) []PlayerScore {
	rows := make([]PlayerScore, 0, len(s.Scores))
	for id, history := range s.Scores {
		if len(history) == 0 {
			continue
		}
		var sum float64
		for _, p := range history {
			sum += float64(p)
		}
		name := s.Names[id]
		if name == "" {
			name = strconv.FormatInt(id, 10)
		}
		rows = append(rows, PlayerScore{
			PlayerID: id,
			Name:     name,
			Count:    len(history),
			Average:  sum / float64(len(history)),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Average != rows[j].Average {
			return rows[i].Average > rows[j].Average
		}
		return rows[i].PlayerID < rows[j].PlayerID
	})
	return rows
}

// FormatScoreboard renders "name: count | avg%" lines padded so that the
// average column lines up.
func FormatScoreboard(rows []PlayerScore) []string {
	width := 0
	for _, row := range rows {
		width = max(width, prefixWidth(row))
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		pad := strings.Repeat(" ", width-prefixWidth(row))
		lines = append(lines, fmt.Sprintf("%s: %s%d | %d%%", row.Name, pad, row.Count, int(math.RoundToEven(row.Average))))
	}
	return lines
}

func prefixWidth(row PlayerScore) int {
	return utf8.RuneCountInString(row.Name) + len(strconv.Itoa(row.Count))
}
