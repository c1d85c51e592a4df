package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iamwavecut/guessbot/internal/db"
)

func TestToPercent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, db.Percent(41), ToPercent(0.41))
	assert.Equal(t, db.Percent(41.23), ToPercent(0.412345))
	assert.Equal(t, db.Percent(-7.5), ToPercent(-0.075))
	assert.Equal(t, db.Percent(100), ToPercent(1))
}

func TestTopWordsKeepsLedgerOrderOnTies(t *testing.T) {
	t.Parallel()

	ledger := db.Ledger{
		{Word: "lamp", Percent: 41},
		{Word: "tower", Percent: 55},
		{Word: "beacon", Percent: 55},
		{Word: "ship", Percent: 12},
	}

	assert.Equal(t, []db.LedgerEntry{
		{Word: "tower", Percent: 55},
		{Word: "beacon", Percent: 55},
		{Word: "lamp", Percent: 41},
	}, TopWords(ledger, 3))
	assert.Len(t, TopWords(ledger, 10), 4)
	assert.Empty(t, TopWords(nil, 5))
	assert.Equal(t, "lamp", ledger[0].Word, "input is not reordered")
}

func TestScoreboard(t *testing.T) {
	t.Parallel()

	s := db.NewSession(1, "lighthouse")
	s.RecordGuess(3, "Carol", 50)
	s.RecordGuess(1, "Alice", 41)
	s.RecordGuess(1, "Alice", 100)
	s.RecordGuess(2, "Bob", 50)
	s.Scores[4] = nil

	rows := Scoreboard(s)
	assert.Equal(t, []PlayerScore{
		{PlayerID: 1, Name: "Alice", Count: 2, Average: 70.5},
		{PlayerID: 2, Name: "Bob", Count: 1, Average: 50},
		{PlayerID: 3, Name: "Carol", Count: 1, Average: 50},
	}, rows)
}

func TestFormatScoreboardAlignsAverages(t *testing.T) {
	t.Parallel()

	lines := FormatScoreboard([]PlayerScore{
		{Name: "Alice", Count: 12, Average: 70.5},
		{Name: "Bo", Count: 1, Average: 41.5},
		{Name: "Жора", Count: 3, Average: 12.49},
	})

	assert.Equal(t, []string{
		"Alice: 12 | 70%",
		"Bo:     1 | 42%",
		"Жора:   3 | 12%",
	}, lines)
	assert.Empty(t, FormatScoreboard(nil))
}

func TestGroupLocksAreReleased(t *testing.T) {
	t.Parallel()

	locks := newGroupLocks()
	unlock := locks.Lock(1)
	assert.Equal(t, 1, locks.size())
	unlock()
	assert.Zero(t, locks.size())
}
