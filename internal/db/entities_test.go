package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentString(t *testing.T) {
	t.Parallel()

	cases := map[Percent]string{
		41:     "41.0%",
		41.23:  "41.23%",
		41.5:   "41.5%",
		100:    "100.0%",
		0:      "0.0%",
		-12.07: "-12.07%",
	}
	for p, want := range cases {
		assert.Equal(t, want, p.String())
	}
}

func TestLedgerSetOverwritesInPlace(t *testing.T) {
	t.Parallel()

	var l Ledger
	l.Set("lamp", 41)
	l.Set("tower", 55.5)
	l.Set("lamp", 12.3)

	require.Len(t, l, 2)
	assert.Equal(t, LedgerEntry{Word: "lamp", Percent: 12.3}, l[0])
	assert.Equal(t, LedgerEntry{Word: "tower", Percent: 55.5}, l[1])

	p, ok := l.Get("tower")
	assert.True(t, ok)
	assert.Equal(t, Percent(55.5), p)
	_, ok = l.Get("ship")
	assert.False(t, ok)
}

func TestSessionCloneIsDeep(t *testing.T) {
	t.Parallel()

	s := NewSession(-100, "lighthouse")
	s.Ledger.Set("lamp", 41)
	s.RecordGuess(7, "Alice", 41)

	c := s.Clone()
	c.Ledger.Set("lamp", 99)
	c.RecordGuess(7, "Alice", 99)
	c.Names[8] = "Bob"

	p, _ := s.Ledger.Get("lamp")
	assert.Equal(t, Percent(41), p)
	assert.Len(t, s.Scores[7], 1)
	assert.NotContains(t, s.Names, int64(8))
	assert.True(t, s.IsPending())
}

func TestJSONColumnsRoundTrip(t *testing.T) {
	t.Parallel()

	scores := Scores{7: {41, 100}}
	v, err := scores.Value()
	require.NoError(t, err)

	var got Scores
	require.NoError(t, got.Scan(v))
	assert.Equal(t, scores, got)

	var empty Ledger
	v, err = empty.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	assert.Error(t, got.Scan(42))
}
