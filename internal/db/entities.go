package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type (
	// Percent is a similarity percentage rounded to two decimals.
	Percent float64

	LedgerEntry struct {
		Word    string  `json:"word"`
		Percent Percent `json:"percent"`
	}

	// Ledger keeps the best known percentage per guessed word in the order
	// words were first guessed.
	Ledger []LedgerEntry

	// Scores maps a player id to the percentages of their guesses in
	// submission order.
	Scores map[int64][]Percent

	// Names maps a player id to the display name seen at guess time.
	Names map[int64]string

	Session struct {
		GroupID         int64     `db:"group_id"`
		SecretWord      string    `db:"secret_word"`
		Ledger          Ledger    `db:"ledger"`
		Scores          Scores    `db:"scores"`
		Names           Names     `db:"names"`
		IllustrationRef string    `db:"illustration_ref"`
		OwnerID         int64     `db:"owner_id"`
		CreatedAt       time.Time `db:"created_at"`
		UpdatedAt       time.Time `db:"updated_at"`
	}

	// PickIntent marks a user as expected to send the secret word for a group.
	PickIntent struct {
		UserID    int64     `db:"user_id"`
		GroupID   int64     `db:"group_id"`
		CreatedAt time.Time `db:"created_at"`
	}
)

func NewSession(groupID int64, secretWord string) *Session {
	now := time.Now()
	return &Session{
		GroupID:    groupID,
		SecretWord: secretWord,
		Ledger:     Ledger{},
		Scores:     Scores{},
		Names:      Names{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// String renders the percentage the way it is shown to players, e.g. 41.0% or 41.23%.
func (p Percent) String() string {
	s := strconv.FormatFloat(float64(p), 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s + "%"
}

// IsPending reports whether the illustration is not generated yet.
func (s *Session) IsPending() bool {
	return s.IllustrationRef == ""
}

// RecordGuess appends p to the player's history and remembers their name.
func (s *Session) RecordGuess(playerID int64, name string, p Percent) int {
	if s.Scores == nil {
		s.Scores = Scores{}
	}
	if s.Names == nil {
		s.Names = Names{}
	}
	s.Scores[playerID] = append(s.Scores[playerID], p)
	if name != "" {
		s.Names[playerID] = name
	}
	return len(s.Scores[playerID])
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Ledger = append(Ledger{}, s.Ledger...)
	c.Scores = make(Scores, len(s.Scores))
	for id, history := range s.Scores {
		c.Scores[id] = append([]Percent(nil), history...)
	}
	c.Names = make(Names, len(s.Names))
	for id, name := range s.Names {
		c.Names[id] = name
	}
	return &c
}

// Set records the percentage for word, overwriting an earlier value in place.
func (l *Ledger) Set(word string, p Percent) {
	for i := range *l {
		if (*l)[i].Word == word {
			(*l)[i].Percent = p
			return
		}
	}
	*l = append(*l, LedgerEntry{Word: word, Percent: p})
}

func (l Ledger) Get(word string) (Percent, bool) {
	for _, e := range l {
		if e.Word == word {
			return e.Percent, true
		}
	}
	return 0, false
}

func (l Ledger) Value() (driver.Value, error) {
	if l == nil {
		l = Ledger{}
	}
	return jsonValue(l)
}

func (l *Ledger) Scan(v interface{}) error {
	return scanJSON(v, l)
}

func (s Scores) Value() (driver.Value, error) {
	if s == nil {
		s = Scores{}
	}
	return jsonValue(s)
}

func (s *Scores) Scan(v interface{}) error {
	return scanJSON(v, s)
}

func (n Names) Value() (driver.Value, error) {
	if n == nil {
		n = Names{}
	}
	return jsonValue(n)
}

func (n *Names) Scan(v interface{}) error {
	return scanJSON(v, n)
}

func jsonValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func scanJSON(v interface{}, target any) error {
	if v == nil {
		return nil
	}
	switch data := v.(type) {
	case string:
		return json.Unmarshal([]byte(data), target)
	case []byte:
		return json.Unmarshal(data, target)
	default:
		return fmt.Errorf("cannot scan type %T into %T", v, target)
	}
}
