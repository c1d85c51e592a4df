package game

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	DefaultTopCount = 5
	MaxTopCount     = 100
	FinalTopCount   = 10
)

var lettersOnly = regexp.MustCompile(`^[a-zA-Z]+$`)

// Normalize trims and lowercases a word for comparison and lookup.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// singleWord returns the only whitespace separated token of text.
func singleWord(text string) (string, error) {
	tokens := strings.Fields(text)
	if len(tokens) != 1 {
		return "", ErrMultipleTokens
	}
	if !lettersOnly.MatchString(tokens[0]) {
		return "", ErrNotLetters
	}
	return Normalize(tokens[0]), nil
}

// ParseTopCount parses the optional count of the top command.
func ParseTopCount(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultTopCount, nil
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, ErrCountNotNumber
		}
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > MaxTopCount {
		return 0, ErrInvalidCount
	}
	return n, nil
}
