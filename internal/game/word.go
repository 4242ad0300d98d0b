package game

import (
	"errors"
	"strings"
)

// WordLength is the fixed length of every secret word and guess.
const WordLength = 5

// ErrInvalidGuess rejects input that is not exactly five letters.
var ErrInvalidGuess = errors.New("guess must be exactly 5 letters")

// Normalize trims and uppercases s and validates it as a playable
// word: exactly WordLength ASCII letters, case-insensitive on input.
func Normalize(s string) (string, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != WordLength || !isAlpha(s) {
		return "", ErrInvalidGuess
	}
	return s, nil
}

// isAlpha reports whether s consists only of uppercase A–Z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
