// Package game is the core engine: word normalization, guess scoring,
// and the per-session state machine. Everything here is pure; callers
// own persistence.
package game

import (
	"fmt"
	"strings"
)

// Mark classifies one guess position against the secret.
type Mark byte

const (
	MarkGreen  Mark = 'G' // right letter, right position
	MarkOrange Mark = 'O' // letter present elsewhere in the secret
	MarkGrey   Mark = 'X' // letter absent, or its occurrences spent
)

// Feedback holds one Mark per guess position, in position order.
type Feedback []Mark

// Score classifies guess against secret using the two-pass scheme.
//
// Pass 1 marks exact positional matches and pools every secret letter
// not consumed by one, counted per letter. Pass 2 resolves the rest:
// a letter with pool budget left is Orange and spends one unit,
// otherwise Grey. The pool is what keeps Green+Orange marks for any
// letter capped at its occurrences in the secret; a single naive scan
// over-counts repeated letters.
//
// Both inputs are case-normalized before comparison and are assumed
// validated to WordLength letters via Normalize.
func Score(secret, guess string) Feedback {
	secret = strings.ToUpper(secret)
	guess = strings.ToUpper(guess)

	fb := make(Feedback, WordLength)

	// Secret letters not matched in place, by count.
	var remaining [26]int

	for i := 0; i < WordLength; i++ {
		if guess[i] == secret[i] {
			fb[i] = MarkGreen
		} else {
			remaining[secret[i]-'A']++
		}
	}
	for i := 0; i < WordLength; i++ {
		if fb[i] == MarkGreen {
			continue
		}
		if j := guess[i] - 'A'; remaining[j] > 0 {
			fb[i] = MarkOrange
			remaining[j]--
		} else {
			fb[i] = MarkGrey
		}
	}
	return fb
}

// Encode renders the feedback in its stable wire form: one of G/O/X
// per position. This string is persisted with each guess and shown in
// history, so it must never change shape.
func (f Feedback) Encode() string { return string(f) }

// Decode parses the wire form produced by Encode.
func Decode(s string) (Feedback, error) {
	if len(s) != WordLength {
		return nil, fmt.Errorf("feedback must be %d characters, got %d", WordLength, len(s))
	}
	fb := make(Feedback, WordLength)
	for i := 0; i < len(s); i++ {
		switch m := Mark(s[i]); m {
		case MarkGreen, MarkOrange, MarkGrey:
			fb[i] = m
		default:
			return nil, fmt.Errorf("feedback contains invalid mark %q", s[i])
		}
	}
	return fb, nil
}
