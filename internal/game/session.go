package game

import (
	"errors"
	"time"
)

// MaxGuesses is how many guesses a session allows before it is lost.
const MaxGuesses = 5

// ErrGameFinished rejects guesses against a won or lost session.
var ErrGameFinished = errors.New("game already finished")

// Status is the coarse lifecycle state of a session.
type Status string

const (
	StatusContinue Status = "continue" // still accepting guesses
	StatusWon      Status = "won"
	StatusLost     Status = "lost"
)

// Session is one game of one player against one secret word.
type Session struct {
	ID         string
	OwnerID    string
	Secret     string // uppercase, WordLength letters
	GuessCount int
	Solved     bool
	StartedAt  time.Time
}

// Guess is a single recorded attempt. Immutable once stored; ordered
// by creation time within its game.
type Guess struct {
	ID        string
	GameID    string
	Text      string // normalized uppercase
	Feedback  string // encoded G/O/X string
	CreatedAt time.Time
}

// Finished reports whether the session is terminal. Won and Lost are
// both terminal; no further guesses are accepted.
func (s *Session) Finished() bool {
	return s.Solved || s.GuessCount >= MaxGuesses
}

// Status maps the session fields onto the continue/won/lost lifecycle.
func (s *Session) Status() Status {
	switch {
	case s.Solved:
		return StatusWon
	case s.GuessCount >= MaxGuesses:
		return StatusLost
	default:
		return StatusContinue
	}
}

// Apply validates and scores one guess, advancing the session state.
//
// The text is normalized first (ErrInvalidGuess), terminal sessions
// refuse the guess (ErrGameFinished), then the guess is scored, the
// counter incremented, and Solved set on an exact match. Returns the
// feedback and the normalized text; the caller persists the mutated
// session and the guess record as one unit.
func (s *Session) Apply(text string) (Feedback, string, error) {
	norm, err := Normalize(text)
	if err != nil {
		return nil, "", err
	}
	if s.Finished() {
		return nil, "", ErrGameFinished
	}
	fb := Score(s.Secret, norm)
	s.GuessCount++
	if norm == s.Secret {
		s.Solved = true
	}
	return fb, norm, nil
}
