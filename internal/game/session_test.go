package game

import (
	"errors"
	"testing"
	"time"
)

func newSession(secret string) *Session {
	return &Session{ID: "g1", OwnerID: "u1", Secret: secret, StartedAt: time.Now()}
}

func TestSessionWin(t *testing.T) {
	s := newSession("APPLE")
	fb, norm, err := s.Apply("apple")
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if norm != "APPLE" {
		t.Errorf("normalized text = %q, want APPLE", norm)
	}
	if fb.Encode() != "GGGGG" {
		t.Errorf("feedback = %q, want GGGGG", fb.Encode())
	}
	if !s.Solved || s.Status() != StatusWon || !s.Finished() {
		t.Errorf("after winning guess: solved=%v status=%v", s.Solved, s.Status())
	}
	if _, _, err := s.Apply("BERRY"); !errors.Is(err, ErrGameFinished) {
		t.Errorf("guess after win: err = %v, want ErrGameFinished", err)
	}
}

func TestSessionWinMidGame(t *testing.T) {
	s := newSession("APPLE")
	for _, g := range []string{"BERRY", "CHAIR"} {
		if _, _, err := s.Apply(g); err != nil {
			t.Fatalf("Apply(%q) error: %v", g, err)
		}
	}
	if _, _, err := s.Apply("APPLE"); err != nil {
		t.Fatalf("winning Apply() error: %v", err)
	}
	if s.Status() != StatusWon || s.GuessCount != 3 {
		t.Errorf("status=%v guesses=%d, want won after 3", s.Status(), s.GuessCount)
	}
}

func TestSessionLoss(t *testing.T) {
	s := newSession("APPLE")
	for i := 0; i < MaxGuesses; i++ {
		if s.Status() != StatusContinue {
			t.Fatalf("guess %d: status = %v, want continue", i+1, s.Status())
		}
		if _, _, err := s.Apply("BERRY"); err != nil {
			t.Fatalf("guess %d: %v", i+1, err)
		}
	}
	if s.Status() != StatusLost || !s.Finished() {
		t.Errorf("after %d misses: status = %v, want lost", MaxGuesses, s.Status())
	}
	if _, _, err := s.Apply("APPLE"); !errors.Is(err, ErrGameFinished) {
		t.Errorf("6th guess: err = %v, want ErrGameFinished", err)
	}
	if s.GuessCount != MaxGuesses {
		t.Errorf("guess count = %d, want %d", s.GuessCount, MaxGuesses)
	}
}

func TestSessionRejectsInvalidGuess(t *testing.T) {
	s := newSession("APPLE")
	for _, g := range []string{"", "cat", "apples", "app1e", "ap ple"} {
		if _, _, err := s.Apply(g); !errors.Is(err, ErrInvalidGuess) {
			t.Errorf("Apply(%q): err = %v, want ErrInvalidGuess", g, err)
		}
	}
	if s.GuessCount != 0 || s.Solved {
		t.Errorf("invalid guesses mutated state: count=%d solved=%v", s.GuessCount, s.Solved)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{" apple ", "APPLE", false},
		{"BeRrY", "BERRY", false},
		{"CHAIR", "CHAIR", false},
		{"", "", true},
		{"appl", "", true},
		{"apples", "", true},
		{"app1e", "", true},
		{"app e", "", true},
		{"crâne", "", true}, // multi-byte rune breaks the 5-letter rule
	}
	for _, tt := range tests {
		got, err := Normalize(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidGuess) {
				t.Errorf("Normalize(%q): err = %v, want ErrInvalidGuess", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("Normalize(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}
