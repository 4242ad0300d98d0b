// In-memory implementation of Store.
//
// Characteristics:
//   - Everything behind one mutex, which trivially satisfies the
//     atomicity contract of CreateGame and MutateGame.
//   - Sessions are copied in and out, so callers never alias stored
//     state.
//   - State is lost when the process exits; used for tests and
//     ephemeral play.

package store

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"
	"sync"
	"time"

	"quintle/internal/game"
	"quintle/internal/quota"
)

// Memory is a map-backed Store.
type Memory struct {
	mu      sync.RWMutex
	words   []string
	wordSet map[string]struct{}
	users   map[string]*User         // by id
	games   map[string]*game.Session // by id
	guesses map[string][]game.Guess  // by game id, creation order
}

// NewMemory constructs an empty in-memory Store.
func NewMemory() *Memory {
	return &Memory{
		wordSet: make(map[string]struct{}),
		users:   make(map[string]*User),
		games:   make(map[string]*game.Session),
		guesses: make(map[string][]game.Guess),
	}
}

func (m *Memory) SeedWords(ctx context.Context, words []string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	added := 0
	for _, w := range words {
		if _, ok := m.wordSet[w]; ok {
			continue
		}
		m.wordSet[w] = struct{}{}
		m.words = append(m.words, w)
		added++
	}
	return added, nil
}

func (m *Memory) PickRandomWord(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.words) == 0 {
		return "", ErrNoWords
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(m.words))))
	if err != nil {
		return "", err
	}
	return m.words[n.Int64()], nil
}

func (m *Memory) CreateUser(ctx context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if strings.EqualFold(existing.Username, u.Username) {
			return ErrUsernameTaken
		}
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *Memory) UserByName(ctx context.Context, username string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Username, username) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *Memory) UserByID(ctx context.Context, id string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *Memory) UsernamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out[id] = u.Username
		}
	}
	return out, nil
}

func (m *Memory) CreateGame(ctx context.Context, g *game.Session, from, to time.Time, limit int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.countStarted(g.OwnerID, from, to) >= limit {
		return quota.ErrDailyLimitReached
	}
	cp := *g
	m.games[g.ID] = &cp
	return nil
}

func (m *Memory) CountGamesStarted(ctx context.Context, ownerID string, from, to time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.countStarted(ownerID, from, to), nil
}

// countStarted assumes the caller holds the lock.
func (m *Memory) countStarted(ownerID string, from, to time.Time) int {
	n := 0
	for _, g := range m.games {
		if g.OwnerID == ownerID && inWindow(g.StartedAt, from, to) {
			n++
		}
	}
	return n
}

func (m *Memory) GameByID(ctx context.Context, id string) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	cp := *g
	return &cp, nil
}

func (m *Memory) MutateGame(ctx context.Context, id string, fn func(*game.Session) (*game.Guess, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.games[id]
	if !ok {
		return ErrGameNotFound
	}
	// fn runs against a copy; nothing is written unless it succeeds.
	cp := *stored
	guess, err := fn(&cp)
	if err != nil {
		return err
	}
	m.games[id] = &cp
	if guess != nil {
		m.guesses[id] = append(m.guesses[id], *guess)
	}
	return nil
}

func (m *Memory) GamesStartedBetween(ctx context.Context, from, to time.Time) ([]game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []game.Session
	for _, g := range m.games {
		if inWindow(g.StartedAt, from, to) {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (m *Memory) GamesByOwner(ctx context.Context, ownerID string) ([]game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []game.Session
	for _, g := range m.games {
		if g.OwnerID == ownerID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (m *Memory) GuessesByGame(ctx context.Context, gameID string) ([]game.Guess, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]game.Guess, len(m.guesses[gameID]))
	copy(out, m.guesses[gameID])
	return out, nil
}

func (m *Memory) CountSolvedGuessesBetween(ctx context.Context, from, to time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for gameID, guesses := range m.guesses {
		g, ok := m.games[gameID]
		if !ok || !g.Solved {
			continue
		}
		for _, gu := range guesses {
			if inWindow(gu.CreatedAt, from, to) {
				n++
			}
		}
	}
	return n, nil
}

func inWindow(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}
