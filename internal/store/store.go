// Package store is the persistence boundary the game engine runs
// against. Implementations may be backed by memory (memory.go) or
// SQLite (sqlite.go).
package store

import (
	"context"
	"errors"
	"time"

	"quintle/internal/game"
)

// Store is consumed by the service, the report aggregator, and the
// operational CLI.
//
// Two operations carry atomicity requirements:
//   - CreateGame counts the owner's games started inside [from, to)
//     and inserts the new session as one unit, so concurrent starts
//     cannot jointly slip past the daily limit.
//   - MutateGame loads the session, runs fn, and persists the updated
//     session together with the guess fn returns, serialized per
//     game, so concurrent submissions cannot push a session past its
//     terminal state.
type Store interface {
	// SeedWords adds words to the bank, ignoring duplicates, and
	// reports how many were new.
	SeedWords(ctx context.Context, words []string) (int, error)
	// PickRandomWord draws a uniform random word from the bank.
	// Successive picks are independent. Returns ErrNoWords when the
	// bank has never been seeded.
	PickRandomWord(ctx context.Context) (string, error)

	CreateUser(ctx context.Context, u *User) error
	// UserByName resolves a username case-insensitively. Returns
	// ErrUserNotFound when it does not resolve.
	UserByName(ctx context.Context, username string) (*User, error)
	UserByID(ctx context.Context, id string) (*User, error)
	// UsernamesByIDs resolves ids to usernames; unknown ids are
	// simply absent from the result.
	UsernamesByIDs(ctx context.Context, ids []string) (map[string]string, error)

	// CreateGame atomically re-checks the owner's count of games
	// started in [from, to) against limit and inserts g. Returns
	// quota.ErrDailyLimitReached when the cap is already met.
	CreateGame(ctx context.Context, g *game.Session, from, to time.Time, limit int) error
	CountGamesStarted(ctx context.Context, ownerID string, from, to time.Time) (int, error)
	GameByID(ctx context.Context, id string) (*game.Session, error)
	// MutateGame runs fn against the stored session inside a single
	// write transaction. A non-nil guess returned by fn is appended
	// and the mutated session saved before the transaction commits;
	// an error from fn aborts with no changes.
	MutateGame(ctx context.Context, id string, fn func(*game.Session) (*game.Guess, error)) error

	GamesStartedBetween(ctx context.Context, from, to time.Time) ([]game.Session, error)
	GamesByOwner(ctx context.Context, ownerID string) ([]game.Session, error)

	// GuessesByGame returns a game's guesses in creation order.
	GuessesByGame(ctx context.Context, gameID string) ([]game.Guess, error)
	// CountSolvedGuessesBetween counts guesses created in [from, to)
	// whose parent game is solved. The guess's own creation date is
	// what counts, not the game's start date and not whether this
	// particular guess was the winning one.
	CountSolvedGuessesBetween(ctx context.Context, from, to time.Time) (int, error)
}

// User is a stored player identity. Authentication happens outside
// the engine; IsAdmin is recorded here but only ever checked by the
// caller.
type User struct {
	ID        string
	Username  string
	IsAdmin   bool
	CreatedAt time.Time
}

var (
	// ErrNoWords means the word bank was never seeded. A server
	// precondition failure, not a player error.
	ErrNoWords = errors.New("word bank is empty")

	// ErrGameNotFound covers both missing games and games owned by
	// somebody else, so callers cannot probe for other players'
	// games.
	ErrGameNotFound = errors.New("game not found")

	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username taken")

	// ErrUnavailable tags storage-level failures (connection loss,
	// timeout) as server faults distinct from domain rejections.
	ErrUnavailable = errors.New("storage unavailable")
)
