// Package report computes the admin-facing aggregations over game
// history. Reads only; safe to run concurrently with game mutations.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"quintle/internal/dates"
	"quintle/internal/game"
	"quintle/internal/store"
)

// Aggregator answers the two admin report queries.
type Aggregator struct {
	store store.Store
}

// NewAggregator builds an Aggregator over st.
func NewAggregator(st store.Store) *Aggregator {
	return &Aggregator{store: st}
}

// Day summarizes one UTC calendar day: who started games, and how
// many guesses recorded that day belong to solved games.
type Day struct {
	Date           string   `json:"date"`
	UsersPlayed    int      `json:"users_played"`
	Usernames      []string `json:"usernames"`
	CorrectGuesses int      `json:"correct_guesses"`
}

// DayReport aggregates activity for the day containing day.
//
// CorrectGuesses is dated by the guess itself, not by its game: a
// guess recorded today against a solved game that started yesterday
// counts today, and every guess of a solved game counts on its own
// day whether or not it was the winning one.
func (a *Aggregator) DayReport(ctx context.Context, day time.Time) (*Day, error) {
	from, to := dates.Window(day)

	games, err := a.store.GamesStartedBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("day report games: %w", err)
	}
	owners := lo.Uniq(lo.Map(games, func(g game.Session, _ int) string { return g.OwnerID }))

	names, err := a.store.UsernamesByIDs(ctx, owners)
	if err != nil {
		return nil, fmt.Errorf("day report usernames: %w", err)
	}
	usernames := lo.Values(names)
	sort.Strings(usernames)

	correct, err := a.store.CountSolvedGuessesBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("day report guesses: %w", err)
	}

	return &Day{
		Date:           dates.Format(from),
		UsersPlayed:    len(owners),
		Usernames:      usernames,
		CorrectGuesses: correct,
	}, nil
}

// UserRow is one calendar day of one player's history.
type UserRow struct {
	Date    string `json:"date"`
	Started int    `json:"words_tried"`
	Solved  int    `json:"correct"`
}

// UserHistory is a player's full per-day history, newest day first.
type UserHistory struct {
	Username string    `json:"username"`
	Rows     []UserRow `json:"report"`
}

// UserReport groups the named player's games by UTC start date.
// Returns store.ErrUserNotFound when the username does not resolve.
func (a *Aggregator) UserReport(ctx context.Context, username string) (*UserHistory, error) {
	u, err := a.store.UserByName(ctx, username)
	if err != nil {
		return nil, err
	}
	games, err := a.store.GamesByOwner(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("user report games: %w", err)
	}

	byDay := make(map[string]*UserRow)
	for _, g := range games {
		d := dates.Format(g.StartedAt)
		row := byDay[d]
		if row == nil {
			row = &UserRow{Date: d}
			byDay[d] = row
		}
		row.Started++
		if g.Solved {
			row.Solved++
		}
	}

	rows := make([]UserRow, 0, len(byDay))
	for _, r := range byDay {
		rows = append(rows, *r)
	}
	// YYYY-MM-DD sorts chronologically as a string.
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date > rows[j].Date })

	return &UserHistory{Username: u.Username, Rows: rows}, nil
}
