package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quintle/internal/dates"
	"quintle/internal/game"
	"quintle/internal/quota"
	"quintle/internal/store"
)

func seedUser(t *testing.T, st store.Store, name string) *store.User {
	t.Helper()
	u := &store.User{ID: uuid.NewString(), Username: name, CreatedAt: time.Now().UTC()}
	require.NoError(t, st.CreateUser(context.Background(), u))
	return u
}

func seedGame(t *testing.T, st store.Store, ownerID string, startedAt time.Time) *game.Session {
	t.Helper()
	from, to := dates.Window(startedAt)
	g := &game.Session{ID: uuid.NewString(), OwnerID: ownerID, Secret: "APPLE", StartedAt: startedAt}
	require.NoError(t, st.CreateGame(context.Background(), g, from, to, quota.DailyGameLimit))
	return g
}

func seedGuess(t *testing.T, st store.Store, gameID, text string, created time.Time, solve bool) {
	t.Helper()
	err := st.MutateGame(context.Background(), gameID, func(s *game.Session) (*game.Guess, error) {
		fb := game.Score(s.Secret, text)
		s.GuessCount++
		if solve {
			s.Solved = true
		}
		return &game.Guess{
			ID: uuid.NewString(), GameID: s.ID, Text: text,
			Feedback: fb.Encode(), CreatedAt: created,
		}, nil
	})
	require.NoError(t, err)
}

func TestDayReport(t *testing.T) {
	st := store.NewMemory()
	agg := NewAggregator(st)

	alice := seedUser(t, st, "alice")
	bob := seedUser(t, st, "bob")
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	// Alice wins with a single guess on the day; Bob plays twice and
	// stays unsolved.
	g := seedGame(t, st, alice.ID, day.Add(9*time.Hour))
	seedGuess(t, st, g.ID, "APPLE", day.Add(9*time.Hour+time.Minute), true)
	b1 := seedGame(t, st, bob.ID, day.Add(10*time.Hour))
	seedGuess(t, st, b1.ID, "BERRY", day.Add(10*time.Hour+time.Minute), false)
	seedGame(t, st, bob.ID, day.Add(11*time.Hour))

	got, err := agg.DayReport(context.Background(), day.Add(15*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, "2024-06-01", got.Date)
	assert.Equal(t, 2, got.UsersPlayed)
	assert.Equal(t, []string{"alice", "bob"}, got.Usernames)
	assert.Equal(t, 1, got.CorrectGuesses)
}

// Guesses are counted on their own calendar day, not their game's
// start day, and every guess of a solved game counts, not just the
// winning one.
func TestDayReportGuessLevelDating(t *testing.T) {
	st := store.NewMemory()
	agg := NewAggregator(st)

	alice := seedUser(t, st, "alice")
	day0 := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	day1 := day0.AddDate(0, 0, 1)
	day2 := day0.AddDate(0, 0, 2)

	g := seedGame(t, st, alice.ID, day0)
	seedGuess(t, st, g.ID, "BERRY", day0.Add(time.Minute), false)
	seedGuess(t, st, g.ID, "CHAIR", day1, false)
	seedGuess(t, st, g.ID, "APPLE", day2, true)

	mid, err := agg.DayReport(context.Background(), day1)
	require.NoError(t, err)
	// No game started on day1, but its guess still counts there.
	assert.Equal(t, 0, mid.UsersPlayed)
	assert.Empty(t, mid.Usernames)
	assert.Equal(t, 1, mid.CorrectGuesses)

	first, err := agg.DayReport(context.Background(), day0)
	require.NoError(t, err)
	assert.Equal(t, 1, first.UsersPlayed)
	assert.Equal(t, 1, first.CorrectGuesses)
}

func TestDayReportEmptyDay(t *testing.T) {
	st := store.NewMemory()
	agg := NewAggregator(st)

	got, err := agg.DayReport(context.Background(), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0, got.UsersPlayed)
	assert.Empty(t, got.Usernames)
	assert.Equal(t, 0, got.CorrectGuesses)
}

func TestUserReport(t *testing.T) {
	st := store.NewMemory()
	agg := NewAggregator(st)

	alice := seedUser(t, st, "alice")
	seedUser(t, st, "bob")
	day1 := time.Date(2024, 5, 30, 9, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 2)

	// Two games on day1, one solved; one solved game on day2.
	g1 := seedGame(t, st, alice.ID, day1)
	seedGuess(t, st, g1.ID, "APPLE", day1.Add(time.Minute), true)
	seedGame(t, st, alice.ID, day1.Add(time.Hour))
	g3 := seedGame(t, st, alice.ID, day2)
	seedGuess(t, st, g3.ID, "APPLE", day2.Add(time.Minute), true)

	got, err := agg.UserReport(context.Background(), "ALICE")
	require.NoError(t, err)

	assert.Equal(t, "alice", got.Username)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, UserRow{Date: "2024-06-01", Started: 1, Solved: 1}, got.Rows[0])
	assert.Equal(t, UserRow{Date: "2024-05-30", Started: 2, Solved: 1}, got.Rows[1])
}

func TestUserReportUnknownUser(t *testing.T) {
	st := store.NewMemory()
	agg := NewAggregator(st)

	_, err := agg.UserReport(context.Background(), "ghost")
	assert.True(t, errors.Is(err, store.ErrUserNotFound))
}
