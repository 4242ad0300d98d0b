// SQLite implementation of Store.
//
// Responsibilities:
//   - Opening the database file with safe defaults (WAL, busy
//     timeout, foreign keys) and applying the embedded schema.
//   - Transactions are opened with SQLite's immediate lock, so the
//     quota count-then-insert in CreateGame and the
//     load-then-append in MutateGame each run as one serialized
//     unit; concurrent writers queue on the busy timeout instead of
//     racing.
//   - Timestamps are stored as UTC RFC3339 at second precision, so
//     string comparison in SQL matches chronological order; guess
//     order within a second falls back to insertion order (rowid).

package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"quintle/internal/game"
	"quintle/internal/quota"
)

//go:embed schema.sql
var schema string

// SQLite is the durable Store used outside of tests.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if missing) the database at path and
// applies the schema.
func OpenSQLite(path string) (*SQLite, error) {
	// Ensure the directory exists for ./data/quintle.db, etc.
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on&_txlock=immediate")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) SeedWords(ctx context.Context, words []string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	added := 0
	for _, w := range words {
		res, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO words (word) VALUES (?)`, w)
		if err != nil {
			return 0, fmt.Errorf("seed %q: %w", w, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}
	return added, tx.Commit()
}

func (s *SQLite) PickRandomWord(ctx context.Context) (string, error) {
	var w string
	err := s.db.QueryRowContext(ctx, `SELECT word FROM words ORDER BY RANDOM() LIMIT 1`).Scan(&w)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoWords
	}
	if err != nil {
		return "", err
	}
	return w, nil
}

func (s *SQLite) CreateUser(ctx context.Context, u *User) error {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE lower(username)=lower(?)`, u.Username).Scan(&exists)
	if err == nil {
		return ErrUsernameTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO users (id, username, is_admin, created_at) VALUES (?,?,?,?)`,
		u.ID, u.Username, boolToInt(u.IsAdmin), fmtTime(u.CreatedAt))
	return err
}

func (s *SQLite) UserByName(ctx context.Context, username string) (*User, error) {
	return scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, username, is_admin, created_at FROM users WHERE lower(username)=lower(?)`, username))
}

func (s *SQLite) UserByID(ctx context.Context, id string) (*User, error) {
	return scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, username, is_admin, created_at FROM users WHERE id=?`, id))
}

func (s *SQLite) UsernamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username FROM users WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[id] = name
	}
	return out, rows.Err()
}

func (s *SQLite) CreateGame(ctx context.Context, g *game.Session, from, to time.Time, limit int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var started int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM games WHERE owner_id=? AND started_at>=? AND started_at<?`,
		g.OwnerID, fmtTime(from), fmtTime(to)).Scan(&started); err != nil {
		return err
	}
	if started >= limit {
		return quota.ErrDailyLimitReached
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO games (id, owner_id, secret, guess_count, solved, started_at) VALUES (?,?,?,?,?,?)`,
		g.ID, g.OwnerID, g.Secret, g.GuessCount, boolToInt(g.Solved), fmtTime(g.StartedAt)); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLite) CountGamesStarted(ctx context.Context, ownerID string, from, to time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM games WHERE owner_id=? AND started_at>=? AND started_at<?`,
		ownerID, fmtTime(from), fmtTime(to)).Scan(&n)
	return n, err
}

const selectGame = `SELECT id, owner_id, secret, guess_count, solved, started_at FROM games`

func (s *SQLite) GameByID(ctx context.Context, id string) (*game.Session, error) {
	return scanGame(s.db.QueryRowContext(ctx, selectGame+` WHERE id=?`, id))
}

func (s *SQLite) MutateGame(ctx context.Context, id string, fn func(*game.Session) (*game.Guess, error)) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	sess, err := scanGame(tx.QueryRowContext(ctx, selectGame+` WHERE id=?`, id))
	if err != nil {
		return err
	}
	guess, err := fn(sess)
	if err != nil {
		return err
	}
	if guess != nil {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO guesses (id, game_id, text, feedback, created_at) VALUES (?,?,?,?,?)`,
			guess.ID, guess.GameID, guess.Text, guess.Feedback, fmtTime(guess.CreatedAt)); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE games SET guess_count=?, solved=? WHERE id=?`,
		sess.GuessCount, boolToInt(sess.Solved), sess.ID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLite) GamesStartedBetween(ctx context.Context, from, to time.Time) ([]game.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		selectGame+` WHERE started_at>=? AND started_at<? ORDER BY started_at`, fmtTime(from), fmtTime(to))
	if err != nil {
		return nil, err
	}
	return collectGames(rows)
}

func (s *SQLite) GamesByOwner(ctx context.Context, ownerID string) ([]game.Session, error) {
	rows, err := s.db.QueryContext(ctx, selectGame+` WHERE owner_id=? ORDER BY started_at`, ownerID)
	if err != nil {
		return nil, err
	}
	return collectGames(rows)
}

func (s *SQLite) GuessesByGame(ctx context.Context, gameID string) ([]game.Guess, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, game_id, text, feedback, created_at FROM guesses
		 WHERE game_id=? ORDER BY created_at, rowid`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []game.Guess
	for rows.Next() {
		var g game.Guess
		var created string
		if err := rows.Scan(&g.ID, &g.GameID, &g.Text, &g.Feedback, &created); err != nil {
			return nil, err
		}
		g.CreatedAt = parseTime(created)
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *SQLite) CountSolvedGuessesBetween(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM guesses gu
		 JOIN games g ON gu.game_id = g.id
		 WHERE gu.created_at>=? AND gu.created_at<? AND g.solved=1`,
		fmtTime(from), fmtTime(to)).Scan(&n)
	return n, err
}

// ------------------------------ helpers ------------------------------

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	var u User
	var admin int
	var created string
	err := row.Scan(&u.ID, &u.Username, &admin, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	u.IsAdmin = admin != 0
	u.CreatedAt = parseTime(created)
	return &u, nil
}

func scanGame(row rowScanner) (*game.Session, error) {
	var g game.Session
	var solved int
	var started string
	err := row.Scan(&g.ID, &g.OwnerID, &g.Secret, &g.GuessCount, &solved, &started)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	g.Solved = solved != 0
	g.StartedAt = parseTime(started)
	return &g, nil
}

func collectGames(rows *sql.Rows) ([]game.Session, error) {
	defer rows.Close()
	var out []game.Session
	for rows.Next() {
		var g game.Session
		var solved int
		var started string
		if err := rows.Scan(&g.ID, &g.OwnerID, &g.Secret, &g.GuessCount, &solved, &started); err != nil {
			return nil, err
		}
		g.Solved = solved != 0
		g.StartedAt = parseTime(started)
		out = append(out, g)
	}
	return out, rows.Err()
}

// fmtTime renders a UTC second-precision RFC3339 timestamp. Constant
// width keeps lexical and chronological order identical in SQL.
func fmtTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
