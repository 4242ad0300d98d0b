// Package service wires the word bank, quota guard, session engine
// and report aggregator together over a Store. This is the surface
// the (external) web layer calls with an already-authenticated user
// id; the engine checks ownership but never authenticates.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"quintle/internal/dates"
	"quintle/internal/game"
	"quintle/internal/quota"
	"quintle/internal/report"
	"quintle/internal/store"
)

// Service orchestrates the start-game / submit-guess / report use
// cases.
type Service struct {
	store   store.Store
	guard   quota.Guard
	reports *report.Aggregator
	log     zerolog.Logger

	now func() time.Time // injectable clock
}

// New builds a Service over st with the standard daily quota.
func New(st store.Store, log zerolog.Logger) *Service {
	return &Service{
		store:   st,
		guard:   quota.NewGuard(),
		reports: report.NewAggregator(st),
		log:     log,
		now:     time.Now,
	}
}

// StartGame begins a new session for userID against a random secret.
//
// The quota is checked twice: a cheap read first, so an over-quota
// player never costs a word draw, then again atomically inside
// Store.CreateGame, so concurrent starts cannot race past the limit.
// Returns quota.ErrDailyLimitReached (expected outcome) or
// store.ErrNoWords (server fault).
func (s *Service) StartGame(ctx context.Context, userID string) (*game.Session, error) {
	now := s.now().UTC()
	from, to := dates.Window(now)

	started, err := s.store.CountGamesStarted(ctx, userID, from, to)
	if err != nil {
		return nil, s.fault("count games", err)
	}
	if !s.guard.Allow(started) {
		return nil, quota.ErrDailyLimitReached
	}

	secret, err := s.store.PickRandomWord(ctx)
	if errors.Is(err, store.ErrNoWords) {
		s.log.Error().Msg("word bank is empty; seed words before starting games")
		return nil, err
	}
	if err != nil {
		return nil, s.fault("pick word", err)
	}

	sess := &game.Session{
		ID:        uuid.NewString(),
		OwnerID:   userID,
		Secret:    secret,
		StartedAt: now,
	}
	if err := s.store.CreateGame(ctx, sess, from, to, s.guard.Limit); err != nil {
		if errors.Is(err, quota.ErrDailyLimitReached) {
			return nil, err
		}
		return nil, s.fault("create game", err)
	}
	s.log.Info().Str("game", sess.ID).Str("user", userID).Msg("game started")
	return sess, nil
}

// GuessResult is what one submitted guess comes back with.
type GuessResult struct {
	Feedback    game.Feedback
	Encoded     string
	Status      game.Status
	GuessesUsed int
}

// SubmitGuess applies one guess to the caller's game.
//
// Expected rejections: game.ErrInvalidGuess, game.ErrGameFinished,
// store.ErrGameNotFound. A game owned by somebody else reports
// store.ErrGameNotFound, indistinguishable from a missing game.
func (s *Service) SubmitGuess(ctx context.Context, userID, gameID, text string) (*GuessResult, error) {
	norm, err := game.Normalize(text)
	if err != nil {
		return nil, err
	}

	var res *GuessResult
	err = s.store.MutateGame(ctx, gameID, func(sess *game.Session) (*game.Guess, error) {
		if sess.OwnerID != userID {
			return nil, store.ErrGameNotFound
		}
		fb, _, err := sess.Apply(norm)
		if err != nil {
			return nil, err
		}
		res = &GuessResult{
			Feedback:    fb,
			Encoded:     fb.Encode(),
			Status:      sess.Status(),
			GuessesUsed: sess.GuessCount,
		}
		return &game.Guess{
			ID:        uuid.NewString(),
			GameID:    sess.ID,
			Text:      norm,
			Feedback:  fb.Encode(),
			CreatedAt: s.now().UTC(),
		}, nil
	})
	switch {
	case err == nil:
		return res, nil
	case errors.Is(err, store.ErrGameNotFound),
		errors.Is(err, game.ErrGameFinished),
		errors.Is(err, game.ErrInvalidGuess):
		return nil, err
	default:
		return nil, s.fault("submit guess", err)
	}
}

// DayReport serves the admin day query. Admin verification happens in
// the caller; the engine only aggregates.
func (s *Service) DayReport(ctx context.Context, day time.Time) (*report.Day, error) {
	r, err := s.reports.DayReport(ctx, day)
	if err != nil {
		return nil, s.fault("day report", err)
	}
	return r, nil
}

// UserReport serves the admin per-user query. Returns
// store.ErrUserNotFound for an unknown username.
func (s *Service) UserReport(ctx context.Context, username string) (*report.UserHistory, error) {
	r, err := s.reports.UserReport(ctx, username)
	switch {
	case err == nil:
		return r, nil
	case errors.Is(err, store.ErrUserNotFound):
		return nil, err
	default:
		return nil, s.fault("user report", err)
	}
}

// fault logs an unexpected storage failure and folds it into the
// generic storage-unavailable error, so callers get a clean branch
// without internals leaking through.
func (s *Service) fault(op string, err error) error {
	s.log.Error().Err(err).Str("op", op).Msg("storage failure")
	return fmt.Errorf("%s: %w", op, store.ErrUnavailable)
}
