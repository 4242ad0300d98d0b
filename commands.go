package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"quintle/internal/config"
	"quintle/internal/dates"
	"quintle/internal/game"
	"quintle/internal/quota"
	"quintle/internal/service"
	"quintle/internal/store"
	"quintle/internal/words"
)

// runSeed fills the word bank and makes sure the bootstrap admin
// user exists.
func runSeed(cfg config.Config, st store.Store) error {
	ctx := context.Background()

	list := words.Default()
	if cfg.WordsFile != "" {
		var err error
		list, err = words.Load(cfg.WordsFile)
		if err != nil {
			return fmt.Errorf("load %s: %w", cfg.WordsFile, err)
		}
	}
	added, err := st.SeedWords(ctx, list)
	if err != nil {
		return err
	}
	log.Info().Int("added", added).Int("total", len(list)).Msg("word bank seeded")

	if _, err := st.UserByName(ctx, "admin"); errors.Is(err, store.ErrUserNotFound) {
		admin := &store.User{ID: uuid.NewString(), Username: "admin", IsAdmin: true, CreatedAt: time.Now().UTC()}
		if err := st.CreateUser(ctx, admin); err != nil {
			return err
		}
		log.Info().Msg("admin user created")
	} else if err != nil {
		return err
	}
	return nil
}

func runAddUser(st store.Store, args []string) error {
	if len(args) < 1 {
		return errors.New("adduser: username required")
	}
	u := &store.User{
		ID:        uuid.NewString(),
		Username:  args[0],
		IsAdmin:   len(args) > 1 && args[1] == "-admin",
		CreatedAt: time.Now().UTC(),
	}
	if err := st.CreateUser(context.Background(), u); err != nil {
		return err
	}
	log.Info().Str("user", u.Username).Bool("admin", u.IsAdmin).Msg("user created")
	return nil
}

// runPlay drives one interactive game: the same call sequence the web
// layer makes, identity resolved once up front.
func runPlay(svc *service.Service, st store.Store, args []string) error {
	if len(args) < 1 {
		return errors.New("play: username required")
	}
	ctx := context.Background()

	u, err := st.UserByName(ctx, args[0])
	if err != nil {
		return err
	}

	sess, err := svc.StartGame(ctx, u.ID)
	if errors.Is(err, quota.ErrDailyLimitReached) {
		fmt.Printf("Maximum of %d games per day reached. Come back tomorrow.\n", quota.DailyGameLimit)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("Game started: %d guesses to find a %d-letter word.\n", game.MaxGuesses, game.WordLength)

	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !sc.Scan() {
			return sc.Err()
		}
		res, err := svc.SubmitGuess(ctx, u.ID, sess.ID, sc.Text())
		if errors.Is(err, game.ErrInvalidGuess) {
			fmt.Println("Guess must be a 5-letter word.")
			continue
		}
		if err != nil {
			return err
		}
		fmt.Println(renderFeedback(res.Feedback))
		switch res.Status {
		case game.StatusWon:
			fmt.Printf("Solved in %d!\n", res.GuessesUsed)
			return nil
		case game.StatusLost:
			fmt.Println("Out of guesses. Better luck tomorrow.")
			return nil
		}
	}
}

// renderFeedback prints marks as the same G/O/X line the encoding
// persists, spaced for readability.
func renderFeedback(fb game.Feedback) string {
	out := make([]byte, 0, 2*len(fb))
	for i, m := range fb {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, byte(m))
	}
	return string(out)
}

func runReport(svc *service.Service, args []string) error {
	if len(args) < 2 {
		return errors.New("report: expected 'day <YYYY-MM-DD>' or 'user <name>'")
	}
	ctx := context.Background()

	var out any
	switch args[0] {
	case "day":
		d, err := dates.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid date %q, want YYYY-MM-DD", args[1])
		}
		if out, err = svc.DayReport(ctx, d); err != nil {
			return err
		}
	case "user":
		var err error
		if out, err = svc.UserReport(ctx, args[1]); err != nil {
			return err
		}
	default:
		return fmt.Errorf("report: unknown subject %q", args[0])
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
