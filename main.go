// Command quintle is the operational entry point for the game
// engine: seeding the word bank, creating players, playing a game
// from the terminal, and running the admin reports. It stands in for
// the web layer, which talks to the same service with an
// already-authenticated user id.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"quintle/internal/config"
	"quintle/internal/service"
	"quintle/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	st, err := store.OpenSQLite(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DatabasePath).Msg("open database")
	}
	defer st.Close()

	svc := service.New(st, log.Logger)

	var runErr error
	switch os.Args[1] {
	case "seed":
		runErr = runSeed(cfg, st)
	case "adduser":
		runErr = runAddUser(st, os.Args[2:])
	case "play":
		runErr = runPlay(svc, st, os.Args[2:])
	case "report":
		runErr = runReport(svc, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if runErr != nil {
		log.Fatal().Err(runErr).Str("command", os.Args[1]).Msg("command failed")
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  quintle seed                      seed the word bank (WORDS_FILE or built-in list)
  quintle adduser <name> [-admin]   create a player
  quintle play <name>               start and play a game
  quintle report day <YYYY-MM-DD>   players and winning guesses for a day
  quintle report user <name>        per-day history for a player`)
}
