// Command replayd serves the read-only replay API over a recorded episode
// database.
package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/MJE43/arena-go/internal/api"
	"github.com/MJE43/arena-go/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var (
		dbPath = flag.String("db", "arena.db", "episode database to serve")
		addr   = flag.String("addr", getEnv("REPLAYD_ADDR", ":8090"), "listen address")
	)
	flag.Parse()

	db, err := store.NewSQLiteDB(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	srv := api.NewServer(db, log.Logger)
	log.Info().Str("addr", *addr).Str("db", *dbPath).Msg("starting replayd")
	if err := http.ListenAndServe(*addr, srv.Routes()); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
