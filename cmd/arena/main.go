// Command arena plays one full episode of a registered game from the
// terminal. Seats are assigned to agents in order, e.g.
//
//	arena -game connect_four -players 2 -agents human,script:bot.js
//
// With -db the episode's observation/action/reward stream is recorded for
// later inspection with replayd.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/MJE43/arena-go/internal/agents"
	"github.com/MJE43/arena-go/internal/arena"
	"github.com/MJE43/arena-go/internal/games"
	"github.com/MJE43/arena-go/internal/store"
	"github.com/MJE43/arena-go/internal/wrappers"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var (
		gameID    = flag.String("game", "", "game id to play (see -list)")
		players   = flag.Int("players", 2, "number of players")
		agentSpec = flag.String("agents", "human", "comma-separated agent per seat: human, script:<file>, openrouter:<model>")
		seed      = flag.Int64("seed", 0, "episode seed (<= 0 for random)")
		dbPath    = flag.String("db", "", "record the episode to this SQLite database")
		quiet     = flag.Bool("quiet", false, "suppress the per-step board trace")
		list      = flag.Bool("list", false, "list registered games and exit")
	)
	flag.Parse()

	if *list {
		for _, id := range games.List() {
			fmt.Println(id)
		}
		return
	}
	if *gameID == "" {
		log.Fatal().Msg("missing -game; use -list to see registered games")
	}

	env, err := games.Make(*gameID)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create environment")
	}

	roster, err := buildAgents(*agentSpec, *players)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build agents")
	}

	// Wrapper chain, inside out: text observations, optional board trace,
	// optional persistence outermost.
	env = wrappers.NewLLMObservation(env)
	if !*quiet {
		env = wrappers.NewRender(env, os.Stdout)
	}
	if *dbPath != "" {
		db, err := store.NewSQLiteDB(*dbPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open database")
		}
		defer db.Close()
		if err := db.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
		env = wrappers.NewRecorder(env, db, *gameID, log.Logger)
	}

	rewards, err := play(env, roster, *players, *seed)
	if err != nil {
		log.Fatal().Err(err).Msg("episode failed")
	}
	for player := 0; player < *players; player++ {
		fmt.Printf("player %d: %+.0f\n", player, rewards[player])
	}
}

// play runs the standard interaction loop to completion.
func play(env arena.Env, roster []agents.Agent, players int, seed int64) (arena.Rewards, error) {
	if err := env.Reset(players, seed); err != nil {
		return nil, err
	}
	ctx := context.Background()
	done := false
	for !done {
		player, obs, err := env.GetObservation()
		if err != nil {
			return nil, err
		}
		action, err := roster[player].Act(ctx, obs.Text)
		if err != nil {
			// Agent failure ends the episode as a forced truncation rather
			// than leaving it dangling.
			log.Warn().Err(err).Int("player", player).Msg("agent failed, closing episode")
			return env.ForceClose()
		}
		done, _, err = env.Step(action)
		if err != nil {
			return nil, err
		}
	}
	return env.Close()
}

// buildAgents assigns one agent per seat; a single spec is shared by all.
func buildAgents(spec string, players int) ([]agents.Agent, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 1 && len(parts) != players {
		return nil, fmt.Errorf("expected 1 or %d agent specs, got %d", players, len(parts))
	}
	roster := make([]agents.Agent, players)
	for seat := 0; seat < players; seat++ {
		part := parts[0]
		if len(parts) > 1 {
			part = parts[seat]
		}
		agent, err := buildAgent(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		roster[seat] = agent
	}
	return roster, nil
}

func buildAgent(spec string) (agents.Agent, error) {
	switch {
	case spec == "human":
		return agents.NewHuman(os.Stdin, os.Stdout), nil
	case strings.HasPrefix(spec, "script:"):
		src, err := os.ReadFile(strings.TrimPrefix(spec, "script:"))
		if err != nil {
			return nil, fmt.Errorf("failed to read script: %w", err)
		}
		return agents.NewScript(string(src))
	case strings.HasPrefix(spec, "openrouter:"):
		apiKey, err := agents.NewKeyring("").APIKey()
		if err != nil {
			return nil, err
		}
		return agents.NewOpenRouter(strings.TrimPrefix(spec, "openrouter:"), apiKey), nil
	default:
		return nil, fmt.Errorf("unknown agent spec %q", spec)
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
