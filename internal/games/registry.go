package games

import (
	"errors"
	"fmt"
	"sort"

	"github.com/MJE43/arena-go/internal/arena"
)

// ErrUnknownGame is returned by Make for an unregistered identifier.
var ErrUnknownGame = errors.New("unknown game")

// registry holds a factory per game id. Populated once at init, read-only
// afterwards; safe for concurrent Make calls.
var registry = make(map[string]func() arena.Game)

// Register adds a game factory to the registry.
func Register(id string, factory func() arena.Game) {
	registry[id] = factory
}

// Make produces a ready, uninitialized environment for the given game id.
func Make(id string) (arena.Env, error) {
	factory, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGame, id)
	}
	return arena.New(factory()), nil
}

// List returns all registered game ids, sorted.
func List() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// init registers all games.
func init() {
	Register("connect_four", func() arena.Game { return NewConnectFour() })
	Register("negotiation", func() arena.Game { return NewNegotiation() })
	Register("blind_auction", func() arena.Game { return NewBlindAuction() })
	Register("truth_and_deception", func() arena.Game { return NewTruthAndDeception() })
	Register("wordle", func() arena.Game { return NewWordle() })
	Register("quiz_duel", func() arena.Game { return NewQuizDuel() })
}
