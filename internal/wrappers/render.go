package wrappers

import (
	"fmt"
	"io"

	"github.com/MJE43/arena-go/internal/arena"
)

// Render writes a human-readable trace to out after every Step: the submitted
// action, the step outcome and the inner env's board snapshot when one is
// available. Strictly additive; the values returned to the caller are never
// altered.
type Render struct {
	inner arena.Env
	out   io.Writer

	lastPlayer int
}

var _ arena.Env = (*Render)(nil)

// NewRender wraps env with a post-step trace sink.
func NewRender(env arena.Env, out io.Writer) *Render {
	return &Render{inner: env, out: out, lastPlayer: -1}
}

func (w *Render) Reset(numPlayers int, seed int64) error {
	w.lastPlayer = -1
	return w.inner.Reset(numPlayers, seed)
}

func (w *Render) GetObservation() (int, arena.Observation, error) {
	player, obs, err := w.inner.GetObservation()
	if err == nil {
		w.lastPlayer = player
	}
	return player, obs, err
}

func (w *Render) Step(action string) (bool, arena.Info, error) {
	done, info, err := w.inner.Step(action)
	if err != nil {
		return done, info, err
	}
	fmt.Fprintf(w.out, "--- player %d: %s\n", w.lastPlayer, action)
	if snapshot, ok := w.inner.Render(); ok && snapshot != "" {
		fmt.Fprintln(w.out, snapshot)
	}
	if done {
		fmt.Fprintf(w.out, "=== episode over: %v\n", info["reason"])
	}
	return done, info, err
}

func (w *Render) Close() (arena.Rewards, error) { return w.inner.Close() }

func (w *Render) ForceClose() (arena.Rewards, error) { return w.inner.ForceClose() }

func (w *Render) Render() (string, bool) { return w.inner.Render() }
