package wrappers

import (
	"fmt"
	"strings"

	"github.com/MJE43/arena-go/internal/arena"
)

// LLMObservation flattens structured observation entries into a single text
// block suitable for a language-oriented agent. It keeps each player's full
// message history so that every observation carries the complete transcript,
// in chronological order with sender attribution.
//
// The wrapper is idempotent: an observation that is already formatted passes
// through unchanged, so stacking it twice is a no-op.
type LLMObservation struct {
	inner   arena.Env
	history map[int][]arena.Message
	names   map[int]string
}

var _ arena.Env = (*LLMObservation)(nil)

// NewLLMObservation wraps env with full-history text formatting.
func NewLLMObservation(env arena.Env) *LLMObservation {
	return &LLMObservation{
		inner:   env,
		history: make(map[int][]arena.Message),
	}
}

// WithNames sets human-readable names for player ids in the transcript.
func (w *LLMObservation) WithNames(names map[int]string) *LLMObservation {
	w.names = names
	return w
}

func (w *LLMObservation) senderName(id int) string {
	if id == arena.GameID {
		return "GAME"
	}
	if name, ok := w.names[id]; ok {
		return name
	}
	return fmt.Sprintf("Player %d", id)
}

func (w *LLMObservation) transcript(player int) string {
	var b strings.Builder
	for _, msg := range w.history[player] {
		b.WriteString("\n[")
		b.WriteString(w.senderName(msg.Sender))
		b.WriteString("] ")
		b.WriteString(msg.Content)
	}
	return b.String()
}

func (w *LLMObservation) Reset(numPlayers int, seed int64) error {
	w.history = make(map[int][]arena.Message)
	return w.inner.Reset(numPlayers, seed)
}

func (w *LLMObservation) GetObservation() (int, arena.Observation, error) {
	player, obs, err := w.inner.GetObservation()
	if err != nil {
		return player, obs, err
	}
	if obs.Formatted {
		return player, obs, nil
	}
	w.history[player] = append(w.history[player], obs.Entries...)
	return player, arena.Observation{Text: w.transcript(player), Formatted: true}, nil
}

func (w *LLMObservation) Step(action string) (bool, arena.Info, error) {
	return w.inner.Step(action)
}

func (w *LLMObservation) Close() (arena.Rewards, error) { return w.inner.Close() }

func (w *LLMObservation) ForceClose() (arena.Rewards, error) { return w.inner.ForceClose() }

func (w *LLMObservation) Render() (string, bool) { return w.inner.Render() }
