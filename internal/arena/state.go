package arena

import (
	"math/rand"
	"time"
)

// State is the per-episode container: roster size, turn counter, per-player
// observation logs, rewards, termination flags and the episode RNG. It does
// bookkeeping only; rule logic lives in the Game.
type State struct {
	NumPlayers int
	// Turn counts consumed actions (RoundRobin, EngineDirected) or completed
	// rounds (Simultaneous).
	Turn int
	// MaxTurns truncates the episode when reached; 0 means unlimited.
	MaxTurns int
	// Rand is the episode RNG, seeded at Reset.
	Rand *rand.Rand

	sched *Scheduler

	pending [][]Message
	seq     int

	actions map[int]string // buffered simultaneous submissions

	rewards   Rewards
	done      bool
	truncated bool
	reason    string

	stepInfo Info
}

func newState(game Game, numPlayers int, seed int64) *State {
	if seed <= 0 {
		seed = time.Now().UnixNano()
	}
	return &State{
		NumPlayers: numPlayers,
		Rand:       rand.New(rand.NewSource(seed)),
		sched:      newScheduler(game.TurnModel(), numPlayers),
		pending:    make([][]Message, numPlayers),
		actions:    make(map[int]string, numPlayers),
	}
}

// Scheduler exposes the episode's turn scheduler.
func (st *State) Scheduler() *Scheduler { return st.sched }

// AddObservation appends a log entry to one player's pending log, or to every
// player's when to is ToAll. from may be a player id or GameID.
func (st *State) AddObservation(from, to int, content string) {
	msg := Message{Sender: from, Content: content, Seq: st.seq}
	st.seq++
	if to == ToAll {
		for p := 0; p < st.NumPlayers; p++ {
			st.pending[p] = append(st.pending[p], msg)
		}
		return
	}
	if to >= 0 && to < st.NumPlayers {
		st.pending[to] = append(st.pending[to], msg)
	}
}

// takePending returns and clears a player's undelivered log entries.
// Entries are consumed exactly once, in arrival order.
func (st *State) takePending(player int) []Message {
	if player < 0 || player >= st.NumPlayers {
		return nil
	}
	out := st.pending[player]
	st.pending[player] = nil
	return out
}

// Record attaches a key/value pair to the info of the step in flight.
func (st *State) Record(key string, value any) {
	if st.stepInfo != nil {
		st.stepInfo[key] = value
	}
}

// SetNextPlayer names the next actor; honored only under EngineDirected.
func (st *State) SetNextPlayer(player int) {
	st.sched.Direct(player)
}

// Eliminate removes a player from the turn order. Termination when a single
// player remains is the Runtime's responsibility.
func (st *State) Eliminate(player int) {
	st.sched.Eliminate(player)
}

// SetWinners ends the episode: each winner receives +1, everyone else -1.
// Rewards are immutable once set; later calls are ignored.
func (st *State) SetWinners(players []int, reason string) {
	if st.done {
		return
	}
	rewards := make(Rewards, st.NumPlayers)
	for p := 0; p < st.NumPlayers; p++ {
		rewards[p] = -1
	}
	for _, p := range players {
		if p >= 0 && p < st.NumPlayers {
			rewards[p] = 1
		}
	}
	st.finish(rewards, reason)
}

// SetDraw ends the episode with zero reward for every player.
func (st *State) SetDraw(reason string) {
	if st.done {
		return
	}
	rewards := make(Rewards, st.NumPlayers)
	for p := 0; p < st.NumPlayers; p++ {
		rewards[p] = 0
	}
	st.finish(rewards, reason)
}

// SetRewards ends the episode with game-defined scores. Missing players are
// filled with 0 so that every active player has an entry.
func (st *State) SetRewards(rewards Rewards, reason string) {
	if st.done {
		return
	}
	full := make(Rewards, st.NumPlayers)
	for p := 0; p < st.NumPlayers; p++ {
		full[p] = rewards[p]
	}
	st.finish(full, reason)
}

func (st *State) finish(rewards Rewards, reason string) {
	st.rewards = rewards
	st.reason = reason
	st.done = true
}

// truncate force-ends the episode without a game-defined outcome. Rewards
// already set by the game are kept; otherwise everyone scores zero.
func (st *State) truncate(reason string) {
	st.truncated = true
	if st.rewards == nil {
		rewards := make(Rewards, st.NumPlayers)
		for p := 0; p < st.NumPlayers; p++ {
			rewards[p] = 0
		}
		st.rewards = rewards
	}
	if st.reason == "" {
		st.reason = reason
	}
}

// Terminal reports whether the episode has ended, by win/loss or truncation.
func (st *State) Terminal() bool { return st.done || st.truncated }

// Truncated reports whether the episode ended by force rather than by a
// game-defined outcome.
func (st *State) Truncated() bool { return st.truncated }

// Reason returns the recorded termination reason.
func (st *State) Reason() string { return st.reason }

// RewardsCopy returns a defensive copy of the final rewards, or nil while the
// episode is still live.
func (st *State) RewardsCopy() Rewards {
	if st.rewards == nil {
		return nil
	}
	out := make(Rewards, len(st.rewards))
	for p, r := range st.rewards {
		out[p] = r
	}
	return out
}
