package arena

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Phase is the per-episode lifecycle state.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseActive
	PhaseTerminal
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseActive:
		return "active"
	case PhaseTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Runtime is the observation/action pipeline around one Game instance. It
// enforces the episode lifecycle, asks the Scheduler who may act, routes
// actions into the game and finalizes rewards. Runtime satisfies Env and is
// what the registry hands out.
type Runtime struct {
	game  Game
	st    *State
	phase Phase

	// lastObserved is the player returned by the most recent GetObservation,
	// -1 when no observation is outstanding.
	lastObserved int
	closed       bool

	log zerolog.Logger
}

var _ Env = (*Runtime)(nil)

// New wraps a game in a fresh, uninitialized Runtime.
func New(game Game) *Runtime {
	return &Runtime{
		game:         game,
		phase:        PhaseUninitialized,
		lastObserved: -1,
		log:          zerolog.Nop(),
	}
}

// WithLogger attaches a logger for lifecycle tracing.
func (r *Runtime) WithLogger(log zerolog.Logger) *Runtime {
	r.log = log
	return r
}

// Game returns the wrapped game.
func (r *Runtime) Game() Game { return r.game }

// Phase returns the current lifecycle phase.
func (r *Runtime) Phase() Phase { return r.phase }

// State exposes the episode state container; nil before the first Reset.
func (r *Runtime) State() *State { return r.st }

// Reset starts a new episode. All prior episode state is discarded.
func (r *Runtime) Reset(numPlayers int, seed int64) error {
	min, max := r.game.PlayerRange()
	if numPlayers < min || numPlayers > max {
		return fmt.Errorf("%w: game %q supports %d-%d players, got %d",
			ErrConfiguration, r.game.ID(), min, max, numPlayers)
	}
	st := newState(r.game, numPlayers, seed)
	if err := r.game.Init(st); err != nil {
		return fmt.Errorf("%w: init %q: %v", ErrConfiguration, r.game.ID(), err)
	}
	r.st = st
	r.phase = PhaseActive
	r.lastObserved = -1
	r.closed = false
	r.log.Debug().Str("game", r.game.ID()).Int("players", numPlayers).Msg("episode reset")
	return nil
}

// GetObservation returns the next authorized player and that player's pending
// log entries, consuming them.
func (r *Runtime) GetObservation() (int, Observation, error) {
	if r.phase != PhaseActive {
		return -1, Observation{}, fmt.Errorf("get observation in %s phase: %w", r.phase, ErrLifecycle)
	}
	player := r.st.sched.Authorized()
	obs := Observation{Entries: r.st.takePending(player)}
	r.lastObserved = player
	return player, obs, nil
}

// Step applies action as the player most recently returned by GetObservation.
func (r *Runtime) Step(action string) (bool, Info, error) {
	if r.phase != PhaseActive {
		return false, Info{}, fmt.Errorf("step in %s phase: %w", r.phase, ErrLifecycle)
	}
	if r.lastObserved < 0 {
		return false, Info{}, fmt.Errorf("step before get observation: %w", ErrLifecycle)
	}
	player := r.lastObserved
	r.lastObserved = -1
	return r.StepAs(player, action)
}

// StepAs applies action on behalf of an explicit player. Turn violations are
// recorded in info and discarded without consuming the turn; the episode
// continues.
func (r *Runtime) StepAs(player int, action string) (bool, Info, error) {
	info := Info{}
	if r.phase != PhaseActive {
		return false, info, fmt.Errorf("step in %s phase: %w", r.phase, ErrLifecycle)
	}
	st := r.st
	if !st.sched.Authorizes(player) {
		info["turn_violation"] = fmt.Sprintf("player %d acted out of turn (authorized: %d)",
			player, st.sched.Authorized())
		r.log.Debug().Int("player", player).Msg("turn violation")
		return false, info, nil
	}

	st.stepInfo = info
	defer func() { st.stepInfo = nil }()

	var err error
	if r.game.TurnModel() == Simultaneous {
		err = r.stepSimultaneous(player, action)
	} else {
		err = r.stepSequential(player, action, info)
	}
	if err != nil {
		return false, info, err
	}

	// Eliminations force terminal once a single player remains, whichever
	// path removed the others.
	if !st.Terminal() && st.NumPlayers > 1 {
		if active := st.sched.ActivePlayers(); len(active) == 1 {
			st.SetWinners(active, fmt.Sprintf("player %d is the last player standing", active[0]))
		}
	}

	if !st.Terminal() && st.MaxTurns > 0 && st.Turn >= st.MaxTurns {
		st.truncate("turn limit reached")
		info["truncation"] = st.Reason()
	}
	if st.Terminal() {
		r.phase = PhaseTerminal
		info["reason"] = st.Reason()
		r.log.Debug().Str("reason", st.Reason()).Bool("truncated", st.Truncated()).Msg("episode terminal")
	}
	return r.phase == PhaseTerminal, info, nil
}

func (r *Runtime) stepSequential(player int, action string, info Info) error {
	st := r.st
	if err := r.game.OnAction(st, player, action); err != nil {
		if !errors.Is(err, ErrInvalidAction) {
			return err
		}
		info["invalid_action"] = err.Error()
		if r.game.InvalidActionPolicy() != ForfeitOnInvalid {
			// Turn stays with the offender; tell them why.
			st.AddObservation(GameID, player, "Invalid action: "+err.Error())
			return nil
		}
		// A forfeit consumes the turn like any other action; the shared
		// Advance below moves the pointer past the eliminated seat.
		r.forfeit(player, err.Error())
	}
	if !st.Terminal() {
		st.Turn++
		st.sched.Advance()
	}
	return nil
}

func (r *Runtime) stepSimultaneous(player int, action string) error {
	st := r.st
	st.actions[player] = action
	if !st.sched.MarkSubmitted(player) {
		return nil
	}
	resolver, ok := r.game.(RoundResolver)
	if !ok {
		return fmt.Errorf("game %q declares simultaneous turns without a round resolver", r.game.ID())
	}
	actions := st.actions
	st.actions = make(map[int]string, st.NumPlayers)
	st.sched.ResetRound()
	if err := resolver.ResolveRound(st, actions); err != nil {
		return err
	}
	if !st.Terminal() {
		st.Turn++
	}
	return nil
}

// forfeit eliminates a player after an illegal action under ForfeitOnInvalid.
// Termination when a single player remains is handled in StepAs.
func (r *Runtime) forfeit(player int, reason string) {
	st := r.st
	st.AddObservation(GameID, ToAll, fmt.Sprintf("Player %d forfeits: %s", player, reason))
	st.Eliminate(player)
}

// Close returns the final rewards. Valid exactly once per episode, and only
// after termination was reached through play (or ForceClose).
func (r *Runtime) Close() (Rewards, error) {
	if r.phase != PhaseTerminal {
		return nil, fmt.Errorf("close in %s phase: %w", r.phase, ErrLifecycle)
	}
	if r.closed {
		return nil, fmt.Errorf("episode already closed: %w", ErrLifecycle)
	}
	r.closed = true
	return r.st.RewardsCopy(), nil
}

// ForceClose ends a live episode immediately: the episode is marked truncated
// and every player scores zero, deliberately distinct from natural
// termination rewards. After termination it behaves like Close.
func (r *Runtime) ForceClose() (Rewards, error) {
	switch r.phase {
	case PhaseActive:
		r.st.truncate("episode closed by caller")
		r.phase = PhaseTerminal
		r.log.Debug().Msg("episode force-closed")
		return r.Close()
	case PhaseTerminal:
		return r.Close()
	default:
		return nil, fmt.Errorf("force close in %s phase: %w", r.phase, ErrLifecycle)
	}
}

// Render returns the game's snapshot of the current state, or false when the
// game has no renderer or no episode is live.
func (r *Runtime) Render() (string, bool) {
	renderer, ok := r.game.(Renderer)
	if !ok || r.st == nil {
		return "", false
	}
	return renderer.RenderState(r.st), true
}
