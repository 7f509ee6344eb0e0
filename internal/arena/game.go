package arena

// Game is the contract every concrete game implements. A Game owns its own
// rule state and mutates the shared State container through its helpers;
// the core never inspects game internals.
type Game interface {
	// ID returns the registry identifier of the game.
	ID() string
	// PlayerRange returns the inclusive range of supported player counts.
	PlayerRange() (min, max int)
	// TurnModel declares how turns advance for this game.
	TurnModel() TurnModel
	// InvalidActionPolicy declares how illegal actions are handled.
	InvalidActionPolicy() InvalidActionPolicy
	// Init populates game state for a fresh episode. The State's RNG is
	// already seeded; initial per-player prompts should be emitted here via
	// AddObservation.
	Init(st *State) error
	// OnAction applies one player's action. Illegal actions are reported by
	// returning an error wrapping ErrInvalidAction. Not used for Simultaneous
	// games, which implement RoundResolver instead.
	OnAction(st *State, player int, action string) error
}

// Renderer is implemented by games that can produce a human-readable snapshot
// of their state. Absence of the interface means "no renderer", which the
// Runtime reports distinctly from an empty render.
type Renderer interface {
	RenderState(st *State) string
}

// RoundResolver is implemented by Simultaneous games. ResolveRound runs once
// the full active player set has submitted; actions maps player id to the
// buffered submission.
type RoundResolver interface {
	ResolveRound(st *State, actions map[int]string) error
}
