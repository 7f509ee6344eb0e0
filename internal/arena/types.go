package arena

// Sentinel ids used in observation routing.
const (
	// GameID is the sender id for engine-authored messages.
	GameID = -1
	// ToAll is the recipient id for broadcasts.
	ToAll = -1
)

// Message is a single observation-log entry delivered to a player.
type Message struct {
	Sender  int    `json:"sender"`
	Content string `json:"content"`
	Seq     int    `json:"seq"`
}

// Observation is what a player sees when it is asked to act: either the
// structured log entries accumulated since that player last observed, or a
// flattened text form once a formatting wrapper has run. Formatted
// distinguishes the two so that stacking the same wrapper twice is a no-op.
type Observation struct {
	Entries   []Message `json:"entries,omitempty"`
	Text      string    `json:"text,omitempty"`
	Formatted bool      `json:"formatted,omitempty"`
}

// Empty reports whether the observation carries no content.
func (o Observation) Empty() bool {
	return len(o.Entries) == 0 && o.Text == ""
}

// Rewards maps player id to final score. Finalized exactly once per episode;
// every player has an entry, including on forfeit.
type Rewards map[int]float64

// Info carries auxiliary per-step metadata (termination reason, violation
// details). Always present on a step result, possibly empty.
type Info map[string]any

// TurnModel selects how the Scheduler advances turns.
type TurnModel int

const (
	// RoundRobin advances (current+1) mod N, skipping eliminated players.
	RoundRobin TurnModel = iota
	// Simultaneous solicits every active player once per round; actions are
	// buffered until the full set arrives, then the game resolves the round.
	Simultaneous
	// EngineDirected defers entirely to the game, which names the next actor
	// via State.SetNextPlayer during OnAction.
	EngineDirected
)

func (m TurnModel) String() string {
	switch m {
	case RoundRobin:
		return "round_robin"
	case Simultaneous:
		return "simultaneous"
	case EngineDirected:
		return "engine_directed"
	default:
		return "unknown"
	}
}

// InvalidActionPolicy decides what happens when a well-formed but illegal
// action reaches the game. The policy is declared per game, never assumed.
type InvalidActionPolicy int

const (
	// RejectAndRetry records the rejection in info and leaves the turn with
	// the same player.
	RejectAndRetry InvalidActionPolicy = iota
	// ForfeitOnInvalid eliminates the offending player with a losing reward.
	ForfeitOnInvalid
)
