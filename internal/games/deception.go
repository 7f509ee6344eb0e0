package games

import (
	"fmt"
	"regexp"

	"github.com/MJE43/arena-go/internal/arena"
)

// Conversation turns before the guess; the guess itself is the last turn.
const deceptionTurns = 6

var (
	guessFact1Pattern = regexp.MustCompile(`(?i)\[Fact 1\]`)
	guessFact2Pattern = regexp.MustCompile(`(?i)\[Fact 2\]`)
)

// factPair is one correct statement and its plausible-but-wrong counterpart.
type factPair struct {
	correct string
	wrong   string
}

var deceptionFacts = []factPair{
	{"Honey stored sealed never spoils.", "Honey spoils within two years of harvest."},
	{"Octopuses have three hearts.", "Octopuses have a single large heart."},
	{"The Eiffel Tower is taller in summer than in winter.", "The Eiffel Tower keeps the same height year round."},
	{"Bananas are botanically berries.", "Strawberries are botanically berries."},
	{"A day on Venus is longer than its year.", "A day on Venus lasts about thirty Earth hours."},
	{"Wombats produce cube-shaped droppings.", "Wombats produce perfectly spherical droppings."},
	{"Scotland's national animal is the unicorn.", "Scotland's national animal is the red stag."},
	{"Sharks existed before trees.", "Trees existed long before sharks."},
	{"Hot water can freeze faster than cold water.", "Hot water always freezes slower than cold water."},
	{"The shortest war in history lasted under an hour.", "The shortest war in history lasted three days."},
}

// TruthAndDeception is a two-player role game: the deceiver (player 0) knows
// which of two presented facts is correct and tries to talk the guesser
// (player 1) into the wrong one. After a fixed conversation the guesser
// commits with '[Fact 1]' or '[Fact 2]'.
type TruthAndDeception struct {
	fact1        string
	fact2        string
	firstCorrect bool
}

var (
	_ arena.Game     = (*TruthAndDeception)(nil)
	_ arena.Renderer = (*TruthAndDeception)(nil)
)

func NewTruthAndDeception() *TruthAndDeception { return &TruthAndDeception{} }

func (g *TruthAndDeception) ID() string                 { return "truth_and_deception" }
func (g *TruthAndDeception) PlayerRange() (int, int)    { return 2, 2 }
func (g *TruthAndDeception) TurnModel() arena.TurnModel { return arena.RoundRobin }

// InvalidActionPolicy: a malformed guess is rejected and the guesser retries;
// conversation messages are free-form and never invalid.
func (g *TruthAndDeception) InvalidActionPolicy() arena.InvalidActionPolicy {
	return arena.RejectAndRetry
}

func (g *TruthAndDeception) Init(st *arena.State) error {
	st.MaxTurns = deceptionTurns
	pair := deceptionFacts[st.Rand.Intn(len(deceptionFacts))]
	g.firstCorrect = st.Rand.Intn(2) == 0
	if g.firstCorrect {
		g.fact1, g.fact2 = pair.correct, pair.wrong
	} else {
		g.fact1, g.fact2 = pair.wrong, pair.correct
	}

	mark := func(correct bool) string {
		if correct {
			return "correct"
		}
		return "wrong"
	}
	st.AddObservation(arena.GameID, 0, fmt.Sprintf(
		"You are Player 0, the Deceiver in 'Truth and Deception'.\n"+
			"You know which of the following two facts is correct:\n"+
			"Fact 1: %s (%s)\nFact 2: %s (%s)\n"+
			"Your goal is to convince the other player to choose the incorrect fact.\n"+
			"You will have a conversation for %d turns; after that the other player "+
			"makes their guess. On your turn, simply type your message.",
		g.fact1, mark(g.firstCorrect), g.fact2, mark(!g.firstCorrect), deceptionTurns))
	st.AddObservation(arena.GameID, 1, fmt.Sprintf(
		"You are Player 1, the Guesser in 'Truth and Deception'.\n"+
			"You need to determine which of the following two facts is correct:\n"+
			"Fact 1: %s\nFact 2: %s\n"+
			"You will have a conversation with the other player for %d turns; after "+
			"that you make your guess. On your turn, simply type your message.",
		g.fact1, g.fact2, deceptionTurns))
	return nil
}

func (g *TruthAndDeception) OnAction(st *arena.State, player int, action string) error {
	// The last turn is the guesser's commitment.
	if st.Turn == st.MaxTurns-1 {
		guess1 := guessFact1Pattern.MatchString(action)
		guess2 := guessFact2Pattern.MatchString(action)
		if !guess1 && !guess2 {
			return fmt.Errorf("%w: guess with [Fact 1] or [Fact 2]", arena.ErrInvalidAction)
		}
		st.AddObservation(player, arena.ToAll, action)
		if (guess1 && g.firstCorrect) || (guess2 && !g.firstCorrect) {
			st.SetWinners([]int{player}, fmt.Sprintf("player %d guessed the correct fact", player))
		} else {
			st.SetWinners([]int{1 - player}, fmt.Sprintf("player %d guessed the wrong fact", player))
		}
		return nil
	}

	st.AddObservation(player, arena.ToAll, action)
	if st.Turn == st.MaxTurns-2 {
		st.AddObservation(arena.GameID, arena.ToAll,
			"Now guess which of the two facts is correct by returning [Fact 1] or [Fact 2].")
	}
	return nil
}

func (g *TruthAndDeception) RenderState(st *arena.State) string {
	correct, wrong := g.fact1, g.fact2
	if !g.firstCorrect {
		correct, wrong = g.fact2, g.fact1
	}
	return fmt.Sprintf("correct: %s\nwrong:   %s", correct, wrong)
}
