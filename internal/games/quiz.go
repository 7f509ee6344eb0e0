package games

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/MJE43/arena-go/internal/arena"
)

const (
	quizTargetScore = 3
	quizMaxTurns    = 40
)

var (
	answerPattern = regexp.MustCompile(`-?\d+`)
	passPattern   = regexp.MustCompile(`(?i)\[pass\s+(?:to\s+)?(?:player\s+)?(\d+)\]`)
)

// QuizDuel is an engine-directed quiz: the player who answers correctly
// scores a point and chooses who answers the next question with
// '[pass to X]' (defaulting to rotation when no choice is made). First to
// three points wins.
type QuizDuel struct {
	scores []int
	expect int
}

var _ arena.Game = (*QuizDuel)(nil)

func NewQuizDuel() *QuizDuel { return &QuizDuel{} }

func (g *QuizDuel) ID() string                 { return "quiz_duel" }
func (g *QuizDuel) PlayerRange() (int, int)    { return 2, 8 }
func (g *QuizDuel) TurnModel() arena.TurnModel { return arena.EngineDirected }

// InvalidActionPolicy: an answer with no number in it is rejected and the
// same player retries.
func (g *QuizDuel) InvalidActionPolicy() arena.InvalidActionPolicy {
	return arena.RejectAndRetry
}

func (g *QuizDuel) Init(st *arena.State) error {
	st.MaxTurns = quizMaxTurns
	g.scores = make([]int, st.NumPlayers)
	for p := 0; p < st.NumPlayers; p++ {
		st.AddObservation(arena.GameID, p, fmt.Sprintf(
			"You are Player %d in a quiz duel with %d players. Answer with a number; "+
				"a correct answer scores a point and lets you add '[pass to X]' to pick "+
				"who answers next. First to %d points wins.",
			p, st.NumPlayers, quizTargetScore))
	}
	g.askQuestion(st, 0)
	return nil
}

// askQuestion generates the next arithmetic question for the named player.
func (g *QuizDuel) askQuestion(st *arena.State, player int) {
	a := 2 + st.Rand.Intn(30)
	b := 2 + st.Rand.Intn(30)
	if st.Rand.Intn(2) == 0 {
		g.expect = a + b
		st.AddObservation(arena.GameID, player, fmt.Sprintf("Question: what is %d + %d?", a, b))
		return
	}
	g.expect = a * b
	st.AddObservation(arena.GameID, player, fmt.Sprintf("Question: what is %d * %d?", a, b))
}

func (g *QuizDuel) OnAction(st *arena.State, player int, action string) error {
	m := answerPattern.FindString(action)
	if m == "" {
		return fmt.Errorf("%w: answer with a number", arena.ErrInvalidAction)
	}
	answer, err := strconv.Atoi(m)
	if err != nil {
		return fmt.Errorf("%w: bad number %q", arena.ErrInvalidAction, m)
	}

	next := (player + 1) % st.NumPlayers
	if answer == g.expect {
		g.scores[player]++
		st.AddObservation(arena.GameID, arena.ToAll, fmt.Sprintf(
			"Player %d answered correctly and now has %d point(s).", player, g.scores[player]))
		if g.scores[player] >= quizTargetScore {
			st.SetWinners([]int{player}, fmt.Sprintf("player %d reached %d points", player, quizTargetScore))
			return nil
		}
		if pm := passPattern.FindStringSubmatch(action); pm != nil {
			if chosen, err := strconv.Atoi(pm[1]); err == nil &&
				chosen >= 0 && chosen < st.NumPlayers && chosen != player {
				next = chosen
			}
		}
	} else {
		st.AddObservation(arena.GameID, arena.ToAll,
			fmt.Sprintf("Player %d answered %d, which is wrong.", player, answer))
	}

	if st.Turn == st.MaxTurns-1 {
		g.settle(st)
		return nil
	}
	st.SetNextPlayer(next)
	g.askQuestion(st, next)
	return nil
}

// settle decides the winner on points when the turn limit arrives first.
func (g *QuizDuel) settle(st *arena.State) {
	best, bestScore, tied := -1, -1, false
	for p, score := range g.scores {
		switch {
		case score > bestScore:
			best, bestScore, tied = p, score, false
		case score == bestScore:
			tied = true
		}
	}
	if tied {
		st.SetDraw(fmt.Sprintf("tie at %d point(s)", bestScore))
		return
	}
	st.SetWinners([]int{best}, fmt.Sprintf("player %d leads with %d point(s) at the turn limit", best, bestScore))
}
