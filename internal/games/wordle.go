package games

import (
	"fmt"
	"strings"

	"github.com/MJE43/arena-go/internal/arena"
)

const (
	wordleGuesses    = 6
	wordleWordLength = 5
)

// wordleAnswers is a compact built-in answer list; hosts embedding the engine
// can treat it as a demo vocabulary.
var wordleAnswers = []string{
	"apple", "baker", "candy", "delta", "eagle", "fable", "gamer", "haste",
	"inbox", "jolly", "knack", "lemon", "mango", "noble", "ocean", "piano",
	"query", "river", "slate", "toast", "ultra", "vivid", "wagon", "xenon",
	"yacht", "zebra", "crane", "doubt", "flame", "grasp", "hinge", "ivory",
	"joust", "koala", "lunar", "mirth", "night", "orbit", "pride", "quilt",
	"roast", "shard", "tulip", "unity", "vapor", "whale", "youth", "zonal",
}

// Wordle is the single-player word game: guess a hidden five-letter word in
// six tries. Feedback marks each letter hit (H), present (P) or miss (-)
// using the classic two-pass scoring so repeated letters behave correctly.
type Wordle struct {
	answer  string
	guesses []string
	marks   []string
}

var (
	_ arena.Game     = (*Wordle)(nil)
	_ arena.Renderer = (*Wordle)(nil)
)

func NewWordle() *Wordle { return &Wordle{} }

func (g *Wordle) ID() string                 { return "wordle" }
func (g *Wordle) PlayerRange() (int, int)    { return 1, 1 }
func (g *Wordle) TurnModel() arena.TurnModel { return arena.RoundRobin }

// InvalidActionPolicy: malformed guesses do not consume one of the six tries.
func (g *Wordle) InvalidActionPolicy() arena.InvalidActionPolicy {
	return arena.RejectAndRetry
}

func (g *Wordle) Init(st *arena.State) error {
	g.answer = wordleAnswers[st.Rand.Intn(len(wordleAnswers))]
	g.guesses = nil
	g.marks = nil
	st.AddObservation(arena.GameID, 0, fmt.Sprintf(
		"Guess the hidden %d-letter word. You have %d tries. After each guess "+
			"every letter is marked H (right spot), P (in the word, wrong spot) or - (absent).",
		wordleWordLength, wordleGuesses))
	return nil
}

func (g *Wordle) OnAction(st *arena.State, player int, action string) error {
	guess := strings.ToLower(strings.TrimSpace(action))
	if len(guess) != wordleWordLength || !isLowerAlpha(guess) {
		return fmt.Errorf("%w: guess must be exactly %d letters a-z", arena.ErrInvalidAction, wordleWordLength)
	}

	marks := scoreWordleGuess(g.answer, guess)
	g.guesses = append(g.guesses, guess)
	g.marks = append(g.marks, marks)
	st.AddObservation(arena.GameID, 0, fmt.Sprintf("%s  %s  (%d/%d)",
		guess, marks, len(g.guesses), wordleGuesses))

	if guess == g.answer {
		st.SetWinners([]int{0}, fmt.Sprintf("guessed %q in %d tries", g.answer, len(g.guesses)))
		return nil
	}
	if len(g.guesses) >= wordleGuesses {
		st.SetRewards(arena.Rewards{0: -1}, fmt.Sprintf("out of tries; the word was %q", g.answer))
	}
	return nil
}

// scoreWordleGuess implements the standard two-pass scoring algorithm: exact
// matches first, then presents drawn from the remaining letter counts.
func scoreWordleGuess(answer, guess string) string {
	marks := make([]byte, wordleWordLength)
	var counts [26]int
	for i := 0; i < wordleWordLength; i++ {
		if guess[i] == answer[i] {
			marks[i] = 'H'
		} else {
			counts[answer[i]-'a']++
		}
	}
	for i := 0; i < wordleWordLength; i++ {
		if marks[i] == 'H' {
			continue
		}
		j := guess[i] - 'a'
		if counts[j] > 0 {
			marks[i] = 'P'
			counts[j]--
		} else {
			marks[i] = '-'
		}
	}
	return string(marks)
}

func isLowerAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

func (g *Wordle) RenderState(st *arena.State) string {
	var b strings.Builder
	for i, guess := range g.guesses {
		fmt.Fprintf(&b, "%s  %s\n", guess, g.marks[i])
	}
	return strings.TrimRight(b.String(), "\n")
}
