package games

import (
	"strings"
	"testing"

	"github.com/MJE43/arena-go/internal/arena"
	"github.com/MJE43/arena-go/internal/wrappers"
)

// chatUntilGuess plays the conversation turns, leaving the guesser's final
// turn to the caller.
func chatUntilGuess(t *testing.T, rt *arena.Runtime) {
	t.Helper()
	for i := 0; i < deceptionTurns-1; i++ {
		player, _, err := rt.GetObservation()
		if err != nil {
			t.Fatalf("turn %d: GetObservation failed: %v", i, err)
		}
		if want := i % 2; player != want {
			t.Fatalf("turn %d: authorized player = %d, want %d", i, player, want)
		}
		done, _, err := rt.Step("let me tell you about these facts")
		if err != nil {
			t.Fatalf("turn %d: Step failed: %v", i, err)
		}
		if done {
			t.Fatalf("episode ended during the conversation at turn %d", i)
		}
	}
}

func TestTruthAndDeceptionCorrectGuessWins(t *testing.T) {
	g := NewTruthAndDeception()
	rt := arena.New(g)
	if err := rt.Reset(2, 1); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	chatUntilGuess(t, rt)

	player, obs, _ := rt.GetObservation()
	if player != 1 {
		t.Fatalf("the guess belongs to player 1, got %d", player)
	}
	prompted := false
	for _, msg := range obs.Entries {
		if strings.Contains(msg.Content, "Now guess") {
			prompted = true
		}
	}
	if !prompted {
		t.Errorf("guess prompt never delivered: %+v", obs.Entries)
	}

	guess := "[Fact 2]"
	if g.firstCorrect {
		guess = "[Fact 1]"
	}
	done, info, err := rt.Step(guess)
	if err != nil || !done {
		t.Fatalf("guess: done=%v err=%v", done, err)
	}
	if reason, _ := info["reason"].(string); !strings.Contains(reason, "correct fact") {
		t.Errorf("reason = %v", info["reason"])
	}
	rewards, err := rt.Close()
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if rewards[1] != 1 || rewards[0] != -1 {
		t.Errorf("rewards = %v, want the guesser to win", rewards)
	}
}

func TestTruthAndDeceptionWrongGuessLoses(t *testing.T) {
	g := NewTruthAndDeception()
	rt := arena.New(g)
	if err := rt.Reset(2, 1); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	chatUntilGuess(t, rt)

	rt.GetObservation()
	guess := "[Fact 1]"
	if g.firstCorrect {
		guess = "[Fact 2]"
	}
	done, _, err := rt.Step(guess)
	if err != nil || !done {
		t.Fatalf("guess: done=%v err=%v", done, err)
	}
	rewards, _ := rt.Close()
	if rewards[0] != 1 || rewards[1] != -1 {
		t.Errorf("rewards = %v, want the deceiver to win", rewards)
	}
}

func TestTruthAndDeceptionMalformedGuessRetries(t *testing.T) {
	g := NewTruthAndDeception()
	rt := arena.New(g)
	if err := rt.Reset(2, 1); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	chatUntilGuess(t, rt)

	rt.GetObservation()
	done, info, err := rt.Step("I think the first one is true")
	if err != nil || done {
		t.Fatalf("malformed guess: done=%v err=%v", done, err)
	}
	if info["invalid_action"] == nil {
		t.Error("expected invalid_action in info")
	}
	if got := rt.State().Scheduler().Authorized(); got != 1 {
		t.Errorf("guess turn consumed by a malformed guess: authorized = %d", got)
	}

	rt.GetObservation()
	guess := "[fact 1]"
	if !g.firstCorrect {
		guess = "[fact 2]"
	}
	done, _, err = rt.Step(guess)
	if err != nil || !done {
		t.Fatalf("case-insensitive guess: done=%v err=%v", done, err)
	}
}

func TestTruthAndDeceptionDeceiverPromptStaysPrivate(t *testing.T) {
	rt := arena.New(NewTruthAndDeception())
	if err := rt.Reset(2, 1); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	rt.GetObservation()
	rt.Step("hello")

	_, obs, _ := rt.GetObservation()
	for _, msg := range obs.Entries {
		if msg.Sender == arena.GameID && strings.Contains(msg.Content, "(correct)") {
			t.Errorf("the guesser can see which fact is correct: %+v", msg)
		}
	}
}

func TestTruthAndDeceptionRoleNames(t *testing.T) {
	env, err := Make("truth_and_deception")
	if err != nil {
		t.Fatalf("Make failed: %v", err)
	}
	w := wrappers.NewLLMObservation(env).WithNames(map[int]string{0: "Deceiver", 1: "Guesser"})
	if err := w.Reset(2, 1); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	w.GetObservation()
	if _, _, err := w.Step("the first fact is the true one, trust me"); err != nil {
		t.Fatalf("Step failed: %v", err)
	}

	_, obs, err := w.GetObservation()
	if err != nil {
		t.Fatalf("GetObservation failed: %v", err)
	}
	if !obs.Formatted {
		t.Error("wrapped observation should be formatted")
	}
	if !strings.Contains(obs.Text, "[Deceiver] the first fact is the true one") {
		t.Errorf("role name missing from the transcript:\n%s", obs.Text)
	}
}
