package games

import (
	"strings"
	"testing"

	"github.com/MJE43/arena-go/internal/arena"
)

func TestParseColumn(t *testing.T) {
	cases := []struct {
		action string
		col    int
		ok     bool
	}{
		{"[col 3]", 3, true},
		{"[column 5]", 5, true},
		{"col 0", 0, true},
		{"  6  ", 6, true},
		{"I will drop into [col 2] now", 2, true},
		{"pass", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		col, err := parseColumn(tc.action)
		if tc.ok && (err != nil || col != tc.col) {
			t.Errorf("parseColumn(%q) = %d, %v; want %d", tc.action, col, err, tc.col)
		}
		if !tc.ok && err == nil {
			t.Errorf("parseColumn(%q) should fail", tc.action)
		}
	}
}

func TestConnectFourVerticalWin(t *testing.T) {
	rt := arena.New(NewConnectFour())
	if err := rt.Reset(2, 1); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	// Player 0 stacks column 3, player 1 column 4.
	moves := []string{"[col 3]", "[col 4]", "[col 3]", "[col 4]", "[col 3]", "[col 4]", "[col 3]"}
	var done bool
	var info arena.Info
	for i, mv := range moves {
		player, _, err := rt.GetObservation()
		if err != nil {
			t.Fatalf("move %d: GetObservation failed: %v", i, err)
		}
		if want := i % 2; player != want {
			t.Fatalf("move %d: authorized player = %d, want %d", i, player, want)
		}
		done, info, err = rt.Step(mv)
		if err != nil {
			t.Fatalf("move %d: Step failed: %v", i, err)
		}
		if done && i < len(moves)-1 {
			t.Fatalf("episode ended early at move %d", i)
		}
	}

	if !done {
		t.Fatal("four in column 3 should end the game")
	}
	if reason, _ := info["reason"].(string); !strings.Contains(reason, "connected four") {
		t.Errorf("reason = %v", info["reason"])
	}
	rewards, err := rt.Close()
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if rewards[0] != 1 || rewards[1] != -1 {
		t.Errorf("rewards = %v, want {0:1, 1:-1}", rewards)
	}
}

func TestConnectFourMoveIsBroadcast(t *testing.T) {
	rt := arena.New(NewConnectFour())
	if err := rt.Reset(2, 1); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	rt.GetObservation()
	if _, _, err := rt.Step("[col 3]"); err != nil {
		t.Fatalf("Step failed: %v", err)
	}

	_, obs, _ := rt.GetObservation()
	found := false
	for _, msg := range obs.Entries {
		if strings.Contains(msg.Content, "Player 0 dropped a disc into column 3") {
			found = true
		}
	}
	if !found {
		t.Errorf("opponent did not observe the move: %+v", obs.Entries)
	}
}

func TestConnectFourForfeitOnIllegalMove(t *testing.T) {
	rt := arena.New(NewConnectFour())
	if err := rt.Reset(2, 1); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	rt.GetObservation()
	done, info, err := rt.Step("[col 99]")
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if !done {
		t.Fatal("illegal move should forfeit a two-player game")
	}
	if info["invalid_action"] == nil {
		t.Error("expected invalid_action in info")
	}
	rewards, _ := rt.Close()
	if rewards[0] != -1 || rewards[1] != 1 {
		t.Errorf("rewards = %v, want {0:-1, 1:1}", rewards)
	}
}

func TestConnectFourRender(t *testing.T) {
	g := NewConnectFour()
	rt := arena.New(g)
	if err := rt.Reset(2, 1); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	rt.GetObservation()
	rt.Step("[col 0]")

	snapshot, ok := rt.Render()
	if !ok {
		t.Fatal("connect four should render")
	}
	if !strings.Contains(snapshot, "X") {
		t.Errorf("board missing player 0's disc:\n%s", snapshot)
	}
}
