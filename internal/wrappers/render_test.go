package wrappers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/MJE43/arena-go/internal/arena"
)

func TestRenderTrace(t *testing.T) {
	inner := &scriptedEnv{
		observations: []scriptedObservation{{player: 1, obs: arena.Observation{}}},
		snapshot:     "X . O",
	}
	var buf bytes.Buffer
	w := NewRender(inner, &buf)

	w.GetObservation()
	done, info, err := w.Step("[col 2]")
	if err != nil || done {
		t.Fatalf("Step: done=%v err=%v", done, err)
	}
	if len(info) != 0 {
		t.Errorf("info altered by the render wrapper: %v", info)
	}

	out := buf.String()
	if !strings.Contains(out, "player 1: [col 2]") {
		t.Errorf("trace missing the action line: %q", out)
	}
	if !strings.Contains(out, "X . O") {
		t.Errorf("trace missing the board snapshot: %q", out)
	}
	if strings.Contains(out, "episode over") {
		t.Errorf("terminal banner written for a live episode: %q", out)
	}
}

func TestRenderTerminalBanner(t *testing.T) {
	inner := &scriptedEnv{
		stepDone: true,
		stepInfo: arena.Info{"reason": "player 0 won"},
	}
	var buf bytes.Buffer
	w := NewRender(inner, &buf)

	done, _, err := w.Step("win")
	if err != nil || !done {
		t.Fatalf("Step: done=%v err=%v", done, err)
	}
	if !strings.Contains(buf.String(), "episode over: player 0 won") {
		t.Errorf("missing terminal banner: %q", buf.String())
	}
}
