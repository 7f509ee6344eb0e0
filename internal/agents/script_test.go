package agents

import (
	"context"
	"strings"
	"testing"
)

func TestScriptAct(t *testing.T) {
	s, err := NewScript(`
		function act(observation) {
			log("saw", observation.length, "chars");
			if (observation.indexOf("Connect Four") >= 0) {
				return "[col 3]";
			}
			return "pass";
		}
	`)
	if err != nil {
		t.Fatalf("NewScript failed: %v", err)
	}

	action, err := s.Act(context.Background(), "You are Player 0 in Connect Four.")
	if err != nil {
		t.Fatalf("Act failed: %v", err)
	}
	if action != "[col 3]" {
		t.Errorf("action = %q, want [col 3]", action)
	}

	logs := s.Logs()
	if len(logs) != 1 || !strings.Contains(logs[0].Message, "saw") {
		t.Errorf("logs = %+v", logs)
	}
}

func TestScriptMissingAct(t *testing.T) {
	if _, err := NewScript(`var x = 1;`); err == nil {
		t.Error("a script without act() must be rejected")
	}
}

func TestScriptSyntaxError(t *testing.T) {
	if _, err := NewScript(`function act( {`); err == nil {
		t.Error("a script that fails to parse must be rejected")
	}
}

func TestScriptRuntimeError(t *testing.T) {
	s, err := NewScript(`function act(obs) { throw new Error("boom"); }`)
	if err != nil {
		t.Fatalf("NewScript failed: %v", err)
	}
	if _, err := s.Act(context.Background(), "x"); err == nil {
		t.Error("a throwing act() must surface an error")
	}
}

func TestScriptConsoleLogCaptured(t *testing.T) {
	s, err := NewScript(`function act(obs) { console.log("thinking"); return "ok"; }`)
	if err != nil {
		t.Fatalf("NewScript failed: %v", err)
	}
	if _, err := s.Act(context.Background(), "x"); err != nil {
		t.Fatalf("Act failed: %v", err)
	}
	logs := s.Logs()
	if len(logs) != 1 || logs[0].Message != "thinking" {
		t.Errorf("logs = %+v", logs)
	}
}

func TestScriptBlockedGlobals(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"eval", `function act(obs) { return eval("1+1"); }`},
		{"Function", `function act(obs) { return new Function("return 2")(); }`},
		{"require", `function act(obs) { return require("fs"); }`},
		{"fetch", `function act(obs) { return fetch("http://example.com"); }`},
	}
	for _, tc := range cases {
		s, err := NewScript(tc.src)
		if err != nil {
			t.Fatalf("%s: NewScript failed: %v", tc.name, err)
		}
		if _, err := s.Act(context.Background(), "x"); err == nil {
			t.Errorf("%s: blocked global was callable", tc.name)
		}
	}
}

func TestScriptInfiniteLoopInterrupted(t *testing.T) {
	if testing.Short() {
		t.Skip("watchdog test waits for the call timeout")
	}
	s, err := NewScript(`function act(obs) { while (true) {} }`)
	if err != nil {
		t.Fatalf("NewScript failed: %v", err)
	}
	if _, err := s.Act(context.Background(), "x"); err == nil {
		t.Error("a looping act() must be interrupted")
	}
}
