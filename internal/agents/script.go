package agents

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dop251/goja"
)

const scriptCallTimeout = 2 * time.Second

// LogEntry is a single log message emitted by a script.
type LogEntry struct {
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
}

// Script is a sandboxed JavaScript agent. The script must define a global
// function act(observation) returning the action string. log() and
// console.log() are captured to a bounded buffer; no host or network access
// is injected.
type Script struct {
	runtime *goja.Runtime
	act     goja.Callable
	mu      sync.Mutex

	logs    []LogEntry
	logsMu  sync.Mutex
	maxLogs int
}

var _ Agent = (*Script)(nil)

// NewScript compiles src and resolves its act function.
func NewScript(src string) (*Script, error) {
	s := &Script{
		runtime: goja.New(),
		maxLogs: 500,
	}
	s.injectGlobals()
	if _, err := s.runtime.RunString(src); err != nil {
		return nil, fmt.Errorf("failed to load script: %w", err)
	}
	act, ok := goja.AssertFunction(s.runtime.Get("act"))
	if !ok {
		return nil, fmt.Errorf("script does not define an act(observation) function")
	}
	s.act = act
	return s, nil
}

// blockedGlobals are stubbed to undefined so scripts have no host access, no
// network, and no dynamic code evaluation.
var blockedGlobals = []string{"require", "fetch", "XMLHttpRequest", "eval", "Function"}

// injectGlobals registers log and console.log and blocks dangerous globals.
func (s *Script) injectGlobals() {
	for _, name := range blockedGlobals {
		s.runtime.Set(name, goja.Undefined())
	}

	s.runtime.Set("log", func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		msg := strings.Join(parts, " ")

		s.logsMu.Lock()
		if len(s.logs) >= s.maxLogs {
			s.logs = s.logs[1:]
		}
		s.logs = append(s.logs, LogEntry{Time: time.Now(), Message: msg})
		s.logsMu.Unlock()

		return goja.Undefined()
	})

	console := s.runtime.NewObject()
	console.Set("log", s.runtime.Get("log"))
	s.runtime.Set("console", console)
}

// Act invokes the script's act function with a watchdog interrupt.
func (s *Script) Act(ctx context.Context, observation string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer := time.AfterFunc(scriptCallTimeout, func() {
		s.runtime.Interrupt("act() timed out")
	})
	defer timer.Stop()
	defer s.runtime.ClearInterrupt()

	value, err := s.act(goja.Undefined(), s.runtime.ToValue(observation))
	if err != nil {
		return "", fmt.Errorf("script act() failed: %w", err)
	}
	return value.String(), nil
}

// Logs returns a copy of the captured log buffer.
func (s *Script) Logs() []LogEntry {
	s.logsMu.Lock()
	defer s.logsMu.Unlock()
	out := make([]LogEntry, len(s.logs))
	copy(out, s.logs)
	return out
}
