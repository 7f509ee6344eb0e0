package agents

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestHumanAct(t *testing.T) {
	var out bytes.Buffer
	h := NewHuman(strings.NewReader("[col 3]\n[col 4]\n"), &out)

	action, err := h.Act(context.Background(), "the board")
	if err != nil {
		t.Fatalf("Act failed: %v", err)
	}
	if action != "[col 3]" {
		t.Errorf("action = %q", action)
	}
	if !strings.Contains(out.String(), "the board") {
		t.Errorf("observation not shown: %q", out.String())
	}

	action, err = h.Act(context.Background(), "next")
	if err != nil || action != "[col 4]" {
		t.Errorf("second action = %q, err = %v", action, err)
	}
}

func TestHumanEOF(t *testing.T) {
	h := NewHuman(strings.NewReader(""), io.Discard)
	if _, err := h.Act(context.Background(), "obs"); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF at end of input, got %v", err)
	}
}
