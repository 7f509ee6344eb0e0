package arena

import (
	"reflect"
	"testing"
)

func TestRoundRobinRotation(t *testing.T) {
	s := newScheduler(RoundRobin, 3)
	want := []int{0, 1, 2, 0, 1, 2}
	for i, expected := range want {
		if got := s.Authorized(); got != expected {
			t.Fatalf("turn %d: authorized = %d, want %d", i, got, expected)
		}
		s.Advance()
	}
}

func TestRotationSkipsEliminated(t *testing.T) {
	s := newScheduler(RoundRobin, 4)
	s.Eliminate(1)
	s.Eliminate(3)

	want := []int{0, 2, 0, 2}
	for i, expected := range want {
		if got := s.Authorized(); got != expected {
			t.Fatalf("turn %d: authorized = %d, want %d", i, got, expected)
		}
		s.Advance()
	}
	if s.ActiveCount() != 2 {
		t.Errorf("ActiveCount = %d, want 2", s.ActiveCount())
	}
	if !reflect.DeepEqual(s.ActivePlayers(), []int{0, 2}) {
		t.Errorf("ActivePlayers = %v, want [0 2]", s.ActivePlayers())
	}
}

func TestEliminateLeavesAdvanceToCaller(t *testing.T) {
	s := newScheduler(RoundRobin, 3)
	s.Eliminate(0)
	if s.Authorizes(0) {
		t.Error("an eliminated player must never be authorized")
	}
	// Eliminate does not move the pointer; one Advance lands on the next
	// active seat, not beyond it.
	s.Advance()
	if got := s.Authorized(); got != 1 {
		t.Errorf("advance past the eliminated seat: authorized = %d, want 1", got)
	}
}

func TestSimultaneousRound(t *testing.T) {
	s := newScheduler(Simultaneous, 3)

	if got := s.Authorized(); got != 0 {
		t.Fatalf("round start: authorized = %d, want 0", got)
	}
	for _, p := range []int{1, 2} {
		if !s.Authorizes(p) {
			t.Errorf("player %d has not submitted and should be authorized", p)
		}
	}

	if s.MarkSubmitted(0) {
		t.Error("round reported complete after one of three submissions")
	}
	if s.Authorizes(0) {
		t.Error("player 0 already submitted this round")
	}
	if got := s.Authorized(); got != 1 {
		t.Errorf("after player 0 submitted, authorized = %d, want 1", got)
	}

	s.MarkSubmitted(1)
	if !s.MarkSubmitted(2) {
		t.Error("round should be complete once all active players submitted")
	}

	s.ResetRound()
	if got := s.Authorized(); got != 0 {
		t.Errorf("new round: authorized = %d, want 0", got)
	}
}

func TestSimultaneousSkipsEliminated(t *testing.T) {
	s := newScheduler(Simultaneous, 3)
	s.Eliminate(0)

	if got := s.Authorized(); got != 1 {
		t.Fatalf("authorized = %d, want 1", got)
	}
	s.MarkSubmitted(1)
	if !s.MarkSubmitted(2) {
		t.Error("round should complete without the eliminated player")
	}
}

func TestEngineDirectedHonorsDirection(t *testing.T) {
	s := newScheduler(EngineDirected, 4)

	s.Direct(3)
	s.Advance()
	if got := s.Authorized(); got != 3 {
		t.Fatalf("after Direct(3): authorized = %d, want 3", got)
	}

	// No direction falls back to rotation from the current seat.
	s.Advance()
	if got := s.Authorized(); got != 0 {
		t.Errorf("undirected advance from seat 3: authorized = %d, want 0", got)
	}

	// Direction to an eliminated player is ignored in favor of rotation.
	s.Eliminate(2)
	s.Direct(2)
	s.Advance()
	if got := s.Authorized(); got != 1 {
		t.Errorf("direction to an eliminated player: authorized = %d, want 1", got)
	}
}

func TestDirectOutOfRangeIgnored(t *testing.T) {
	s := newScheduler(EngineDirected, 2)
	s.Direct(9)
	s.Advance()
	if got := s.Authorized(); got != 1 {
		t.Errorf("out-of-range direction: authorized = %d, want 1", got)
	}
}
