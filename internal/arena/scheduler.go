package arena

// Scheduler owns the turn-order state machine shared by all games. It is the
// single source of truth for "who may act now": the pipeline rejects actions
// from any player the Scheduler does not currently authorize, independent of
// what the game itself would accept.
type Scheduler struct {
	model      TurnModel
	n          int
	current    int
	directed   int // next actor named by the game; -1 when unset
	eliminated []bool
	submitted  []bool // simultaneous round bookkeeping
}

func newScheduler(model TurnModel, numPlayers int) *Scheduler {
	return &Scheduler{
		model:      model,
		n:          numPlayers,
		directed:   -1,
		eliminated: make([]bool, numPlayers),
		submitted:  make([]bool, numPlayers),
	}
}

// Authorized returns the player whose action is currently solicited.
// For Simultaneous games the presentation is serialized: the lowest-index
// active player that has not submitted this round goes first.
func (s *Scheduler) Authorized() int {
	if s.model == Simultaneous {
		for p := 0; p < s.n; p++ {
			if !s.eliminated[p] && !s.submitted[p] {
				return p
			}
		}
		return -1
	}
	return s.current
}

// Authorizes reports whether player may act right now.
func (s *Scheduler) Authorizes(player int) bool {
	if player < 0 || player >= s.n || s.eliminated[player] {
		return false
	}
	if s.model == Simultaneous {
		return !s.submitted[player]
	}
	return player == s.current
}

// Advance moves the turn pointer to the next active player. For
// EngineDirected it honors the actor named by the game, falling back to
// rotation when the game named nobody.
func (s *Scheduler) Advance() {
	if s.model == EngineDirected && s.directed >= 0 && !s.eliminated[s.directed] {
		s.current = s.directed
		s.directed = -1
		return
	}
	s.directed = -1
	for i := 1; i <= s.n; i++ {
		next := (s.current + i) % s.n
		if !s.eliminated[next] {
			s.current = next
			return
		}
	}
}

// Direct records the actor the game named for the next turn.
func (s *Scheduler) Direct(player int) {
	if player >= 0 && player < s.n {
		s.directed = player
	}
}

// MarkSubmitted buffers a simultaneous submission and reports whether the
// full active set has now submitted.
func (s *Scheduler) MarkSubmitted(player int) bool {
	s.submitted[player] = true
	for p := 0; p < s.n; p++ {
		if !s.eliminated[p] && !s.submitted[p] {
			return false
		}
	}
	return true
}

// ResetRound clears simultaneous submissions for the next round.
func (s *Scheduler) ResetRound() {
	for p := range s.submitted {
		s.submitted[p] = false
	}
}

// Eliminate removes a player from the turn order. The turn pointer is not
// moved here: eliminations happen mid-step, and the pipeline's single Advance
// after the consumed action already skips eliminated seats.
func (s *Scheduler) Eliminate(player int) {
	if player < 0 || player >= s.n {
		return
	}
	s.eliminated[player] = true
}

// Eliminated reports whether a player has been removed from the turn order.
func (s *Scheduler) Eliminated(player int) bool {
	return player >= 0 && player < s.n && s.eliminated[player]
}

// ActiveCount returns the number of players still in the turn order.
func (s *Scheduler) ActiveCount() int {
	count := 0
	for _, out := range s.eliminated {
		if !out {
			count++
		}
	}
	return count
}

// ActivePlayers returns the ids of players still in the turn order,
// ascending.
func (s *Scheduler) ActivePlayers() []int {
	players := make([]int, 0, s.n)
	for p := 0; p < s.n; p++ {
		if !s.eliminated[p] {
			players = append(players, p)
		}
	}
	return players
}
