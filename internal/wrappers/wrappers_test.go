package wrappers

import (
	"github.com/MJE43/arena-go/internal/arena"
)

// scriptedEnv is a fake inner env that replays a fixed sequence of
// observations and records the calls made against it.
type scriptedEnv struct {
	observations []scriptedObservation
	next         int

	stepDone bool
	stepInfo arena.Info
	rewards  arena.Rewards
	snapshot string

	resetPlayers int
	resetSeed    int64
	steps        []string
	closed       bool
	forceClosed  bool
}

type scriptedObservation struct {
	player int
	obs    arena.Observation
}

var _ arena.Env = (*scriptedEnv)(nil)

func (e *scriptedEnv) Reset(numPlayers int, seed int64) error {
	e.resetPlayers = numPlayers
	e.resetSeed = seed
	e.next = 0
	return nil
}

func (e *scriptedEnv) GetObservation() (int, arena.Observation, error) {
	if e.next >= len(e.observations) {
		return 0, arena.Observation{}, nil
	}
	cur := e.observations[e.next]
	e.next++
	return cur.player, cur.obs, nil
}

func (e *scriptedEnv) Step(action string) (bool, arena.Info, error) {
	e.steps = append(e.steps, action)
	info := e.stepInfo
	if info == nil {
		info = arena.Info{}
	}
	return e.stepDone, info, nil
}

func (e *scriptedEnv) Close() (arena.Rewards, error) {
	e.closed = true
	return e.rewards, nil
}

func (e *scriptedEnv) ForceClose() (arena.Rewards, error) {
	e.forceClosed = true
	return e.rewards, nil
}

func (e *scriptedEnv) Render() (string, bool) {
	return e.snapshot, e.snapshot != ""
}

func msg(sender int, content string) arena.Message {
	return arena.Message{Sender: sender, Content: content}
}
