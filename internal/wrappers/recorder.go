package wrappers

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MJE43/arena-go/internal/arena"
	"github.com/MJE43/arena-go/internal/store"
)

// Recorder persists the observation/action/reward stream of each episode
// through the store. Purely observational: returned values are never altered
// and storage failures are logged, not propagated.
type Recorder struct {
	inner arena.Env
	db    store.DB
	game  string
	log   zerolog.Logger

	episodeID  string
	seq        int
	lastPlayer int
	reason     string
	done       bool
}

var _ arena.Env = (*Recorder)(nil)

// NewRecorder wraps env so that every episode of the named game is written
// to db.
func NewRecorder(env arena.Env, db store.DB, gameID string, log zerolog.Logger) *Recorder {
	return &Recorder{inner: env, db: db, game: gameID, log: log, lastPlayer: -1}
}

// EpisodeID returns the id of the episode currently being recorded.
func (w *Recorder) EpisodeID() string { return w.episodeID }

func (w *Recorder) Reset(numPlayers int, seed int64) error {
	if err := w.inner.Reset(numPlayers, seed); err != nil {
		return err
	}
	w.episodeID = uuid.NewString()
	w.seq = 0
	w.lastPlayer = -1
	w.reason = ""
	w.done = false
	ep := &store.Episode{
		ID:         w.episodeID,
		Game:       w.game,
		NumPlayers: numPlayers,
		Seed:       seed,
	}
	if err := w.db.SaveEpisode(ep); err != nil {
		w.log.Warn().Err(err).Str("episode", w.episodeID).Msg("failed to record episode start")
	}
	return nil
}

func (w *Recorder) GetObservation() (int, arena.Observation, error) {
	player, obs, err := w.inner.GetObservation()
	if err != nil {
		return player, obs, err
	}
	w.lastPlayer = player
	events := make([]store.Event, 0, len(obs.Entries)+1)
	for _, msg := range obs.Entries {
		events = append(events, store.Event{
			Seq:     w.nextSeq(),
			Kind:    store.EventObservation,
			Player:  player,
			Sender:  msg.Sender,
			Content: msg.Content,
		})
	}
	if obs.Formatted {
		events = append(events, store.Event{
			Seq:     w.nextSeq(),
			Kind:    store.EventObservation,
			Player:  player,
			Sender:  arena.GameID,
			Content: obs.Text,
		})
	}
	w.record(events)
	return player, obs, nil
}

func (w *Recorder) Step(action string) (bool, arena.Info, error) {
	done, info, err := w.inner.Step(action)
	if err != nil {
		return done, info, err
	}
	w.record([]store.Event{{
		Seq:     w.nextSeq(),
		Kind:    store.EventAction,
		Player:  w.lastPlayer,
		Sender:  w.lastPlayer,
		Content: action,
	}})
	if done {
		w.done = true
		if reason, ok := info["reason"].(string); ok {
			w.reason = reason
		}
	}
	return done, info, nil
}

func (w *Recorder) Close() (arena.Rewards, error) {
	rewards, err := w.inner.Close()
	if err != nil {
		return rewards, err
	}
	w.finish(rewards, false)
	return rewards, nil
}

func (w *Recorder) ForceClose() (arena.Rewards, error) {
	rewards, err := w.inner.ForceClose()
	if err != nil {
		return rewards, err
	}
	// Only a force-close of a still-live episode is a truncation; after
	// natural termination this is an ordinary close.
	w.finish(rewards, !w.done)
	return rewards, nil
}

func (w *Recorder) Render() (string, bool) { return w.inner.Render() }

func (w *Recorder) nextSeq() int {
	w.seq++
	return w.seq
}

func (w *Recorder) record(events []store.Event) {
	if w.episodeID == "" || len(events) == 0 {
		return
	}
	if err := w.db.SaveEvents(w.episodeID, events); err != nil {
		w.log.Warn().Err(err).Str("episode", w.episodeID).Msg("failed to record events")
	}
}

func (w *Recorder) finish(rewards arena.Rewards, forced bool) {
	if w.episodeID == "" {
		return
	}
	reason := w.reason
	if forced && reason == "" {
		reason = "episode closed by caller"
	}
	if err := w.db.FinishEpisode(w.episodeID, rewards, reason, forced); err != nil {
		w.log.Warn().Err(err).Str("episode", w.episodeID).Msg("failed to record episode end")
	}
}
