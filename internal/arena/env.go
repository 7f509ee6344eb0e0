package arena

// Env is the uniform interaction protocol every environment and every
// wrapper satisfies. Wrappers hold (never extend) an inner Env and transform
// calls on the way through; the outermost wrapper is what the caller sees.
type Env interface {
	// Reset starts a new episode with numPlayers seats. seed <= 0 selects a
	// time-derived seed. Callable again after termination with no state
	// leakage from the prior episode.
	Reset(numPlayers int, seed int64) error
	// GetObservation returns the next authorized player and that player's
	// accumulated, undelivered log entries. Delivery clears the pending log.
	GetObservation() (player int, obs Observation, err error)
	// Step applies action as the player most recently returned by
	// GetObservation. info is always non-nil.
	Step(action string) (done bool, info Info, err error)
	// Close returns the final rewards. Valid exactly once, after termination.
	Close() (Rewards, error)
	// ForceClose ends a live episode immediately, marking it truncated with
	// all-zero rewards; after natural termination it behaves like Close.
	ForceClose() (Rewards, error)
	// Render returns a human-readable snapshot, or false when the underlying
	// game has no renderer.
	Render() (string, bool)
}
