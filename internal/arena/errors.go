package arena

import "errors"

var (
	// ErrConfiguration signals a bad player count or game option at Reset.
	// Fatal to setup: no episode is created.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrLifecycle signals an operation called in the wrong lifecycle phase
	// (Step before Reset, Close before terminal, double Close). Always a
	// caller programming error.
	ErrLifecycle = errors.New("operation not valid in current phase")
	// ErrTurnViolation signals an action from a player the scheduler does not
	// currently authorize. Recoverable: recorded in info, turn not consumed.
	ErrTurnViolation = errors.New("player not authorized to act")
	// ErrInvalidAction signals a well-formed but illegal action. Handling is
	// per-game (see InvalidActionPolicy) and always surfaced in info.
	ErrInvalidAction = errors.New("invalid action")
)
