// Package agents provides decision processes that satisfy the engine's agent
// boundary: a pure observation -> action contract. The engine is agnostic to
// whether an agent is a human, a script or a model call.
package agents

import "context"

// Agent turns an observation into an action.
type Agent interface {
	Act(ctx context.Context, observation string) (string, error)
}
