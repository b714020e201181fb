package gamefuzz

import (
	"context"
	"encoding/json"
)

// PlayOutcomeKind classifies a backend's response to a played command.
type PlayOutcomeKind string

const (
	// PlayApplied indicates the command was fully consumed and the session
	// advanced.
	PlayApplied PlayOutcomeKind = "applied"
	// PlayIncomplete indicates the command parsed but left trailing input
	// unconsumed. Treated as invalid player input.
	PlayIncomplete PlayOutcomeKind = "incomplete"
	// PlayRejected indicates the backend explicitly reported invalid input.
	PlayRejected PlayOutcomeKind = "rejected"
)

// PlayOutcome is the classified result of submitting one command.
type PlayOutcome struct {
	Kind PlayOutcomeKind
	// Session is the advanced session. Set when Kind is PlayApplied.
	Session *Session
	// Message is the backend's rejection reason. Set when Kind is PlayRejected.
	Message string
	// Remaining is the unparsed trailing input. Set when Kind is PlayIncomplete.
	Remaining string
}

// Backend is the game backend protocol the harness drives. Transport-level
// failures (connection errors, malformed responses) are returned as errors,
// distinct from the rejection outcomes carried in PlayOutcome. Each worker
// owns its backend exclusively; implementations need not be safe for
// concurrent use by the harness.
type Backend interface {
	// PlayerCounts returns the allowed player counts for new games.
	PlayerCounts(ctx context.Context) ([]int, error)
	// NewGame starts a game with the given player count. It fails when the
	// count is not allowed or the backend rejects the request.
	NewGame(ctx context.Context, players int) (*Session, error)
	// Play submits one command for one player against an opaque game state.
	Play(ctx context.Context, command string, game json.RawMessage, player int, names []string) (PlayOutcome, error)
}

// BackendFactory constructs one exclusively-owned backend. The orchestrator
// invokes it once per worker before any worker starts its loop; a factory
// failure aborts the whole run.
type BackendFactory func(ctx context.Context) (Backend, error)
