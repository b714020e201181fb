// Package grpcgame exposes the game backend protocol over gRPC: a client
// adapter implementing gamefuzz.Backend and a server that hosts any backend
// behind the same service. Messages are JSON-encoded via a registered codec;
// no generated protobuf code is involved.
package grpcgame

import (
	"encoding/json"

	"github.com/louisbranch/gamefuzz"
)

// serviceName is the fully qualified gRPC service hosting the backend
// protocol.
const serviceName = "gamefuzz.v1.GameBackend"

// PlayerCountsRequest asks for the allowed player counts.
type PlayerCountsRequest struct{}

// PlayerCountsResponse lists the allowed player counts.
type PlayerCountsResponse struct {
	PlayerCounts []int `json:"player_counts"`
}

// NewGameRequest starts a game with the given player count.
type NewGameRequest struct {
	Players int `json:"players"`
}

// NewGameResponse carries the freshly created session.
type NewGameResponse struct {
	Session *gamefuzz.Session `json:"session"`
}

// PlayRequest submits one command for one player against an opaque game blob.
type PlayRequest struct {
	Command string          `json:"command"`
	Game    json.RawMessage `json:"game"`
	Player  int             `json:"player"`
	Names   []string        `json:"names"`
}

// PlayResponse reports the outcome of a played command. UserError is set when
// the backend rejected the input, RemainingInput carries unparsed trailing
// text, and Session is the advanced state otherwise.
type PlayResponse struct {
	Session        *gamefuzz.Session `json:"session,omitempty"`
	RemainingInput string            `json:"remaining_input,omitempty"`
	UserError      string            `json:"user_error,omitempty"`
}
