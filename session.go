package gamefuzz

import (
	"encoding/json"

	"github.com/louisbranch/gamefuzz/grammar"
)

// Session is the live state of one fuzzed game instance plus per-player
// command metadata. The Game blob is opaque to the harness and is passed back
// to the backend unmodified on every play. A session is owned by the fuzzer
// that created it and replaced wholesale on every successful command.
type Session struct {
	Game          json.RawMessage `json:"game"`
	Status        Status          `json:"status"`
	PlayerRenders []PlayerRender  `json:"player_renders"`
}

// Status reports whether a game is running or done. Exactly one field is set.
type Status struct {
	Active   *ActiveStatus   `json:"active,omitempty"`
	Finished *FinishedStatus `json:"finished,omitempty"`
}

// ActiveStatus lists the players who may act right now.
type ActiveStatus struct {
	WhoseTurn []int `json:"whose_turn"`
}

// FinishedStatus records the final player placings, best first.
type FinishedStatus struct {
	Placings []int `json:"placings,omitempty"`
}

// PlayerRender carries per-player command availability metadata. A nil
// CommandSpec means the player has no legal input grammar right now, and
// selecting them to act is a protocol violation.
type PlayerRender struct {
	CommandSpec *grammar.Spec `json:"command_spec,omitempty"`
}
