// Package gamefuzz stress-tests turn-based game backends by driving them with
// randomly synthesized player commands until the backend reports a genuine
// error or the run is cancelled.
//
// The harness spawns one worker per processor. Each worker owns an
// exclusively-constructed Backend and a Fuzzer that cycles between starting a
// game and playing random commands against it, classifying every iteration
// into a Step. The orchestrating loop aggregates steps into a Tally, prints
// periodic status, and halts the whole run on the first fatal step with a
// full diagnostic dump.
//
// Invalid player input is expected and counted, never fatal. Protocol
// violations (missing command specs, empty turn sets, malformed responses)
// and transport failures are fatal to the run.
package gamefuzz
