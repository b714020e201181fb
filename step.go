package gamefuzz

// StepKind classifies the outcome of one fuzzer iteration.
type StepKind string

const (
	// StepCreated indicates a new game was started.
	StepCreated StepKind = "created"
	// StepCommandOk indicates a command was applied and the game continues.
	StepCommandOk StepKind = "command_ok"
	// StepUserError indicates the backend treated the command as invalid
	// player input, either by rejecting it or by leaving input unparsed.
	StepUserError StepKind = "user_error"
	// StepFinished indicates a command was applied and ended the game.
	StepFinished StepKind = "finished"
	// StepError indicates a fatal protocol, transport, or synthesis failure.
	StepError StepKind = "error"
)

// Step is the classified outcome of a single fuzzer iteration. Exactly one
// step is produced per iteration and consumed by exactly one orchestrator.
type Step struct {
	Kind StepKind
	// Session is the last known session snapshot. Set only on StepError, and
	// only when a game was live at the time of the failure.
	Session *Session
	// Command is the attempted command. Set on StepError when the failure
	// happened after synthesis.
	Command string
	// Err describes the failure. Set only on StepError.
	Err string
}
