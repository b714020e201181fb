package gamefuzz

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
)

var (
	// ErrNoPlayerCounts indicates the backend reported no allowed player counts.
	ErrNoPlayerCounts = errors.New("backend reported no allowed player counts")
	// ErrNoActivePlayers indicates an active game with an empty whose-turn set.
	ErrNoActivePlayers = errors.New("active game has no players whose turn it is")
	// ErrSessionNotActive indicates a live session that is neither active nor
	// cleared, which the fuzzer state machine never produces on its own.
	ErrSessionNotActive = errors.New("session is not active")
)

// Fuzzer drives one game session at a time against a single backend. Each
// Advance call performs one cycle of the create-game/play-command loop and
// classifies it into exactly one Step. A fuzzer holds at most one session: a
// new one is created only when none exists, and a session is discarded the
// moment its status becomes finished. Not safe for concurrent use; each
// worker owns its own fuzzer.
type Fuzzer struct {
	backend      Backend
	synth        Synthesizer
	rng          *rand.Rand
	playerCounts []int
	names        []string
	session      *Session
}

// NewFuzzer queries the backend's allowed player counts and prepares a
// fuzzer. The query failing is a construction failure, not a step.
func NewFuzzer(ctx context.Context, backend Backend, synth Synthesizer, rng *rand.Rand) (*Fuzzer, error) {
	counts, err := backend.PlayerCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list player counts: %w", err)
	}
	return &Fuzzer{
		backend: backend,
		synth:   synth,
		rng:     rng,

		playerCounts: counts,
	}, nil
}

// Session returns the current session snapshot, or nil when no game is live.
func (f *Fuzzer) Session() *Session {
	return f.session
}

// Advance runs one iteration: it starts a game when none exists, otherwise
// plays one random command. Failures are captured in a StepError carrying the
// last known session and attempted command rather than returned; the fuzzer
// itself stays usable afterwards.
func (f *Fuzzer) Advance(ctx context.Context) Step {
	if f.session == nil {
		if err := f.newGame(ctx); err != nil {
			return Step{Kind: StepError, Err: err.Error()}
		}
		return Step{Kind: StepCreated}
	}
	return f.playRandomCommand(ctx)
}

func (f *Fuzzer) newGame(ctx context.Context) error {
	if len(f.playerCounts) == 0 {
		return ErrNoPlayerCounts
	}
	players := f.playerCounts[f.rng.Intn(len(f.playerCounts))]
	f.names = playerNames(players)
	session, err := f.backend.NewGame(ctx, players)
	if err != nil {
		return fmt.Errorf("new game with %d players: %w", players, err)
	}
	f.session = session
	return nil
}

func (f *Fuzzer) playRandomCommand(ctx context.Context) Step {
	fail := func(command string, err error) Step {
		return Step{Kind: StepError, Session: f.session, Command: command, Err: err.Error()}
	}

	active := f.session.Status.Active
	if active == nil {
		return fail("", ErrSessionNotActive)
	}
	if len(active.WhoseTurn) == 0 {
		return fail("", ErrNoActivePlayers)
	}
	player := active.WhoseTurn[f.rng.Intn(len(active.WhoseTurn))]
	if player < 0 || player >= len(f.session.PlayerRenders) {
		return fail("", fmt.Errorf("there is no player render for player %d", player))
	}
	spec := f.session.PlayerRenders[player].CommandSpec
	if spec == nil {
		return fail("", fmt.Errorf("player %d has no command spec", player))
	}

	command, err := f.synth.Synthesize(spec, f.names, f.rng)
	if err != nil {
		return fail("", fmt.Errorf("synthesize command: %w", err))
	}

	outcome, err := f.backend.Play(ctx, command, f.session.Game, player, f.names)
	if err != nil {
		return fail(command, fmt.Errorf("play command: %w", err))
	}
	switch outcome.Kind {
	case PlayIncomplete, PlayRejected:
		return Step{Kind: StepUserError}
	case PlayApplied:
		if outcome.Session == nil {
			return fail(command, errors.New("backend applied command without a session"))
		}
		f.session = outcome.Session
		if f.session.Status.Finished != nil {
			f.session = nil
			return Step{Kind: StepFinished}
		}
		return Step{Kind: StepCommandOk}
	default:
		return fail(command, fmt.Errorf("unknown play outcome %q", outcome.Kind))
	}
}

func playerNames(players int) []string {
	names := make([]string, players)
	for i := range names {
		names[i] = fmt.Sprintf("player%d", i)
	}
	return names
}
