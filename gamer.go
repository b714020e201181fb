package gamefuzz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/louisbranch/gamefuzz/grammar"
	"github.com/louisbranch/gamefuzz/internal/platform/random"
)

// ErrInvalidInput marks a command a Gamer rejected as invalid player input.
// Implementations wrap it so the in-process backend classifies the play as a
// rejection instead of a fatal failure.
var ErrInvalidInput = errors.New("invalid input")

// Gamer is the contract an in-process game implementation satisfies to be
// fuzzed without a network transport. The concrete type must round-trip
// through encoding/json, since its encoding doubles as the opaque game blob.
type Gamer interface {
	// PlayerCounts returns the supported player counts.
	PlayerCounts() []int
	// New initializes the receiver as a fresh game for the given player count.
	New(players int, rng *rand.Rand) error
	// Players returns the number of seated players.
	Players() int
	// Status reports whether the game is active or finished.
	Status() Status
	// CommandSpec returns the player's current input grammar, or nil when the
	// player has no legal input.
	CommandSpec(player int) *grammar.Spec
	// Command applies one command for one player, returning any unparsed
	// trailing input. Invalid player input is reported by wrapping
	// ErrInvalidInput; any other error is a game implementation failure.
	Command(player int, input string, names []string) (remaining string, err error)
}

// GamerPtr constrains a pointer to a Gamer implementation so fresh instances
// can be allocated per call.
type GamerPtr[G any] interface {
	*G
	Gamer
}

// FuzzGamer runs the full harness against an in-process game type, skipping
// any network transport.
func FuzzGamer[G any, P GamerPtr[G]](ctx context.Context) error {
	return Fuzz(ctx, NewGamerFactory[G, P]())
}

// NewGamerFactory returns a factory producing stateless in-process backends
// for the game type G. The opaque game blob is the JSON encoding of G; every
// play decodes it into a fresh instance, applies the command, and re-encodes.
func NewGamerFactory[G any, P GamerPtr[G]]() BackendFactory {
	return func(ctx context.Context) (Backend, error) {
		seed, err := random.NewSeed()
		if err != nil {
			return nil, fmt.Errorf("seed gamer backend: %w", err)
		}
		return &gamerBackend[G, P]{rng: rand.New(rand.NewSource(seed))}, nil
	}
}

type gamerBackend[G any, P GamerPtr[G]] struct {
	// mu guards rng: workers own their backend exclusively, but a backend
	// hosted behind a gRPC server sees concurrent handlers.
	mu  sync.Mutex
	rng *rand.Rand
}

func (b *gamerBackend[G, P]) PlayerCounts(_ context.Context) ([]int, error) {
	return P(new(G)).PlayerCounts(), nil
}

func (b *gamerBackend[G, P]) NewGame(_ context.Context, players int) (*Session, error) {
	g := P(new(G))
	b.mu.Lock()
	err := g.New(players, b.rng)
	b.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("new %d player game: %w", players, err)
	}
	return snapshotGamer(g)
}

func (b *gamerBackend[G, P]) Play(_ context.Context, command string, game json.RawMessage, player int, names []string) (PlayOutcome, error) {
	g := P(new(G))
	if err := json.Unmarshal(game, g); err != nil {
		return PlayOutcome{}, fmt.Errorf("decode game state: %w", err)
	}
	remaining, err := g.Command(player, command, names)
	if errors.Is(err, ErrInvalidInput) {
		return PlayOutcome{Kind: PlayRejected, Message: err.Error()}, nil
	}
	if err != nil {
		return PlayOutcome{}, fmt.Errorf("apply command: %w", err)
	}
	if strings.TrimSpace(remaining) != "" {
		return PlayOutcome{Kind: PlayIncomplete, Remaining: remaining}, nil
	}
	session, err := snapshotGamer(g)
	if err != nil {
		return PlayOutcome{}, err
	}
	return PlayOutcome{Kind: PlayApplied, Session: session}, nil
}

func snapshotGamer(g Gamer) (*Session, error) {
	blob, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("encode game state: %w", err)
	}
	renders := make([]PlayerRender, g.Players())
	for i := range renders {
		renders[i].CommandSpec = g.CommandSpec(i)
	}
	return &Session{
		Game:          blob,
		Status:        g.Status(),
		PlayerRenders: renders,
	}, nil
}
