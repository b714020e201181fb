// Package guess implements a small turn-based number guessing game used as
// the built-in fuzz target: players take turns guessing a secret number, the
// game narrowing the valid window after every miss until someone hits it.
package guess

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/louisbranch/gamefuzz"
	"github.com/louisbranch/gamefuzz/grammar"
)

const (
	minSecret  = 1
	maxSecret  = 100
	maxPlayers = 4
)

// Game is one guessing game. All state is exported so the harness can carry
// it as an opaque JSON blob.
type Game struct {
	Secret      int  `json:"secret"`
	PlayerCount int  `json:"player_count"`
	Turn        int  `json:"turn"`
	Winner      *int `json:"winner,omitempty"`
	// Low and High are the exclusive bounds guesses must fall between; they
	// tighten after every miss.
	Low  int `json:"low"`
	High int `json:"high"`
}

// PlayerCounts returns the supported player counts.
func (g *Game) PlayerCounts() []int {
	counts := make([]int, maxPlayers)
	for i := range counts {
		counts[i] = i + 1
	}
	return counts
}

// New deals a fresh game for the given player count.
func (g *Game) New(players int, rng *rand.Rand) error {
	if players < 1 || players > maxPlayers {
		return fmt.Errorf("unsupported player count %d", players)
	}
	g.Secret = minSecret + rng.Intn(maxSecret-minSecret+1)
	g.PlayerCount = players
	g.Turn = 0
	g.Winner = nil
	g.Low = minSecret - 1
	g.High = maxSecret + 1
	return nil
}

// Players returns the number of seated players.
func (g *Game) Players() int {
	return g.PlayerCount
}

// Status reports whose turn it is, or the final placings with the winner
// first.
func (g *Game) Status() gamefuzz.Status {
	if g.Winner == nil {
		return gamefuzz.Status{Active: &gamefuzz.ActiveStatus{WhoseTurn: []int{g.Turn}}}
	}
	placings := make([]int, 0, g.PlayerCount)
	placings = append(placings, *g.Winner)
	for p := 0; p < g.PlayerCount; p++ {
		if p != *g.Winner {
			placings = append(placings, p)
		}
	}
	return gamefuzz.Status{Finished: &gamefuzz.FinishedStatus{Placings: placings}}
}

// CommandSpec returns the guess grammar for the active player and nil for
// everyone else. The grammar deliberately spans the full secret range, so
// guesses outside the narrowed window exercise the rejection path.
func (g *Game) CommandSpec(player int) *grammar.Spec {
	if g.Winner != nil || player != g.Turn {
		return nil
	}
	return grammar.NewChain(
		grammar.NewToken("guess"),
		grammar.NewSpace(),
		grammar.NewInt(minSecret, maxSecret),
	)
}

// Command applies a "guess <n>" command for the active player, returning any
// unparsed trailing input.
func (g *Game) Command(player int, input string, _ []string) (string, error) {
	if g.Winner != nil {
		return "", errors.New("the game is already finished")
	}
	if player != g.Turn {
		return "", fmt.Errorf("%w: it is not player %d's turn", gamefuzz.ErrInvalidInput, player)
	}

	rest := strings.TrimLeft(input, " ")
	if !strings.HasPrefix(strings.ToLower(rest), "guess") {
		return "", fmt.Errorf("%w: expected a guess command", gamefuzz.ErrInvalidInput)
	}
	rest = strings.TrimLeft(rest[len("guess"):], " ")
	digits := 0
	for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return "", fmt.Errorf("%w: expected a number to guess", gamefuzz.ErrInvalidInput)
	}
	n, err := strconv.Atoi(rest[:digits])
	if err != nil {
		return "", fmt.Errorf("%w: %v", gamefuzz.ErrInvalidInput, err)
	}
	if n <= g.Low || n >= g.High {
		return "", fmt.Errorf("%w: %d is outside the open window (%d, %d)", gamefuzz.ErrInvalidInput, n, g.Low, g.High)
	}

	switch {
	case n == g.Secret:
		winner := player
		g.Winner = &winner
	case n < g.Secret:
		g.Low = n
	default:
		g.High = n
	}
	g.Turn = (g.Turn + 1) % g.PlayerCount
	return rest[digits:], nil
}
