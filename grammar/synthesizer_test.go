package grammar

import (
	"encoding/json"
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"testing"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestSynthesize_Token(t *testing.T) {
	got, err := NewSynthesizer().Synthesize(NewToken("play"), nil, testRand())
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if got != "play" {
		t.Fatalf("command = %q, want %q", got, "play")
	}
}

func TestSynthesize_IntStaysInBounds(t *testing.T) {
	synth := NewSynthesizer()
	rng := testRand()
	for i := 0; i < 100; i++ {
		got, err := synth.Synthesize(NewInt(3, 7), nil, rng)
		if err != nil {
			t.Fatalf("synthesize: %v", err)
		}
		n, err := strconv.Atoi(got)
		if err != nil {
			t.Fatalf("parse %q: %v", got, err)
		}
		if n < 3 || n > 7 {
			t.Fatalf("value = %d, want within [3, 7]", n)
		}
	}
}

func TestSynthesize_IntInvertedBounds(t *testing.T) {
	if _, err := NewSynthesizer().Synthesize(NewInt(7, 3), nil, testRand()); err == nil {
		t.Fatal("expected an error for inverted bounds")
	}
}

func TestSynthesize_PlayerPicksAName(t *testing.T) {
	names := []string{"player0", "player1"}
	got, err := NewSynthesizer().Synthesize(NewPlayer(), names, testRand())
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if got != "player0" && got != "player1" {
		t.Fatalf("command = %q, want one of %v", got, names)
	}
}

func TestSynthesize_PlayerWithoutNames(t *testing.T) {
	_, err := NewSynthesizer().Synthesize(NewPlayer(), nil, testRand())
	if !errors.Is(err, ErrNoPlayers) {
		t.Fatalf("err = %v, want ErrNoPlayers", err)
	}
}

func TestSynthesize_EnumPicksAValue(t *testing.T) {
	got, err := NewSynthesizer().Synthesize(NewEnum("rock", "paper", "scissors"), nil, testRand())
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if got != "rock" && got != "paper" && got != "scissors" {
		t.Fatalf("command = %q, want an enum value", got)
	}
}

func TestSynthesize_ChainConcatenates(t *testing.T) {
	spec := NewChain(NewToken("guess"), NewSpace(), NewInt(5, 5))
	got, err := NewSynthesizer().Synthesize(spec, nil, testRand())
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if got != "guess 5" {
		t.Fatalf("command = %q, want %q", got, "guess 5")
	}
}

func TestSynthesize_OneOfPicksAlternative(t *testing.T) {
	spec := NewOneOf(NewToken("hit"), NewToken("stand"))
	rng := testRand()
	synth := NewSynthesizer()
	for i := 0; i < 20; i++ {
		got, err := synth.Synthesize(spec, nil, rng)
		if err != nil {
			t.Fatalf("synthesize: %v", err)
		}
		if got != "hit" && got != "stand" {
			t.Fatalf("command = %q, want an alternative", got)
		}
	}
}

func TestSynthesize_OptIsPresentOrAbsent(t *testing.T) {
	spec := NewChain(NewToken("pass"), NewOpt(NewToken("!")))
	rng := testRand()
	synth := NewSynthesizer()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		got, err := synth.Synthesize(spec, nil, rng)
		if err != nil {
			t.Fatalf("synthesize: %v", err)
		}
		seen[got] = true
	}
	if !seen["pass"] || !seen["pass!"] {
		t.Fatalf("seen = %v, want both variants", seen)
	}
}

func TestSynthesize_ManyRespectsBoundsAndDelim(t *testing.T) {
	spec := NewMany(NewToken("x"), 1, 3)
	rng := testRand()
	synth := NewSynthesizer()
	for i := 0; i < 50; i++ {
		got, err := synth.Synthesize(spec, nil, rng)
		if err != nil {
			t.Fatalf("synthesize: %v", err)
		}
		parts := strings.Split(got, " ")
		if len(parts) < 1 || len(parts) > 3 {
			t.Fatalf("repetitions = %d, want within [1, 3]", len(parts))
		}
		for _, part := range parts {
			if part != "x" {
				t.Fatalf("part = %q, want %q", part, "x")
			}
		}
	}
}

func TestSynthesize_EmptySpec(t *testing.T) {
	synth := NewSynthesizer()
	if _, err := synth.Synthesize(nil, nil, testRand()); !errors.Is(err, ErrEmptySpec) {
		t.Fatalf("err = %v, want ErrEmptySpec", err)
	}
	if _, err := synth.Synthesize(&Spec{}, nil, testRand()); !errors.Is(err, ErrEmptySpec) {
		t.Fatalf("err = %v, want ErrEmptySpec", err)
	}
}

func TestSynthesize_DeterministicUnderFixedSeed(t *testing.T) {
	spec := NewChain(
		NewToken("bid"),
		NewSpace(),
		NewInt(1, 100),
		NewSpace(),
		NewOneOf(NewToken("hearts"), NewToken("spades")),
	)
	synth := NewSynthesizer()

	first, err := synth.Synthesize(spec, nil, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	second, err := synth.Synthesize(spec, nil, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if first != second {
		t.Fatalf("derivations differ under the same seed: %q vs %q", first, second)
	}
}

func TestSpec_JSONRoundTrip(t *testing.T) {
	spec := NewChain(NewToken("guess"), NewSpace(), NewInt(1, 100))

	encoded, err := json.Marshal(spec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	decoded := &Spec{}
	if err := json.Unmarshal(encoded, decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got, err := NewSynthesizer().Synthesize(decoded, nil, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	want, err := NewSynthesizer().Synthesize(spec, nil, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if got != want {
		t.Fatalf("round-tripped derivation = %q, want %q", got, want)
	}
}
