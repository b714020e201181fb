package grammar

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// Default bounds used when a spec leaves its ranges open.
const (
	defaultIntMin  = -1000
	defaultIntMax  = 1000
	defaultManyMax = 3
)

var (
	// ErrEmptySpec indicates a grammar node with no field set.
	ErrEmptySpec = errors.New("command spec node is empty")
	// ErrNoPlayers indicates a player node with no player names to draw from.
	ErrNoPlayers = errors.New("command spec requires a player but no names were given")
)

// Synthesizer derives one uniformly random command string per call. Every
// choice point (alternative, enum value, optional presence, repetition
// length, integer value) is sampled with equal probability from the caller's
// RNG. Derivation always terminates on finite grammars and never retries.
type Synthesizer struct{}

// NewSynthesizer returns the default random command synthesizer.
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{}
}

// Synthesize produces one command matching spec, drawing player references
// from names.
func (s *Synthesizer) Synthesize(spec *Spec, names []string, rng *rand.Rand) (string, error) {
	if spec == nil {
		return "", ErrEmptySpec
	}
	var b strings.Builder
	if err := s.derive(&b, spec, names, rng); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (s *Synthesizer) derive(b *strings.Builder, spec *Spec, names []string, rng *rand.Rand) error {
	switch {
	case spec.Int != nil:
		return deriveInt(b, spec.Int, rng)
	case spec.Token != "":
		b.WriteString(spec.Token)
		return nil
	case spec.Player:
		if len(names) == 0 {
			return ErrNoPlayers
		}
		b.WriteString(names[rng.Intn(len(names))])
		return nil
	case spec.Space:
		b.WriteString(" ")
		return nil
	case spec.Enum != nil:
		if len(spec.Enum.Values) == 0 {
			return errors.New("enum spec has no values")
		}
		b.WriteString(spec.Enum.Values[rng.Intn(len(spec.Enum.Values))])
		return nil
	case len(spec.OneOf) > 0:
		pick := spec.OneOf[rng.Intn(len(spec.OneOf))]
		return s.derive(b, &pick, names, rng)
	case len(spec.Chain) > 0:
		for i := range spec.Chain {
			if err := s.derive(b, &spec.Chain[i], names, rng); err != nil {
				return err
			}
		}
		return nil
	case spec.Opt != nil:
		if rng.Intn(2) == 0 {
			return nil
		}
		return s.derive(b, spec.Opt, names, rng)
	case spec.Many != nil:
		return s.deriveMany(b, spec.Many, names, rng)
	default:
		return ErrEmptySpec
	}
}

func deriveInt(b *strings.Builder, spec *IntSpec, rng *rand.Rand) error {
	min, max := defaultIntMin, defaultIntMax
	if spec.Min != nil {
		min = *spec.Min
	}
	if spec.Max != nil {
		max = *spec.Max
	}
	if min > max {
		return fmt.Errorf("int spec bounds are inverted: min %d > max %d", min, max)
	}
	b.WriteString(strconv.Itoa(min + rng.Intn(max-min+1)))
	return nil
}

func (s *Synthesizer) deriveMany(b *strings.Builder, spec *ManySpec, names []string, rng *rand.Rand) error {
	if spec.Spec == nil {
		return errors.New("many spec has no inner grammar")
	}
	min, max := 0, defaultManyMax
	if spec.Min != nil {
		min = *spec.Min
	}
	if spec.Max != nil {
		max = *spec.Max
	}
	if min > max {
		return fmt.Errorf("many spec bounds are inverted: min %d > max %d", min, max)
	}
	delim := spec.Delim
	if delim == "" {
		delim = " "
	}
	n := min + rng.Intn(max-min+1)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(delim)
		}
		if err := s.derive(b, spec.Spec, names, rng); err != nil {
			return err
		}
	}
	return nil
}
