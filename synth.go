package gamefuzz

import (
	"math/rand"

	"github.com/louisbranch/gamefuzz/grammar"
)

// Synthesizer produces one syntactically valid random command from a command
// grammar. Synthesis failures are unrecoverable for the iteration that
// requested them; the fuzzer reports them as fatal steps and never retries.
type Synthesizer interface {
	Synthesize(spec *grammar.Spec, names []string, rng *rand.Rand) (string, error)
}
