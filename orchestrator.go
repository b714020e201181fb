package gamefuzz

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/louisbranch/gamefuzz/grammar"
	"github.com/louisbranch/gamefuzz/internal/platform/random"
)

const defaultStatusInterval = time.Second

// stepBuffer sizes the shared step channel so worker sends rarely block.
const stepBuffer = 1024

// Options controls a fuzzing run.
type Options struct {
	// Workers is the number of fuzzing lanes. Defaults to GOMAXPROCS.
	Workers int
	// StatusInterval is the minimum delay between tally prints. Defaults to
	// one second.
	StatusInterval time.Duration
	// Output receives tally lines and the fatal diagnostic. Defaults to
	// standard error.
	Output io.Writer
	// Synthesizer overrides the command synthesizer. Defaults to the grammar
	// package's uniform random synthesizer.
	Synthesizer Synthesizer
}

// Fuzz drives backends constructed by factory with random commands until a
// fatal step is observed, then signals every worker to stop and returns nil.
// Under error-free operation it blocks until ctx is cancelled, in which case
// it returns the context's error. Backend construction failures abort the run
// before any worker starts and are returned directly.
func Fuzz(ctx context.Context, factory BackendFactory) error {
	return FuzzWithOptions(ctx, factory, Options{})
}

// FuzzWithOptions is Fuzz with explicit run options.
func FuzzWithOptions(ctx context.Context, factory BackendFactory, opts Options) error {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	interval := opts.StatusInterval
	if interval <= 0 {
		interval = defaultStatusInterval
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	synth := opts.Synthesizer
	if synth == nil {
		synth = grammar.NewSynthesizer()
	}

	// Every worker's backend and fuzzer is built before anything spawns. A
	// harness that cannot talk to its target has no useful work to do.
	fuzzers := make([]*Fuzzer, workers)
	g, gctx := errgroup.WithContext(ctx)
	for i := range fuzzers {
		i := i
		g.Go(func() error {
			backend, err := factory(gctx)
			if err != nil {
				return fmt.Errorf("construct backend: %w", err)
			}
			seed, err := random.NewSeed()
			if err != nil {
				return fmt.Errorf("seed worker rng: %w", err)
			}
			fuzzer, err := NewFuzzer(gctx, backend, synth, rand.New(rand.NewSource(seed)))
			if err != nil {
				return err
			}
			fuzzers[i] = fuzzer
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	steps := make(chan Step, stepBuffer)
	stops := make([]chan struct{}, workers)
	for i, fuzzer := range fuzzers {
		stop := make(chan struct{})
		stops[i] = stop
		go worker(ctx, fuzzer, steps, stop)
	}
	defer func() {
		for _, stop := range stops {
			close(stop)
		}
	}()

	var tally Tally
	lastOutputAt := time.Now()
	for {
		if time.Since(lastOutputAt) > interval {
			fmt.Fprintln(out, tally.Render())
			lastOutputAt = time.Now()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case step := <-steps:
			if step.Kind == StepError {
				printDiagnostic(out, step)
				return nil
			}
			tally.Count(step)
		}
	}
}

// printDiagnostic dumps everything known about a fatal step: the failure
// message, the attempted command, and the last game snapshot.
func printDiagnostic(out io.Writer, step Step) {
	command := step.Command
	if command == "" {
		command = "none"
	}
	game := "none"
	if step.Session != nil {
		game = fmt.Sprintf("%+v", *step.Session)
	}
	fmt.Fprintf(out, "\nError detected: %s\n\nCommand: %s\n\nGame: %s\n", step.Err, command, game)
}
