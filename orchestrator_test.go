package gamefuzz

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// failAfterBackend plays a few commands and then fails at the transport
// level, driving the orchestrator into its fatal branch.
type failAfterBackend struct {
	mu    sync.Mutex
	plays int
	limit int
}

func (f *failAfterBackend) PlayerCounts(context.Context) ([]int, error) {
	return []int{2}, nil
}

func (f *failAfterBackend) NewGame(context.Context, int) (*Session, error) {
	return activeSession(0), nil
}

func (f *failAfterBackend) Play(context.Context, string, json.RawMessage, int, []string) (PlayOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plays++
	if f.plays > f.limit {
		return PlayOutcome{}, errors.New("backend exploded")
	}
	return PlayOutcome{Kind: PlayApplied, Session: activeSession(0)}, nil
}

func TestFuzzWithOptions_HaltsOnFatalStep(t *testing.T) {
	var out bytes.Buffer
	factory := func(context.Context) (Backend, error) {
		return &failAfterBackend{limit: 3}, nil
	}

	err := FuzzWithOptions(context.Background(), factory, Options{
		Workers: 2,
		Output:  &out,
	})
	if err != nil {
		t.Fatalf("fuzz: %v", err)
	}
	if !strings.Contains(out.String(), "Error detected: ") {
		t.Fatalf("output = %q, want a fatal diagnostic", out.String())
	}
	if !strings.Contains(out.String(), "backend exploded") {
		t.Fatalf("output = %q, want the backend failure message", out.String())
	}
}

func TestFuzzWithOptions_ConstructionFailureAborts(t *testing.T) {
	factory := func(context.Context) (Backend, error) {
		return nil, errors.New("no backend for you")
	}

	err := FuzzWithOptions(context.Background(), factory, Options{Workers: 2})
	if err == nil {
		t.Fatal("expected a construction error")
	}
	if !strings.Contains(err.Error(), "no backend for you") {
		t.Fatalf("err = %v, want the factory failure", err)
	}
}

func TestFuzzWithOptions_ContextCancelStopsRun(t *testing.T) {
	factory := func(context.Context) (Backend, error) {
		return &failAfterBackend{limit: int(^uint(0) >> 1)}, nil
	}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- FuzzWithOptions(ctx, factory, Options{Workers: 1, Output: &bytes.Buffer{}})
	}()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("err = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("fuzz did not return after cancellation")
	}
}

func TestFuzzWithOptions_PrintsTally(t *testing.T) {
	var out safeBuffer
	factory := func(context.Context) (Backend, error) {
		return &failAfterBackend{limit: int(^uint(0) >> 1)}, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	err := FuzzWithOptions(ctx, factory, Options{
		Workers:        1,
		StatusInterval: 20 * time.Millisecond,
		Output:         &out,
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want context.DeadlineExceeded", err)
	}
	if !strings.Contains(out.String(), "Games started: ") {
		t.Fatalf("output = %q, want tally lines", out.String())
	}
}

// safeBuffer guards a bytes.Buffer against reads racing the consuming loop.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
