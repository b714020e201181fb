package grpc

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDialError_MessageAndUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &DialError{Stage: DialStageHealth, Err: inner}

	if got, want := err.Error(), "gRPC health error: boom"; got != want {
		t.Fatalf("error = %q, want %q", got, want)
	}
	if !errors.Is(err, inner) {
		t.Fatal("expected unwrap to reach the inner error")
	}
}

func TestDialWithHealth_UnreachableBackend(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := DialWithHealth(ctx, "localhost:1", 150*time.Millisecond, DefaultClientDialOptions()...)
	if err == nil {
		t.Fatal("expected an error dialing an unreachable backend")
	}
	var dialErr *DialError
	if !errors.As(err, &dialErr) {
		t.Fatalf("error = %T, want *DialError", err)
	}
}
