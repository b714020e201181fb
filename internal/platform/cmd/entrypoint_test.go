package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

func TestParseConfig_RequiresTarget(t *testing.T) {
	var cfg *struct{}
	if err := ParseConfig(cfg); err == nil {
		t.Fatal("expected an error for a nil config target")
	}
}

func TestParseArgs_RequiresFlagSet(t *testing.T) {
	if err := ParseArgs(nil, nil); err == nil {
		t.Fatal("expected an error for a nil flag set")
	}
	fs := flag.NewFlagSet("fuzz", flag.ContinueOnError)
	if err := ParseArgs(fs, nil); err != nil {
		t.Fatalf("parse args: %v", err)
	}
}

func TestRunWithTelemetry_RequiresServiceAndRun(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), " ", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected an error for a blank service name")
	}
	if err := RunWithTelemetry(context.Background(), ServiceFuzz, nil); err == nil {
		t.Fatal("expected an error for a nil run function")
	}
}

func TestRunWithTelemetry_PropagatesRunError(t *testing.T) {
	t.Setenv("GAMEFUZZ_OTEL_ENDPOINT", "")
	want := errors.New("run failed")

	err := RunWithTelemetry(context.Background(), ServiceFuzz, func(context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}
