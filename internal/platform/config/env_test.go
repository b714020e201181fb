package config

import "testing"

func TestParseEnv_LoadsValues(t *testing.T) {
	type testConfig struct {
		Addr    string `env:"GAMEFUZZ_TEST_ADDR" envDefault:"localhost:1"`
		Workers int    `env:"GAMEFUZZ_TEST_WORKERS" envDefault:"2"`
	}
	t.Setenv("GAMEFUZZ_TEST_WORKERS", "7")

	var cfg testConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Addr != "localhost:1" {
		t.Fatalf("addr = %q, want %q", cfg.Addr, "localhost:1")
	}
	if cfg.Workers != 7 {
		t.Fatalf("workers = %d, want 7", cfg.Workers)
	}
}

func TestParseEnv_InvalidValue(t *testing.T) {
	type testConfig struct {
		Workers int `env:"GAMEFUZZ_TEST_WORKERS"`
	}
	t.Setenv("GAMEFUZZ_TEST_WORKERS", "not-a-number")

	var cfg testConfig
	if err := ParseEnv(&cfg); err == nil {
		t.Fatal("expected an error for a non-numeric value")
	}
}
