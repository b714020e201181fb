// Package fuzz parses fuzz command flags and launches the fuzzing run.
package fuzz

import (
	"context"
	"flag"
	"fmt"
	"net"
	"time"

	"github.com/louisbranch/gamefuzz"
	"github.com/louisbranch/gamefuzz/grpcgame"
	"github.com/louisbranch/gamefuzz/guess"
	entrypoint "github.com/louisbranch/gamefuzz/internal/platform/cmd"
)

// Config holds fuzz command configuration.
type Config struct {
	BackendAddr    string        `env:"GAMEFUZZ_BACKEND_ADDR"`
	Workers        int           `env:"GAMEFUZZ_WORKERS"`
	StatusInterval time.Duration `env:"GAMEFUZZ_STATUS_INTERVAL" envDefault:"1s"`
	DialTimeout    time.Duration `env:"GAMEFUZZ_DIAL_TIMEOUT" envDefault:"2s"`
	ServePort      int           `env:"GAMEFUZZ_SERVE_PORT"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.BackendAddr, "backend-addr", cfg.BackendAddr, "The game backend gRPC address (empty fuzzes the built-in game)")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "The number of fuzzing workers (0 uses all processors)")
	fs.DurationVar(&cfg.StatusInterval, "status-interval", cfg.StatusInterval, "Minimum delay between tally prints")
	fs.DurationVar(&cfg.DialTimeout, "dial-timeout", cfg.DialTimeout, "Game backend dial timeout")
	fs.IntVar(&cfg.ServePort, "serve-port", cfg.ServePort, "Host the built-in game backend on this port instead of fuzzing")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the fuzzing run, or hosts the built-in game backend when a serve
// port is configured.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceFuzz, func(ctx context.Context) error {
		if cfg.ServePort > 0 {
			return serve(ctx, cfg.ServePort)
		}
		factory := gamefuzz.NewGamerFactory[guess.Game]()
		if cfg.BackendAddr != "" {
			factory = grpcgame.NewFactory(cfg.BackendAddr, cfg.DialTimeout)
		}
		return gamefuzz.FuzzWithOptions(ctx, factory, gamefuzz.Options{
			Workers:        cfg.Workers,
			StatusInterval: cfg.StatusInterval,
		})
	})
}

func serve(ctx context.Context, port int) error {
	backend, err := gamefuzz.NewGamerFactory[guess.Game]()(ctx)
	if err != nil {
		return err
	}
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", port, err)
	}
	return grpcgame.Serve(ctx, lis, backend)
}
