// Package main starts the fuzz harness process lifecycle.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	fuzzcmd "github.com/louisbranch/gamefuzz/internal/cmd/fuzz"
	"github.com/louisbranch/gamefuzz/internal/platform/config"
)

func main() {
	cfg, err := fuzzcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[FUZZ] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fuzzcmd.Run(ctx, cfg); err != nil && ctx.Err() == nil {
		log.Fatalf("fuzz run failed: %v", err)
	}
}
