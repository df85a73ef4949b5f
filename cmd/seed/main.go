// Package main loads a YAML catalog into the local directory database.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	seedcmd "github.com/louisbranch/toolatlas/internal/cmd/seed"
	"github.com/louisbranch/toolatlas/internal/platform/config"
)

func main() {
	log.SetPrefix("[SEED] ")
	cfg, err := seedcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := seedcmd.Run(ctx, cfg); err != nil {
		config.Exitf("seed failed: %v", err)
	}
}
