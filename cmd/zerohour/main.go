package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	checkscmd "github.com/louisbranch/zerohour.games/internal/cmd/checks"
	"github.com/louisbranch/zerohour.games/internal/platform/config"
)

func main() {
	cfg, err := checkscmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[ZEROHOUR] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := checkscmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to resolve check: %v", err)
	}
}
