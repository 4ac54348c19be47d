// Package main starts the browser-facing web service.
//
// This process serves the navigation bar, the echoing home page and the
// About page, and keeps home page view state in memory.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	webcmd "github.com/louisbranch/navecho/internal/cmd/web"
	"go.uber.org/zap"
)

func main() {
	cfg, err := webcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	logger, err := webcmd.NewLogger(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := webcmd.Run(ctx, cfg, logger); err != nil {
		logger.Fatal("failed to serve", zap.Error(err))
	}
}
