package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"caixa/internal/app/bootstrap"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (ports + adapters + modules).
// 3) Start HTTP server.
func main() {
	app, err := bootstrap.BuildAPI()
	if err != nil {
		log.Fatalf("caixa api bootstrap failed: %v", err)
	}
	defer func() {
		_ = app.Close()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("caixa api stopped: %v", err)
	}
}
