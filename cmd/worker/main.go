package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"comunidad/internal/app/bootstrap"
)

// Worker process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build module wiring.
// 3) Run every sweep once, then hand off to cron until shutdown.
func main() {
	log.Println("comunidad worker starting")
	app, err := bootstrap.BuildWorker()
	if err != nil {
		log.Fatalf("bootstrap worker failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("worker shutdown close failed: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("comunidad worker stopped with error: %v", err)
	}
}
