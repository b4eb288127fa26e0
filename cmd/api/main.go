package main

import (
	"context"
	"log"

	"comunidad/internal/app/bootstrap"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build module wiring.
// 3) Serve the governance HTTP API until the listener stops.
func main() {
	log.Println("comunidad api starting")
	app, err := bootstrap.BuildAPI()
	if err != nil {
		log.Fatalf("bootstrap api failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("api shutdown close failed: %v", err)
		}
	}()

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("comunidad api stopped with error: %v", err)
	}
}
