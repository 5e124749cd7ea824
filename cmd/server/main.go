// Command server runs the records core: comments, attachments, and the
// activity log behind their service APIs.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/crm-backend/internal/app"
)

func main() {
	// Missing .env is fine; config falls back to real env vars.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("application failed: %v", err)
	}
}
