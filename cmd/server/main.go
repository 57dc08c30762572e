package main

import (
	"context"
	"log"

	"github.com/parksujin/lifeshare/internal/server"
	"github.com/parksujin/lifeshare/internal/server/config"
)

func main() {
	ctx := context.Background()

	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("app init error: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("app error: %v", err)
	}
}
