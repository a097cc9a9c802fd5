package main

import (
	"log"

	"github.com/joho/godotenv"

	"sheetscope/adapters/eparse"
	"sheetscope/adapters/sqlite"
	"sheetscope/app"
	"sheetscope/internal/config"
	"sheetscope/ui"
)

func main() {
	// .env is optional; environment variables win either way.
	if err := godotenv.Load(); err != nil {
		log.Printf("[main] no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] configuration error: %v", err)
	}

	runner := eparse.NewRunner(cfg.Extractor)
	service := app.NewExtractionService(runner, sqlite.NewChunkStore(), cfg.Upload.MaxCached)
	defer service.Shutdown()

	server, err := ui.NewServer(cfg, service)
	if err != nil {
		log.Fatalf("[main] failed to build UI server: %v", err)
	}

	log.Printf("[main] extraction tool: %s", cfg.Extractor.Binary)
	if err := server.Start(); err != nil {
		log.Fatalf("[main] server stopped: %v", err)
	}
}
