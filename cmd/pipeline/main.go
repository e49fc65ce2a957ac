package main

import (
	"context"
	"dart_disclosure/pkg/core/pipeline"
	"dart_disclosure/pkg/core/watchlist"
	"log"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	cfg := pipeline.Config{
		APIKey:    os.Getenv("DART_API_KEY"),
		OutputDir: os.Getenv("DART_OUTPUT_DIR"),
		CachePath: os.Getenv("DART_CORP_CODE_CACHE"),
	}

	if path := os.Getenv("DART_WATCHLIST"); path != "" {
		entries, err := watchlist.LoadFile(path)
		if err != nil {
			log.Fatalf("Failed to load watch-list %s: %v", path, err)
		}
		cfg.WatchList = entries
	}

	if err := pipeline.New(cfg).Run(context.Background()); err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}
}
