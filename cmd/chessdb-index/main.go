// Command chessdb-index is a satellite SQLite-backed indexer: it drains a
// PGN path or glob through internal/reader and internal/dbindex, storing one
// deduplicated row per game for fast player/opening lookups without
// re-scanning PGN files on every query. Grounded on
// kyleboon-gochess/cmd/gochess/main.go's flag-struct-then-run shape and
// internal/db/db_cmd.go's command bodies (ImportCommand, StatsCommand).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/kyleboon/chessdb/internal/dbindex"
	"github.com/kyleboon/chessdb/internal/reader"
)

type config struct {
	pathPattern string
	dbPath      string
	compression string
	showStats   bool
}

func parseFlags() *config {
	cfg := &config{}

	flag.StringVar(&cfg.pathPattern, "pgn", "", "PGN path or glob pattern (required)")
	flag.StringVar(&cfg.dbPath, "database", "chessdb-index.db", "path to the index database")
	flag.StringVar(&cfg.compression, "compression", "", `"zstd" or empty for none`)
	flag.BoolVar(&cfg.showStats, "stats", false, "print player statistics after indexing")

	flag.Parse()

	if cfg.pathPattern == "" {
		fmt.Fprintln(os.Stderr, "Error: -pgn is required")
		flag.Usage()
		os.Exit(1)
	}

	return cfg
}

func main() {
	log.SetPrefix("[chessdb-index] ")
	cfg := parseFlags()

	var compressionArg *string
	if cfg.compression != "" {
		compressionArg = &cfg.compression
	}
	comp, err := reader.ParseCompression(compressionArg)
	if err != nil {
		log.Fatalf("invalid compression: %v", err)
	}

	store, err := dbindex.Open(cfg.dbPath)
	if err != nil {
		log.Fatalf("opening index database: %v", err)
	}
	defer store.Close()

	fmt.Printf("Indexing %s into %s...\n", cfg.pathPattern, cfg.dbPath)
	result, err := dbindex.IndexPath(store, cfg.pathPattern, comp, nil)
	if err != nil {
		log.Fatalf("indexing failed: %v", err)
	}

	fmt.Printf("Imported %d games, skipped %d duplicates\n", result.Imported, result.Skipped)
	if len(result.Errors) > 0 {
		fmt.Printf("Encountered %d row-level errors:\n", len(result.Errors))
		for i, rowErr := range result.Errors {
			if i >= 10 {
				fmt.Printf("  ... and %d more\n", len(result.Errors)-10)
				break
			}
			fmt.Printf("  - %v\n", rowErr)
		}
	}

	if cfg.showStats {
		printStats(store)
	}
}

func printStats(store *dbindex.Store) {
	stats, err := store.PlayerStatsAll()
	if err != nil {
		log.Fatalf("computing player stats: %v", err)
	}

	fmt.Printf("\n%-20s %-6s %-6s %-6s %-6s %-8s\n", "PLAYER", "GAMES", "WINS", "LOSSES", "DRAWS", "WIN RATE")
	fmt.Println(strings.Repeat("-", 64))
	for _, s := range stats {
		name := s.Name
		if len(name) > 20 {
			name = name[:17] + "..."
		}
		fmt.Printf("%-20s %-6d %-6d %-6d %-6d %-7.1f%%\n", name, s.Games, s.Wins, s.Losses, s.Draws, s.WinRate)
	}
}
