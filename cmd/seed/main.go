// Command seed loads the sample message dataset into the database, for
// local development without a configured gateway.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tariqak/tariqak/internal/sqlite"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		dbPath string
		force  bool
	)

	flag.StringVar(&dbPath, "db", envOrDefault("DATABASE_PATH", "./tariqak.db"), "SQLite database path")
	flag.BoolVar(&force, "force", false, "Seed even if the database already has messages")
	flag.Parse()

	repo, err := sqlite.NewRepository(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer repo.Close()

	ctx := context.Background()

	if !force {
		count, err := repo.CountPosts(ctx)
		if err != nil {
			return fmt.Errorf("count posts: %w", err)
		}
		if count > 0 {
			fmt.Printf("database already has %d messages, use -force to seed anyway\n", count)
			return nil
		}
	}

	inserted, err := repo.SeedSampleData(ctx, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("seed sample data: %w", err)
	}

	fmt.Printf("seeded %d sample messages into %s\n", inserted, dbPath)
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
