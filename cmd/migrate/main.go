package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/Rrens/boardsync/internal/config"
	"github.com/Rrens/boardsync/internal/repository/sqlstore"
)

func main() {
	down := flag.Bool("down", false, "roll back every migration instead of applying them")
	flag.Parse()

	// Load .env file if it exists
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Connecting to %s database...\n", cfg.Database.Driver)

	// Connect to database
	db, err := sqlstore.NewDB(context.Background(), cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	direction := "up"
	if *down {
		direction = "down"
	}

	if err := db.Migrate(*down); err != nil {
		fmt.Fprintf(os.Stderr, "Migration %s failed: %v\n", direction, err)
		os.Exit(1)
	}

	fmt.Printf("Migrations %s applied successfully\n", direction)
}
