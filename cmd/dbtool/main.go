package main

import (
	"flag"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"branch-visit-planner/internal/adapters/repositories"
	"branch-visit-planner/internal/platform/db"
)

// dbtool provisions the shared postgres matrix cache used by multi-instance
// deployments. The -truncate flag clears cached cells so stale
// traffic-dependent durations refresh on the next planning run.
func main() {
	truncate := flag.Bool("truncate", false, "clear all cached matrix cells")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pg, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	log.Println("Initializing matrix cache schema...")
	if err := repositories.InitPostgresMatrixCache(pg); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if *truncate {
		log.Println("Truncating matrix cache...")
		if err := repositories.TruncateMatrixCache(pg); err != nil {
			log.Fatalf("truncate failed: %v", err)
		}
		log.Println("Matrix cache cleared.")
	}
}
