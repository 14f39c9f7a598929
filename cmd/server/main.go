package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"branch-visit-planner/internal/adapters/cache"
	"branch-visit-planner/internal/adapters/distance"
	"branch-visit-planner/internal/adapters/repositories"
	"branch-visit-planner/internal/api"
	"branch-visit-planner/internal/config"
	pgdb "branch-visit-planner/internal/platform/db"
	"branch-visit-planner/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Google Distance Matrix, the selected
// matrix cache) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/branches.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/branches.json")
	port := config.Get("PORT", "8080")

	apiKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	if strings.TrimSpace(apiKey) == "" {
		log.Fatal("GOOGLE_MAPS_API_KEY is required")
	}

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(db, seedPath); err != nil {
		log.Fatal(err)
	}

	matrixCache, cleanup, err := selectMatrixCache(db)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	// The oracle keeps matrix cells in a persistent cache to avoid
	// re-fetching pairwise distances on every planning run.
	oracle, err := distance.NewGoogleDistanceOracle(apiKey, matrixCache)
	if err != nil {
		log.Fatal(err)
	}

	repo := repositories.NewSqliteBranchRepository(db)
	router := api.NewRouter(repo, oracle)

	// Timeouts are tuned for cold-cache planning (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// selectMatrixCache picks the cache backend: redis when REDIS_URL is set,
// a shared postgres cache when MATRIX_CACHE_DATABASE_URL is set, otherwise
// the local sqlite database.
func selectMatrixCache(db *sql.DB) (ports.MatrixCache, func(), error) {
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("select matrix cache: parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		ttl := time.Duration(config.GetInt("MATRIX_CACHE_TTL_HOURS", 24)) * time.Hour
		log.Println("Using redis matrix cache")
		return cache.NewRedisMatrixCache(client, ttl), func() { _ = client.Close() }, nil
	}

	if pgURL := os.Getenv("MATRIX_CACHE_DATABASE_URL"); pgURL != "" {
		pg, err := pgdb.Open(pgURL)
		if err != nil {
			return nil, nil, fmt.Errorf("select matrix cache: %w", err)
		}
		log.Println("Using shared postgres matrix cache")
		return cache.NewSQLMatrixCache(pg), func() { _ = pg.Close() }, nil
	}

	return cache.NewSqliteMatrixCache(db), func() {}, nil
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
