package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"cargo-offer-service/internal/adapters/cache"
	"cargo-offer-service/internal/adapters/funfact"
	"cargo-offer-service/internal/adapters/maps"
	"cargo-offer-service/internal/adapters/repositories"
	"cargo-offer-service/internal/api"
	"cargo-offer-service/internal/config"
	"cargo-offer-service/internal/ports"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, mock maps, fun fact provider) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/cost_settings.json")
	port := config.Get("PORT", "8080")

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Initialize schema and seed default cost settings on startup for local runs.
	if err := initAndSeed(db, seedPath); err != nil {
		log.Fatal(err)
	}

	deps := api.Dependencies{
		Maps:      maps.NewMockMapsProvider(nil),
		EmptyLegs: maps.NewStaticEmptyDrivingSource(),
		Routes:    repositories.NewSqliteRouteRepository(db),
		Settings:  repositories.NewSqliteCostSettingRepository(db),
		Offers:    repositories.NewSqliteOfferRepository(db),
		FunFacts:  newFunFactProvider(),
		Cache:     newRouteCache(),
	}

	router := api.NewRouter(deps)

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// newFunFactProvider picks the chat-completion client when an API key is
// configured and falls back to canned facts otherwise, so local runs never
// need network access.
func newFunFactProvider() ports.FunFactProvider {
	apiKey := os.Getenv("FUNFACT_API_KEY")
	if strings.TrimSpace(apiKey) == "" {
		log.Println("FUNFACT_API_KEY not set, using static fun facts")
		return funfact.StaticProvider{}
	}

	provider, err := funfact.NewHTTPProvider(apiKey, os.Getenv("FUNFACT_BASE_URL"), os.Getenv("FUNFACT_MODEL"))
	if err != nil {
		log.Printf("fun fact provider init failed, using static fun facts: %v", err)
		return funfact.StaticProvider{}
	}
	return provider
}

// newRouteCache returns a Redis-backed route cache when REDIS_URL is set.
// The cache is optional; a nil cache means every lookup hits the database.
func newRouteCache() ports.RouteCache {
	redisURL := os.Getenv("REDIS_URL")
	if strings.TrimSpace(redisURL) == "" {
		return nil
	}

	c, err := cache.NewRedisRouteCache(redisURL, 24*time.Hour)
	if err != nil {
		log.Printf("route cache init failed, continuing without cache: %v", err)
		return nil
	}
	return c
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
