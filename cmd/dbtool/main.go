package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"cargo-offer-service/internal/adapters/repositories"
	"cargo-offer-service/internal/config"
	"cargo-offer-service/internal/domain"
	"cargo-offer-service/internal/platform/db"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// dbtool initializes the Postgres schema and seeds default cost settings for
// shared-database deployments. Local runs use the embedded SQLite path in
// cmd/server instead.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchemaPostgres(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	seedPath := config.Get("SEED_PATH", "data/seeds/cost_settings.json")
	log.Println("Seeding cost settings...")
	settings, err := loadSeedSettings(seedPath)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	repo := repositories.NewSQLCostSettingRepository(conn)
	if _, err := repo.UpdateCostSettings(context.Background(), settings); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}

func loadSeedSettings(path string) ([]domain.CostSetting, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load seed settings: read %q: %w", path, err)
	}

	var seeds []repositories.CostSettingSeed
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return nil, fmt.Errorf("load seed settings: parse json: %w", err)
	}

	settings := make([]domain.CostSetting, 0, len(seeds))
	for i, s := range seeds {
		id, err := uuid.Parse(s.SettingID)
		if err != nil {
			return nil, fmt.Errorf("load seed settings: invalid setting_id at index %d: %q", i+1, s.SettingID)
		}
		settings = append(settings, domain.CostSetting{
			ID:          id,
			Type:        s.Type,
			Category:    domain.CostCategory(s.Category),
			BaseValue:   s.BaseValue,
			Multiplier:  s.Multiplier,
			Currency:    s.Currency,
			IsEnabled:   s.IsEnabled,
			Description: s.Description,
		})
	}

	return settings, nil
}
