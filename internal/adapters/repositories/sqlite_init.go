package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"cargo-offer-service/internal/domain"

	"github.com/google/uuid"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createCostSettingsQuery := `
	CREATE TABLE IF NOT EXISTS cost_settings (
		setting_id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		category TEXT NOT NULL,
		base_value REAL NOT NULL,
		multiplier REAL NOT NULL DEFAULT 1.0,
		currency TEXT NOT NULL DEFAULT 'EUR',
		is_enabled INTEGER NOT NULL DEFAULT 1,
		description TEXT NOT NULL DEFAULT ''
	);
	`

	createRoutesQuery := `
	CREATE TABLE IF NOT EXISTS routes (
		route_id TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`

	createOffersQuery := `
	CREATE TABLE IF NOT EXISTS offers (
		offer_id TEXT PRIMARY KEY,
		route_id TEXT NOT NULL,
		status TEXT NOT NULL,
		payload TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_offers_route_id
	ON offers(route_id);
	`

	statements := []string{
		createCostSettingsQuery,
		createRoutesQuery,
		createOffersQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type CostSettingSeed struct {
	SettingID   string  `json:"setting_id"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	BaseValue   float64 `json:"base_value"`
	Multiplier  float64 `json:"multiplier"`
	Currency    string  `json:"currency"`
	IsEnabled   bool    `json:"is_enabled"`
	Description string  `json:"description"`
}

// Populate the database with default cost settings from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed cost settings: read %q: %w", jsonPath, err)
	}

	var data []CostSettingSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed cost settings: parse json: %w", err)
	}

	rows := make([]CostSettingSeed, 0, len(data))
	for i, item := range data {
		if _, err := uuid.Parse(item.SettingID); err != nil {
			return fmt.Errorf("seed cost settings: invalid setting_id at index %d: %q", i+1, item.SettingID)
		}

		if strings.TrimSpace(item.Type) == "" {
			return fmt.Errorf("seed cost settings: item at index %d: type cannot be empty", i+1)
		}
		if !domain.ValidCategory(domain.CostCategory(item.Category)) {
			return fmt.Errorf("seed cost settings: item %q: unknown category %q", item.Type, item.Category)
		}
		if item.BaseValue < 0 || item.Multiplier < 0 {
			return fmt.Errorf("seed cost settings: item %q: negative base value or multiplier", item.Type)
		}
		rows = append(rows, item)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed cost settings: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT OR REPLACE INTO cost_settings (
		setting_id,
		type,
		category,
		base_value,
		multiplier,
		currency,
		is_enabled,
		description
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed cost settings: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range rows {
		if _, err := stmt.Exec(s.SettingID, s.Type, s.Category, s.BaseValue, s.Multiplier, s.Currency, s.IsEnabled, s.Description); err != nil {
			return fmt.Errorf("seed cost settings: insert type=%q: %w", s.Type, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed cost settings: commit tx: %w", err)
	}

	return nil
}
