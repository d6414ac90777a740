package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cargo-offer-service/internal/domain"
	"cargo-offer-service/internal/platform/obs"

	"github.com/google/uuid"
)

// Postgres-backed implementation of the CostSettingRepository port, used by
// deployments that point DATABASE_URL at a shared database instead of the
// local SQLite file.
type SQLCostSettingRepository struct{ DB *sql.DB }

func NewSQLCostSettingRepository(db *sql.DB) *SQLCostSettingRepository {
	return &SQLCostSettingRepository{DB: db}
}

func (s *SQLCostSettingRepository) ListCostSettings(ctx context.Context) (_ []domain.CostSetting, err error) {
	defer obs.Time(ctx, "settings.List")(&err)
	return s.list(ctx, false)
}

func (s *SQLCostSettingRepository) ListEnabledCostSettings(ctx context.Context) (_ []domain.CostSetting, err error) {
	defer obs.Time(ctx, "settings.ListEnabled")(&err)
	return s.list(ctx, true)
}

func (s *SQLCostSettingRepository) list(ctx context.Context, enabledOnly bool) ([]domain.CostSetting, error) {
	if s.DB == nil {
		return nil, errors.New("cost setting repository: db is nil")
	}

	query := `
	SELECT setting_id, type, category, base_value, multiplier, currency, is_enabled, description
	FROM cost_settings
	`
	if enabledOnly {
		query += " WHERE is_enabled"
	}
	query += " ORDER BY type;"

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list cost settings: query cost_settings table: %w", err)
	}
	defer rows.Close()

	settings := make([]domain.CostSetting, 0, 8)
	for rows.Next() {
		var (
			id      string
			setting domain.CostSetting
		)
		err := rows.Scan(&id, &setting.Type, &setting.Category, &setting.BaseValue,
			&setting.Multiplier, &setting.Currency, &setting.IsEnabled, &setting.Description)
		if err != nil {
			return nil, fmt.Errorf("list cost settings: scan row: %w", err)
		}

		setting.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("list cost settings: parse setting_id %q: %w", id, err)
		}
		settings = append(settings, setting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cost settings: row iteration: %w", err)
	}

	return settings, nil
}

func (s *SQLCostSettingRepository) UpdateCostSettings(ctx context.Context, settings []domain.CostSetting) (_ []domain.CostSetting, err error) {
	defer obs.Time(ctx, "settings.Update")(&err)

	if s.DB == nil {
		return nil, errors.New("cost setting repository: db is nil")
	}
	if len(settings) == 0 {
		return s.list(ctx, false)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("update cost settings: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO cost_settings (setting_id, type, category, base_value, multiplier, currency, is_enabled, description)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (setting_id) DO UPDATE
	SET type = EXCLUDED.type,
		category = EXCLUDED.category,
		base_value = EXCLUDED.base_value,
		multiplier = EXCLUDED.multiplier,
		currency = EXCLUDED.currency,
		is_enabled = EXCLUDED.is_enabled,
		description = EXCLUDED.description;
	`)
	if err != nil {
		return nil, fmt.Errorf("update cost settings: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, setting := range settings {
		id := setting.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		_, err := stmt.ExecContext(ctx, id.String(), setting.Type, string(setting.Category),
			setting.BaseValue, setting.Multiplier, setting.Currency, setting.IsEnabled, setting.Description)
		if err != nil {
			return nil, fmt.Errorf("update cost settings: upsert type=%q: %w", setting.Type, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update cost settings: commit: %w", err)
	}

	return s.list(ctx, false)
}

// InitSchemaPostgres creates the cost_settings, routes, and offers tables
// for the shared-database deployment.
func InitSchemaPostgres(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: db is nil")
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS cost_settings (
			setting_id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			category TEXT NOT NULL,
			base_value DOUBLE PRECISION NOT NULL,
			multiplier DOUBLE PRECISION NOT NULL DEFAULT 1.0,
			currency TEXT NOT NULL DEFAULT 'EUR',
			is_enabled BOOLEAN NOT NULL DEFAULT TRUE,
			description TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS routes (
			route_id TEXT PRIMARY KEY,
			payload JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS offers (
			offer_id TEXT PRIMARY KEY,
			route_id TEXT NOT NULL,
			status TEXT NOT NULL,
			payload JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_offers_route_id ON offers(route_id);`,
	}

	for i, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	return nil
}
