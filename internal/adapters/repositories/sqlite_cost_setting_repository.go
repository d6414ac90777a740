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

// SQLite-backed implementation of the CostSettingRepository port.
type SqliteCostSettingRepository struct{ DB *sql.DB }

func NewSqliteCostSettingRepository(db *sql.DB) *SqliteCostSettingRepository {
	return &SqliteCostSettingRepository{DB: db}
}

func (s *SqliteCostSettingRepository) ListCostSettings(ctx context.Context) (_ []domain.CostSetting, err error) {
	defer obs.Time(ctx, "settings.List")(&err)
	return s.list(ctx, false)
}

func (s *SqliteCostSettingRepository) ListEnabledCostSettings(ctx context.Context) (_ []domain.CostSetting, err error) {
	defer obs.Time(ctx, "settings.ListEnabled")(&err)
	return s.list(ctx, true)
}

func (s *SqliteCostSettingRepository) list(ctx context.Context, enabledOnly bool) ([]domain.CostSetting, error) {
	if s.DB == nil {
		return nil, errors.New("cost setting repository: DB is nil")
	}

	query := `
	SELECT
		setting_id,
		type,
		category,
		base_value,
		multiplier,
		currency,
		is_enabled,
		description
	FROM cost_settings
	`
	if enabledOnly {
		query += " WHERE is_enabled = 1"
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

// UpdateCostSettings upserts the given settings in one transaction and
// returns the stored state. Inputs are validated by the service layer.
func (s *SqliteCostSettingRepository) UpdateCostSettings(ctx context.Context, settings []domain.CostSetting) (_ []domain.CostSetting, err error) {
	defer obs.Time(ctx, "settings.Update")(&err)

	if s.DB == nil {
		return nil, errors.New("cost setting repository: DB is nil")
	}
	if len(settings) == 0 {
		return s.list(ctx, false)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("update cost settings: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
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
	`)
	if err != nil {
		return nil, fmt.Errorf("update cost settings: prepare upsert: %w", err)
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
		return nil, fmt.Errorf("update cost settings: commit tx: %w", err)
	}

	return s.list(ctx, false)
}
