package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cargo-offer-service/internal/domain"
	"cargo-offer-service/internal/platform/obs"

	"github.com/google/uuid"
)

// SQLite-backed implementation of the RouteRepository port. The Route
// aggregate is stored as a JSON payload; the core treats it as an opaque
// hand-off object.
type SqliteRouteRepository struct{ DB *sql.DB }

func NewSqliteRouteRepository(db *sql.DB) *SqliteRouteRepository {
	return &SqliteRouteRepository{DB: db}
}

func (s *SqliteRouteRepository) SaveRoute(ctx context.Context, route *domain.Route) (err error) {
	defer obs.Time(ctx, "routes.Save")(&err)

	if s.DB == nil {
		return errors.New("route repository: DB is nil")
	}
	if route == nil {
		return errors.New("save route: route is nil")
	}

	payload, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("save route: marshal route %s: %w", route.ID, err)
	}

	query := `
	INSERT OR REPLACE INTO routes (route_id, payload, created_at)
	VALUES (?, ?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, query, route.ID.String(), string(payload), route.CreatedAt.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("save route: insert route %s: %w", route.ID, err)
	}

	return nil
}

func (s *SqliteRouteRepository) GetRoute(ctx context.Context, id uuid.UUID) (_ *domain.Route, err error) {
	defer obs.Time(ctx, "routes.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("route repository: DB is nil")
	}

	var payload string
	query := `SELECT payload FROM routes WHERE route_id = ?;`
	err = s.DB.QueryRowContext(ctx, query, id.String()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get route: query route %s: %w", id, err)
	}

	var route domain.Route
	if err := json.Unmarshal([]byte(payload), &route); err != nil {
		return nil, fmt.Errorf("get route: unmarshal route %s: %w", id, err)
	}

	return &route, nil
}
